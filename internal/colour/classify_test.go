package colour

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		rgb      RGB
		wantName ColourName
		wantTone Tone
	}{
		{
			name:     "black",
			rgb:      RGB{R: 0, G: 0, B: 0},
			wantName: NameBlack,
			wantTone: ToneNeutral,
		},
		{
			name:     "white",
			rgb:      RGB{R: 255, G: 255, B: 255},
			wantName: NameWhite,
			wantTone: ToneNeutral,
		},
		{
			name:     "mid gray",
			rgb:      RGB{R: 128, G: 128, B: 128},
			wantName: NameGray,
			wantTone: ToneNeutral,
		},
		{
			name:     "uneven gray within spread threshold",
			rgb:      RGB{R: 120, G: 130, B: 140},
			wantName: NameGray,
			wantTone: ToneNeutral,
		},
		{
			name:     "saddle brown",
			rgb:      RGB{R: 139, G: 69, B: 19},
			wantName: NameBrown,
			wantTone: ToneWarm,
		},
		{
			name:     "orange",
			rgb:      RGB{R: 255, G: 165, B: 0},
			wantName: NameOrange,
			wantTone: ToneWarm,
		},
		{
			name:     "yellow",
			rgb:      RGB{R: 200, G: 180, B: 0},
			wantName: NameYellow,
			wantTone: ToneWarm,
		},
		{
			name:     "bright yellow reads as pale",
			rgb:      RGB{R: 255, G: 255, B: 0},
			wantName: NamePaleYellow,
			wantTone: ToneWarm,
		},
		{
			name:     "pale yellow",
			rgb:      RGB{R: 255, G: 255, B: 150},
			wantName: NamePaleYellow,
			wantTone: ToneWarm,
		},
		{
			name:     "crimson",
			rgb:      RGB{R: 220, G: 20, B: 60},
			wantName: NameRed,
			wantTone: ToneWarm,
		},
		{
			name:     "deep red",
			rgb:      RGB{R: 139, G: 0, B: 0},
			wantName: NameDeepRed,
			wantTone: ToneWarm,
		},
		{
			name:     "pink",
			rgb:      RGB{R: 255, G: 180, B: 180},
			wantName: NamePink,
			wantTone: ToneWarm,
		},
		{
			name:     "green",
			rgb:      RGB{R: 60, G: 180, B: 75},
			wantName: NameGreen,
			wantTone: ToneCold,
		},
		{
			name:     "deep green",
			rgb:      RGB{R: 0, G: 100, B: 0},
			wantName: NameDeepGreen,
			wantTone: ToneCold,
		},
		{
			name:     "pale green",
			rgb:      RGB{R: 200, G: 255, B: 200},
			wantName: NamePaleGreen,
			wantTone: ToneCold,
		},
		{
			name:     "blue",
			rgb:      RGB{R: 100, G: 150, B: 220},
			wantName: NameBlue,
			wantTone: ToneCold,
		},
		{
			name:     "pure blue is dark enough to read deep",
			rgb:      RGB{R: 0, G: 0, B: 255},
			wantName: NameDeepBlue,
			wantTone: ToneCold,
		},
		{
			name:     "deep blue",
			rgb:      RGB{R: 0, G: 0, B: 139},
			wantName: NameDeepBlue,
			wantTone: ToneCold,
		},
		{
			name:     "pale blue",
			rgb:      RGB{R: 80, G: 254, B: 255},
			wantName: NamePaleBlue,
			wantTone: ToneCold,
		},
		{
			name:     "purple",
			rgb:      RGB{R: 152, G: 96, B: 152},
			wantName: NamePurple,
			wantTone: ToneCold,
		},
		{
			name:     "deep purple",
			rgb:      RGB{R: 100, G: 40, B: 100},
			wantName: NameDeepPurple,
			wantTone: ToneCold,
		},
		{
			name:     "pale purple",
			rgb:      RGB{R: 235, G: 190, B: 240},
			wantName: NamePalePurple,
			wantTone: ToneCold,
		},
		{
			name:     "muted warm tint falls back to dominant red",
			rgb:      RGB{R: 140, G: 120, B: 110},
			wantName: NameRed,
			wantTone: ToneWarm,
		},
		{
			name:     "muted cool tint falls back to dominant blue",
			rgb:      RGB{R: 120, G: 130, B: 150},
			wantName: NameBlue,
			wantTone: ToneCold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.rgb)
			if got.Name != tt.wantName {
				t.Errorf("Classify(%v).Name = %s, want %s", tt.rgb, got.Name, tt.wantName)
			}
			if got.Tone != tt.wantTone {
				t.Errorf("Classify(%v).Tone = %s, want %s", tt.rgb, got.Tone, tt.wantTone)
			}
		})
	}
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want float64
	}{
		{
			name: "black",
			rgb:  RGB{R: 0, G: 0, B: 0},
			want: 0,
		},
		{
			name: "white",
			rgb:  RGB{R: 255, G: 255, B: 255},
			want: 255,
		},
		{
			name: "pure red",
			rgb:  RGB{R: 255, G: 0, B: 0},
			want: 76.245,
		},
		{
			name: "pure green",
			rgb:  RGB{R: 0, G: 255, B: 0},
			want: 149.685,
		},
		{
			name: "pure blue",
			rgb:  RGB{R: 0, G: 0, B: 255},
			want: 29.07,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Brightness(tt.rgb)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Brightness(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestIsNeutral(t *testing.T) {
	neutrals := []ColourName{NameBlack, NameWhite, NameGray}
	for _, name := range neutrals {
		if !IsNeutral(name) {
			t.Errorf("IsNeutral(%s) = false, want true", name)
		}
	}

	coloured := []ColourName{NameRed, NameBlue, NameBrown, NamePalePurple}
	for _, name := range coloured {
		if IsNeutral(name) {
			t.Errorf("IsNeutral(%s) = true, want false", name)
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    RGB
		b    RGB
		want float64
	}{
		{
			name: "identical colours",
			a:    RGB{R: 10, G: 20, B: 30},
			b:    RGB{R: 10, G: 20, B: 30},
			want: 0,
		},
		{
			name: "black to white",
			a:    RGB{R: 0, G: 0, B: 0},
			b:    RGB{R: 255, G: 255, B: 255},
			want: math.Sqrt(3 * 255 * 255),
		},
		{
			name: "red to green",
			a:    RGB{R: 255, G: 0, B: 0},
			b:    RGB{R: 0, G: 255, B: 0},
			want: math.Sqrt(2 * 255 * 255),
		},
		{
			name: "small uniform step",
			a:    RGB{R: 100, G: 100, B: 100},
			b:    RGB{R: 110, G: 110, B: 110},
			want: math.Sqrt(3 * 10 * 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Distance is symmetric.
			if rev := Distance(tt.b, tt.a); math.Abs(rev-got) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.b, tt.a, rev, got)
			}
		})
	}
}
