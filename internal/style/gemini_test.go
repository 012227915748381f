package style

import (
	"testing"
)

func TestParsePredictions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		topK    int
		want    []Prediction
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `[{"class": "shirt", "confidence": 0.9}, {"class": "jacket", "confidence": 0.05}]`,
			topK: 3,
			want: []Prediction{
				{Class: "shirt", Confidence: 0.9},
				{Class: "jacket", Confidence: 0.05},
			},
		},
		{
			name: "fenced json",
			raw:  "```json\n[{\"class\": \"jeans\", \"confidence\": 0.8}]\n```",
			topK: 3,
			want: []Prediction{
				{Class: "jeans", Confidence: 0.8},
			},
		},
		{
			name: "unknown classes are dropped",
			raw:  `[{"class": "toga", "confidence": 0.9}, {"class": "hoodie", "confidence": 0.6}]`,
			topK: 3,
			want: []Prediction{
				{Class: "hoodie", Confidence: 0.6},
			},
		},
		{
			name: "results are sorted and truncated",
			raw: `[
				{"class": "t-shirt", "confidence": 0.2},
				{"class": "shirt", "confidence": 0.5},
				{"class": "hoodie", "confidence": 0.3}
			]`,
			topK: 2,
			want: []Prediction{
				{Class: "shirt", Confidence: 0.5},
				{Class: "hoodie", Confidence: 0.3},
			},
		},
		{
			name:    "only unknown classes",
			raw:     `[{"class": "toga", "confidence": 0.9}]`,
			topK:    3,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "the image shows a shirt",
			topK:    3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePredictions(tt.raw, tt.topK)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePredictions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d predictions, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("predictions[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewGeminiRecognizerDefaults(t *testing.T) {
	r := NewGeminiRecognizer(GeminiOptions{})

	if r.model != defaultModel {
		t.Errorf("model = %s, want %s", r.model, defaultModel)
	}
	if r.logger == nil {
		t.Error("logger should default to a null logger")
	}
	if r.maxRetries != defaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", r.maxRetries, defaultMaxRetries)
	}
}
