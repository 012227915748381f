package colour

import "math"

// Distance returns the Euclidean distance between two colours in RGB
// space. The range is [0, ~441.67].
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
