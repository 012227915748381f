package colour

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sort"
)

// KMeansExtractor implements colour extraction using k-means clustering.
// Runs are deterministic: the extractor restarts clustering from several
// seeded initialisations and keeps the run with the lowest inertia.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	restarts      int
	seed          int64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    5000,
		restarts:      10,
		seed:          42,
	}
}

// Extract extracts the dominant colours from an image using k-means
// clustering. The palette is ordered by cluster weight, largest first,
// and the weights sum to 1.0.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("color count too large: %d (maximum: 256)", count)
	}

	pixels := samplePixels(img, e.maxSamples)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// Count distinct colours. When the image has no more distinct
	// colours than requested, clustering would only degenerate, so
	// return the observed colours with their actual frequencies.
	freq := make(map[RGB]int)
	order := make([]RGB, 0, len(pixels))
	for _, p := range pixels {
		rgb := ToRGB(p)
		if freq[rgb] == 0 {
			order = append(order, rgb)
		}
		freq[rgb]++
	}

	if count >= len(order) {
		sort.SliceStable(order, func(i, j int) bool {
			return freq[order[i]] > freq[order[j]]
		})
		colors := make([]color.Color, len(order))
		weights := make([]float64, len(order))
		total := float64(len(pixels))
		for i, rgb := range order {
			colors[i] = color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
			weights[i] = float64(freq[rgb]) / total
		}
		return NewPaletteWithWeights(colors, weights), nil
	}

	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		rgb := ToRGB(c)
		points[i] = point3D{
			R: float64(rgb.R),
			G: float64(rgb.G),
			B: float64(rgb.B),
		}
	}

	centroids, weights := e.kmeans(points, count)

	colors := make([]color.Color, len(centroids))
	for i, c := range centroids {
		colors[i] = color.RGBA{
			R: uint8(c.R),
			G: uint8(c.G),
			B: uint8(c.B),
			A: 255,
		}
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels samples up to maxSamples pixels from the image. Small
// images are read in full, larger ones on a grid.
func samplePixels(img image.Image, maxSamples int) []color.Color {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	totalPixels := width * height

	if totalPixels <= maxSamples {
		pixels := make([]color.Color, 0, totalPixels)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, img.At(x, y))
			}
		}
		return pixels
	}

	// Grid step chosen so the grid yields approximately maxSamples.
	step := max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)

	pixels := make([]color.Color, 0, maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, img.At(x, y))
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}

	return pixels
}

// kmeans clusters the points into k groups. It restarts the clustering
// several times from different seeded initialisations, keeps the run
// with the lowest inertia and returns its centroids and normalized
// cluster weights ordered by weight, largest first.
func (e *KMeansExtractor) kmeans(points []point3D, k int) ([]point3D, []float64) {
	rng := rand.New(rand.NewSource(e.seed))

	bestInertia := math.Inf(1)
	var bestCentroids []point3D
	var bestAssignments []int

	for run := 0; run < e.restarts; run++ {
		centroids, assignments, inertia := e.runKMeans(points, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			bestCentroids = centroids
			bestAssignments = assignments
		}
	}

	weights := make([]float64, k)
	for _, assignment := range bestAssignments {
		weights[assignment]++
	}
	total := float64(len(bestAssignments))
	for i := range weights {
		weights[i] /= total
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return weights[idx[a]] > weights[idx[b]]
	})

	sortedCentroids := make([]point3D, k)
	sortedWeights := make([]float64, k)
	for i, j := range idx {
		sortedCentroids[i] = bestCentroids[j]
		sortedWeights[i] = weights[j]
	}

	return sortedCentroids, sortedWeights
}

// runKMeans performs a single k-means run and returns the centroids,
// the final point assignments and the run's inertia (the sum of squared
// distances from each point to its centroid).
func (e *KMeansExtractor) runKMeans(points []point3D, k int, rng *rand.Rand) ([]point3D, []int, float64) {
	centroids := e.initializeCentroidsKMeansPlusPlus(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := e.findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Converged when almost no assignments move.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := e.recalculateCentroids(points, assignments, k, rng)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		avgMovement := totalMovement / float64(k)

		centroids = newCentroids

		if avgMovement < e.convergence {
			break
		}
	}

	// Final assignment pass so assignments and inertia match the
	// centroids actually returned.
	inertia := 0.0
	for i, point := range points {
		nearest := e.findNearestCentroid(point, centroids)
		assignments[i] = nearest
		d := point.distance(centroids[nearest])
		inertia += d * d
	}

	return centroids, assignments, inertia
}

// initializeCentroidsKMeansPlusPlus initializes centroids using the
// k-means++ algorithm, which spreads the initial centroids out and
// gives better clusters than uniform random selection.
func (e *KMeansExtractor) initializeCentroidsKMeansPlusPlus(points []point3D, k int, rng *rand.Rand) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				dist := point.distance(centroid)
				if dist < minDist {
					minDist = dist
				}
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		// All remaining points coincide with existing centroids.
		// Duplicate the last centroid with a tiny perturbation.
		if totalDistance == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{
				R: last.R + 0.1,
				G: last.G + 0.1,
				B: last.B + 0.1,
			})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func (e *KMeansExtractor) findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		dist := point.distance(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions based on assigned
// points. Empty clusters are reseeded from a random point.
func (e *KMeansExtractor) recalculateCentroids(points []point3D, assignments []int, k int, rng *rand.Rand) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}

	return centroids
}
