// Package style identifies the garments worn in outfit photos.
package style

import (
	"context"
	"errors"
	"fmt"
)

// ErrClassIndex is returned when a class index falls outside the
// taxonomy.
var ErrClassIndex = errors.New("garment class index out of range")

// ClassNames lists the recognizable garment classes. The order is
// fixed: class indexes refer to it.
var ClassNames = []string{
	"t-shirt",
	"shirt",
	"hoodie",
	"jacket",
	"jeans",
	"casual-pants",
	"sneakers",
	"leather-shoes",
}

// NumClasses returns the size of the garment taxonomy.
func NumClasses() int {
	return len(ClassNames)
}

// ClassName returns the garment name for a class index.
func ClassName(index int) (string, error) {
	if index < 0 || index >= len(ClassNames) {
		return "", fmt.Errorf("%w: %d", ErrClassIndex, index)
	}
	return ClassNames[index], nil
}

// IsKnownClass reports whether name is part of the taxonomy.
func IsKnownClass(name string) bool {
	for _, class := range ClassNames {
		if class == name {
			return true
		}
	}
	return false
}

// Slot names an outfit position a garment can occupy.
type Slot string

const (
	SlotTop    Slot = "top"
	SlotBottom Slot = "bottom"
	SlotShoes  Slot = "shoes"
)

// Prediction is one ranked garment guess.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// Recognizer identifies garments in an image, returning up to topK
// predictions ordered by confidence.
type Recognizer interface {
	Predict(ctx context.Context, imagePath string, topK int) ([]Prediction, error)
}
