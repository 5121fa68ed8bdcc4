package abundance

import (
	"fmt"
	"math"
)

// NeutralColor is used for identifiers without a score.
const NeutralColor = "#FFFFFF"

// Ratio returns the position of id's score between the index bounds, in [0,1].
// When every score is equal the ratio is 0. ok is false when id has no score.
func (idx *Index) Ratio(id string) (ratio float64, ok bool) {
	v, ok := idx.Value(id)
	if !ok {
		return 0, false
	}
	span := idx.max - idx.min
	if span == 0 {
		return 0, true
	}
	return clamp((v-idx.min)/span, 0, 1), true
}

// ColorFor returns the heatmap colour for id: red grows and blue shrinks with
// the score. Identifiers without a score get NeutralColor.
func (idx *Index) ColorFor(id string) string {
	ratio, ok := idx.Ratio(id)
	if !ok {
		return NeutralColor
	}
	return GradientColor(ratio)
}

// GradientColor maps a ratio in [0,1] onto the blue-to-red gradient as #RRGGBB.
func GradientColor(ratio float64) string {
	if math.IsNaN(ratio) {
		ratio = 0
	}
	ratio = clamp(ratio, 0, 1)
	red := int(math.Round(ratio * 255))
	blue := int(math.Round((1 - ratio) * 255))
	return fmt.Sprintf("#%02X00%02X", red, blue)
}

// Stop is one labelled point of the colour legend.
type Stop struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Legend returns the colours at the minimum and maximum score. An empty index
// has no legend.
func (idx *Index) Legend() []Stop {
	lo, hi, err := idx.Bounds()
	if err != nil {
		return nil
	}
	if lo == hi {
		return []Stop{{Value: lo, Color: GradientColor(0)}}
	}
	return []Stop{
		{Value: lo, Color: GradientColor(0)},
		{Value: hi, Color: GradientColor(1)},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
