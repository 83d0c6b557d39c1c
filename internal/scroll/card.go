package scroll

// DefaultCardHeight is the logical height of one investor card.
const DefaultCardHeight = 180

// minCardScale is reached once the list has scrolled two cards past a card.
const minCardScale = 0.8

// CardScale returns the scale of the card at index for a scroll offset.
// A card keeps full size until the offset reaches its top edge, then shrinks
// linearly to 0.8 over the next two card heights.
func CardScale(offset float64, index int, cardHeight float64) float64 {
	if index < 0 || !isFinite(cardHeight) || cardHeight <= 0 {
		return 1
	}
	start := cardHeight * float64(index)
	c := Curve{
		in:  []float64{start, start + 2*cardHeight},
		out: []float64{1, minCardScale},
	}
	return c.At(offset)
}
