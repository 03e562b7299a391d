package geometry

// Coordinate is a single axis value in scaled units. It is never negative:
// raw inputs at or below zero clamp to the origin rather than erroring,
// because "a little off the left edge" and "the left edge" are the same
// place as far as the cursor is concerned.
type Coordinate float64

// NewCoordinate builds a Coordinate from a value already expressed in
// scaled units, clamping negatives to zero.
func NewCoordinate(v float64) Coordinate {
	if v <= 0 {
		return 0
	}
	return Coordinate(v)
}

// CoordinateFromPhysical converts a raw physical pixel value into scaled
// units using the display's scale factor. This is the only place physical
// values enter the model; everything downstream stays in scaled units so a
// value is never divided by the scale factor twice.
func CoordinateFromPhysical(raw float64, d Display) Coordinate {
	if raw <= 0 {
		return 0
	}
	scale := d.Scale
	if scale <= 0 {
		scale = 1.0
	}
	return Coordinate(raw / scale)
}

// Physical converts the coordinate back into physical pixels on the given
// display, rounding to the nearest pixel.
func (c Coordinate) Physical(d Display) int {
	return int(float64(c)*d.Scale + 0.5)
}

// Float returns the scaled-unit value as a plain float64.
func (c Coordinate) Float() float64 {
	return float64(c)
}
