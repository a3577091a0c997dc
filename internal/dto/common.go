package dto

import "math"

// FloatPtr maps an engine metric to its JSON/DB representation: NaN and
// infinities become nil (rendered as null), everything else is a pointer to
// the value. JSON cannot carry NaN or Inf, and null is the only encoding that
// keeps "undefined" distinct from 0.
func FloatPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
