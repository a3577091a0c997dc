package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatPtr(t *testing.T) {
	t.Run("finite value", func(t *testing.T) {
		got := FloatPtr(1.5)
		require.NotNil(t, got)
		assert.Equal(t, 1.5, *got)
	})

	t.Run("zero is a value, not undefined", func(t *testing.T) {
		got := FloatPtr(0)
		require.NotNil(t, got)
		assert.Equal(t, 0.0, *got)
	})

	t.Run("NaN maps to nil", func(t *testing.T) {
		assert.Nil(t, FloatPtr(math.NaN()))
	})

	t.Run("infinities map to nil", func(t *testing.T) {
		assert.Nil(t, FloatPtr(math.Inf(1)))
		assert.Nil(t, FloatPtr(math.Inf(-1)))
	})
}
