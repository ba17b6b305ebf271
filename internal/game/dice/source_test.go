package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoSource_Bounds(t *testing.T) {
	src := NewCryptoSource()
	for i := 0; i < 200; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_PanicsOnNonPositive(t *testing.T) {
	src := NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
	assert.Panics(t, func() { src.Intn(-1) })
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := NewSeededSource(42)
	b := NewSeededSource(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestBetween(t *testing.T) {
	src := NewSeededSource(7)
	for i := 0; i < 200; i++ {
		v := Between(src, 5, 15)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 15)
	}
	assert.Equal(t, 3, Between(src, 3, 3))
}
