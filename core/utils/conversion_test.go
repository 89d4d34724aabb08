package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"String", "p-17", "p-17"},
		{"Nil", nil, ""},
		{"JSON number id", float64(42), "42"},
		{"Fractional float", 1.5, "1.5"},
		{"Bytes", []byte("x"), "x"},
		{"Int", 7, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, ToInt(float64(3)))
	assert.Equal(t, 3, ToInt("3"))
	assert.Equal(t, 0, ToInt("not a number"))
	assert.Equal(t, 5, ToInt(int64(5)))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool(float64(1)))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(nil))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 5))
	assert.Equal(t, 5, ClampInt(9, 1, 5))
	assert.Equal(t, 3, ClampInt(3, 1, 5))
}
