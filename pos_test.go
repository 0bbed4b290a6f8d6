package tokay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetString(t *testing.T) {
	o := Offset{Byte: 10, Row: 2, Col: 5}
	assert.Equal(t, "3:6", o.String())
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "5", NewRange(5, 5).String())
	assert.Equal(t, "5..9", NewRange(5, 9).String())
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 4, NewRange(5, 9).Len())
	assert.Equal(t, 0, NewRange(5, 5).Len())
}

func TestRangeStr(t *testing.T) {
	input := []byte("hello world")
	r := NewRange(6, 11)
	assert.Equal(t, "world", r.Str(input))
}
