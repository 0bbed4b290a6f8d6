package tokay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarMatchesZeroOrMore(t *testing.T) {
	op := Star(digitChar())
	rt, _, _, reject := runOp(t, op, "123abc")
	require.Nil(t, reject)
	assert.Equal(t, 3, rt.Reader.Tell().Byte)
}

func TestStarAcceptsZeroMatches(t *testing.T) {
	op := Star(digitChar())
	rt, _, _, reject := runOp(t, op, "abc")
	require.Nil(t, reject)
	assert.Equal(t, 0, rt.Reader.Tell().Byte)
}

func TestPlusRequiresAtLeastOne(t *testing.T) {
	op := Plus(digitChar())
	_, _, _, reject := runOp(t, op, "abc")
	require.NotNil(t, reject)
}

func TestPlusMatchesAllAvailable(t *testing.T) {
	op := Plus(digitChar())
	rt, _, _, reject := runOp(t, op, "123abc")
	require.Nil(t, reject)
	assert.Equal(t, 3, rt.Reader.Tell().Byte)
}

func TestOptionalMatchesAtMostOne(t *testing.T) {
	op := Optional(digitChar())
	rt, _, _, reject := runOp(t, op, "1abc")
	require.Nil(t, reject)
	assert.Equal(t, 1, rt.Reader.Tell().Byte)
}

func TestOptionalAcceptsWhenAbsent(t *testing.T) {
	op := Optional(digitChar())
	rt, _, _, reject := runOp(t, op, "abc")
	require.Nil(t, reject)
	assert.Equal(t, 0, rt.Reader.Tell().Byte)
}

func TestRepeatBoundedMax(t *testing.T) {
	op := NewRepeat(digitChar(), 0, 2)
	rt, _, _, reject := runOp(t, op, "12345")
	require.Nil(t, reject)
	assert.Equal(t, 2, rt.Reader.Tell().Byte)
}

func TestStarOnNullableBodyTerminates(t *testing.T) {
	op := Star(Optional(digitChar()))
	rt, _, _, reject := runOp(t, op, "abc")
	require.Nil(t, reject)
	assert.Equal(t, 0, rt.Reader.Tell().Byte)
}

func TestSilentRepeatConsumesWithoutCaptures(t *testing.T) {
	ws := NewSilentChar(NewCharsetFromRunes(' '))
	op := NewSilentRepeat(ws, 0, 0)
	rt, ctx := newTestContext("   x")
	mark := rt.stackLen()

	accept, reject := op.Run(ctx)
	require.Nil(t, reject)
	assert.Equal(t, AcceptNext, accept.Kind)
	assert.Equal(t, 3, rt.Reader.Tell().Byte)
	assert.Equal(t, mark, rt.stackLen())
}
