package tokay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runOp(t *testing.T, op Op, input string) (*Runtime, *Context, Accept, *Reject) {
	t.Helper()
	rt, ctx := newTestContext(input)
	accept, reject := op.Run(ctx)
	return rt, ctx, accept, reject
}

func TestMatchAcceptsAndAdvances(t *testing.T) {
	rt, _, accept, reject := runOp(t, NewMatch("foo"), "foobar")
	require.Nil(t, reject)
	assert.Equal(t, AcceptPush, accept.Kind)
	assert.Equal(t, 3, rt.Reader.Tell().Byte)
}

func TestMatchRejectsAndRewinds(t *testing.T) {
	rt, _, _, reject := runOp(t, NewMatch("foo"), "bar")
	require.NotNil(t, reject)
	assert.Equal(t, RejectNext, reject.Kind)
	assert.Equal(t, 0, rt.Reader.Tell().Byte)
}

func TestMatchSilentProducesNoCapture(t *testing.T) {
	m := Match{Text: "foo", Silent: true}
	_, _, accept, reject := runOp(t, m, "foo")
	require.Nil(t, reject)
	assert.Equal(t, AcceptNext, accept.Kind)
}

func TestCharAccepts(t *testing.T) {
	digit := NewChar(NewCharsetFromRange('0', '9'))
	rt, _, accept, reject := runOp(t, digit, "5x")
	require.Nil(t, reject)
	assert.Equal(t, AcceptPush, accept.Kind)
	assert.Equal(t, 1, rt.Reader.Tell().Byte)
}

func TestCharRejectsOutOfSet(t *testing.T) {
	digit := NewChar(NewCharsetFromRange('0', '9'))
	_, _, _, reject := runOp(t, digit, "x")
	require.NotNil(t, reject)
}

func TestCharInverted(t *testing.T) {
	notDigit := NewCharInverted(NewCharsetFromRange('0', '9'))
	_, _, accept, reject := runOp(t, notDigit, "x")
	require.Nil(t, reject)
	assert.Equal(t, AcceptPush, accept.Kind)
}

func TestCharRejectsAtEOF(t *testing.T) {
	any := NewChar(NewCharsetFromRange(0, utf8Max))
	_, _, _, reject := runOp(t, any, "")
	require.NotNil(t, reject)
}

func TestSilentCharConsumesWithoutCapture(t *testing.T) {
	ws := NewSilentChar(NewCharsetFromRunes(' '))
	rt, _, accept, reject := runOp(t, ws, " x")
	require.Nil(t, reject)
	assert.Equal(t, AcceptNext, accept.Kind)
	assert.Equal(t, 1, rt.Reader.Tell().Byte)
}

func TestPeekDoesNotConsume(t *testing.T) {
	op := Peek{Body: NewMatch("foo")}
	rt, _, accept, reject := runOp(t, op, "foobar")
	require.Nil(t, reject)
	assert.Equal(t, AcceptNext, accept.Kind)
	assert.Equal(t, 0, rt.Reader.Tell().Byte)
}

func TestPeekPropagatesRejection(t *testing.T) {
	op := Peek{Body: NewMatch("foo")}
	_, _, _, reject := runOp(t, op, "bar")
	require.NotNil(t, reject)
}

func TestNotSucceedsWhenBodyFails(t *testing.T) {
	op := Not{Body: NewMatch("foo")}
	rt, _, accept, reject := runOp(t, op, "bar")
	require.Nil(t, reject)
	assert.Equal(t, AcceptNext, accept.Kind)
	assert.Equal(t, 0, rt.Reader.Tell().Byte)
}

func TestNotFailsWhenBodySucceeds(t *testing.T) {
	op := Not{Body: NewMatch("foo")}
	_, _, _, reject := runOp(t, op, "foo")
	require.NotNil(t, reject)
}

func TestExpectEscalatesPlainReject(t *testing.T) {
	op := Expect{Body: NewMatch("foo"), Message: "expected foo"}
	_, _, _, reject := runOp(t, op, "bar")
	require.NotNil(t, reject)
	assert.Equal(t, RejectErrorKind, reject.Kind)
	assert.Equal(t, "expected foo", reject.Err.Message)
}

func TestExpectPassesThroughAccept(t *testing.T) {
	op := Expect{Body: NewMatch("foo"), Message: "expected foo"}
	_, _, accept, reject := runOp(t, op, "foo")
	require.Nil(t, reject)
	assert.Equal(t, AcceptPush, accept.Kind)
}

func TestArithmeticOps(t *testing.T) {
	_, ctx := newTestContext("")
	ctx.Push(ValueCapture(NewRefValue(Int(4)), SeverityValue))
	ctx.Push(ValueCapture(NewRefValue(Int(5)), SeverityValue))

	accept, reject := NewAdd().Run(ctx)
	require.Nil(t, reject)
	assert.Equal(t, AcceptPush, accept.Kind)
	assert.Equal(t, Int(9), accept.Capture.value.V)
}

func TestLexemeCollapsesToRawText(t *testing.T) {
	body := NewSequence(
		SequenceItem{Op: NewChar(NewCharsetFromRange('a', 'z'))},
		SequenceItem{Op: NewChar(NewCharsetFromRange('a', 'z'))},
		SequenceItem{Op: NewChar(NewCharsetFromRange('a', 'z'))},
	)
	op := Lexeme{Body: body}
	rt, ctx, accept, reject := runOp(t, op, "abcxyz")
	require.Nil(t, reject)
	require.Equal(t, AcceptPush, accept.Kind)
	assert.Equal(t, "abc", rt.Reader.Extract(accept.Capture.rng))
	assert.Equal(t, ctx.captureStart, rt.stackLen())
}

func TestCreateWrapsSingleValueUnderValueKey(t *testing.T) {
	// Mirrors §8 scenario S5: Match("x") then Create("X") on input "x"
	// yields {emit: "X", value: "x"}.
	_, ctx := newTestContext("x")

	m := NewMatch("x")
	accept, reject := m.Run(ctx)
	require.Nil(t, reject)
	require.Equal(t, AcceptPush, accept.Kind)
	ctx.Push(accept.Capture)

	create := NewCreate("X")
	accept, reject = create.Run(ctx)
	require.Nil(t, reject)
	require.Equal(t, AcceptReturn, accept.Kind)

	dict, ok := accept.Value.V.(*Dict)
	require.True(t, ok)

	emit, found := dict.Get("emit")
	require.True(t, found)
	assert.Equal(t, Str("X"), emit.V)

	value, found := dict.Get("value")
	require.True(t, found)
	assert.Equal(t, Str("x"), value.V)

	_, hasChildren := dict.Get("children")
	assert.False(t, hasChildren)
}

func TestCreateWrapsMultipleValuesUnderChildrenKey(t *testing.T) {
	_, ctx := newTestContext("ab")

	for _, want := range "ab" {
		m := NewMatch(string(want))
		accept, reject := m.Run(ctx)
		require.Nil(t, reject)
		ctx.Push(accept.Capture)
	}

	create := NewCreate("Pair")
	accept, reject := create.Run(ctx)
	require.Nil(t, reject)
	require.Equal(t, AcceptReturn, accept.Kind)

	dict, ok := accept.Value.V.(*Dict)
	require.True(t, ok)

	children, found := dict.Get("children")
	require.True(t, found)
	list, ok := children.V.(*List)
	require.True(t, ok)
	assert.Equal(t, 2, list.Len())

	_, hasValue := dict.Get("value")
	assert.False(t, hasValue)
}

func TestLoadFastStoreFast(t *testing.T) {
	_, ctx := newTestContext("")
	ctx.Parselet.LocalNames = []string{"x"}
	ctx.locals = make([]RefValue, 1)

	ctx.Push(ValueCapture(NewRefValue(Int(42)), SeverityValue))
	_, reject := StoreFast{Index: 0}.Run(ctx)
	require.Nil(t, reject)

	accept, reject := LoadFast{Index: 0}.Run(ctx)
	require.Nil(t, reject)
	assert.Equal(t, Int(42), accept.Capture.value.V)
}
