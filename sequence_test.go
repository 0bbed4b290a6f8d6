package tokay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digitChar() Op { return NewChar(NewCharsetFromRange('0', '9')) }
func letterChar() Op { return NewChar(NewCharsetFromRange('a', 'z')) }

func TestSequenceAllMatch(t *testing.T) {
	seq := NewSequence(
		SequenceItem{Op: letterChar()},
		SequenceItem{Op: digitChar()},
	)
	rt, ctx := newTestContext("a1")
	accept, reject := seq.Run(ctx)
	require.Nil(t, reject)
	assert.Equal(t, 2, rt.Reader.Tell().Byte)

	// Sequence.Run collects its own items (single-mode on) before
	// returning, so the result arrives as an Accept::Push capture rather
	// than requiring the caller to Collect separately.
	require.Equal(t, AcceptPush, accept.Kind)
	list, ok := accept.Capture.value.V.(*List)
	require.True(t, ok)
	assert.Equal(t, 2, list.Len())
}

func TestSequenceBacktracksOnFailure(t *testing.T) {
	seq := NewSequence(
		SequenceItem{Op: letterChar()},
		SequenceItem{Op: digitChar()},
	)
	rt, ctx := newTestContext("ax")
	mark := rt.stackLen()
	_, reject := seq.Run(ctx)
	require.NotNil(t, reject)
	assert.Equal(t, 0, rt.Reader.Tell().Byte)
	assert.Equal(t, mark, rt.stackLen())
}

func TestSequenceAliasesNamedCapture(t *testing.T) {
	seq := NewSequence(
		SequenceItem{Op: letterChar(), Alias: "head"},
	)
	_, ctx := newTestContext("a")
	accept, reject := seq.Run(ctx)
	require.Nil(t, reject)

	// A named capture forces Sequence's own end-of-run collect into a
	// Dict, keyed by the alias.
	require.Equal(t, AcceptPush, accept.Kind)
	dict, ok := accept.Capture.value.V.(*Dict)
	require.True(t, ok)
	_, found := dict.Get("head")
	assert.True(t, found)
}
