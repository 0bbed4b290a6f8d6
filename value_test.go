package tokay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRepr(t *testing.T) {
	assert.Equal(t, "void", Void{}.Repr())
	assert.Equal(t, "null", Null{}.Repr())
	assert.Equal(t, "true", Bool(true).Repr())
	assert.Equal(t, "false", Bool(false).Repr())
	assert.Equal(t, "42", Int(42).Repr())
	assert.Equal(t, `"hi"`, Str("hi").Repr())
}

func TestScalarIsTrue(t *testing.T) {
	assert.False(t, Void{}.IsTrue())
	assert.False(t, Null{}.IsTrue())
	assert.False(t, Int(0).IsTrue())
	assert.True(t, Int(1).IsTrue())
	assert.False(t, Str("").IsTrue())
	assert.True(t, Str("x").IsTrue())
}

func TestListRepr(t *testing.T) {
	empty := NewList()
	assert.Equal(t, "()", empty.Repr())

	single := NewList(NewRefValue(Int(1)))
	assertReprEqual(t, "(1,)", single.Repr())

	multi := NewList(NewRefValue(Int(1)), NewRefValue(Int(2)), NewRefValue(Int(3)))
	assertReprEqual(t, "(1, 2, 3)", multi.Repr())
}

func TestDictInsertPreservesOrder(t *testing.T) {
	d := NewDict()
	d.Insert("b", NewRefValue(Int(2)))
	d.Insert("a", NewRefValue(Int(1)))
	d.Insert("b", NewRefValue(Int(20))) // overwrite, should not reorder

	require.Equal(t, []string{"b", "a"}, d.Keys())
	v, ok := d.Get("b")
	require.True(t, ok)
	assert.Equal(t, Int(20), v.V)
}

func TestArithInt(t *testing.T) {
	v, err := Arith(opAdd, Int(2), Int(3))
	require.Nil(t, err)
	assert.Equal(t, Int(5), v)

	v, err = Arith(opMul, Int(4), Int(5))
	require.Nil(t, err)
	assert.Equal(t, Int(20), v)
}

func TestArithFloatPromotion(t *testing.T) {
	v, err := Arith(opAdd, Int(1), Float(1.5))
	require.Nil(t, err)
	assert.Equal(t, Float(2.5), v)
}

func TestArithStringConcat(t *testing.T) {
	v, err := Arith(opAdd, Str("foo"), Str("bar"))
	require.Nil(t, err)
	assert.Equal(t, Str("foobar"), v)

	v, err = Arith(opAdd, Str("n="), Int(3))
	require.Nil(t, err)
	assert.Equal(t, Str("n=3"), v)
}

func TestArithDivisionByZero(t *testing.T) {
	_, err := Arith(opDiv, Int(1), Int(0))
	require.NotNil(t, err)
}

func TestBuiltinCall(t *testing.T) {
	called := false
	b := NewBuiltin("noop", false, func(ctx *Context, argc int, nargs *Dict) (Accept, *Reject) {
		called = true
		return AcceptedNext(), nil
	})
	assert.True(t, b.IsCallable(false))
	_, reject := b.Call(nil, 0, nil)
	assert.Nil(t, reject)
	assert.True(t, called)
}
