package tokay

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the minimal scalar/string/list/dict/parselet-ref protocol
// required by §3. Concrete kinds below (Void, Null, Bool, Int, Float,
// Str, *List, *Dict) cover the scalar/string/list/dict cases; *Parselet
// (parselet.go) and *Builtin (this file) cover parselet-ref and
// object/builtin.
type Value interface {
	Type() string
	IsTrue() bool
	Repr() string
	IsCallable(withArgs bool) bool
	IsConsuming() bool
	Call(ctx *Context, argc int, nargs *Dict) (Accept, *Reject)
	ToInt() int64
	ToFloat() float64
}

// RefValue is the shared-ownership handle around a Value, standing in
// for the Rust Rc<RefCell<Value>>. Go's GC already gives sharing; the
// box exists so StoreFast/StoreCapture/Create can replace the boxed
// value in place without invalidating other holders of the same box.
type RefValue = *ValueBox

type ValueBox struct {
	V Value
}

func NewRefValue(v Value) RefValue {
	return &ValueBox{V: v}
}

// --- scalars -----------------------------------------------------------------

type Void struct{}

func (Void) Type() string                                        { return "void" }
func (Void) IsTrue() bool                                        { return false }
func (Void) Repr() string                                        { return "void" }
func (Void) IsCallable(bool) bool                                { return false }
func (Void) IsConsuming() bool                                   { return false }
func (Void) Call(*Context, int, *Dict) (Accept, *Reject)          { panic("void cannot be called") }
func (Void) ToInt() int64                                        { return 0 }
func (Void) ToFloat() float64                                    { return 0 }

type Null struct{}

func (Null) Type() string                               { return "null" }
func (Null) IsTrue() bool                               { return false }
func (Null) Repr() string                               { return "null" }
func (Null) IsCallable(bool) bool                       { return false }
func (Null) IsConsuming() bool                          { return false }
func (Null) Call(*Context, int, *Dict) (Accept, *Reject) { panic("null cannot be called") }
func (Null) ToInt() int64                               { return 0 }
func (Null) ToFloat() float64                           { return 0 }

type Bool bool

func (b Bool) Type() string         { return "bool" }
func (b Bool) IsTrue() bool         { return bool(b) }
func (b Bool) IsCallable(bool) bool { return false }
func (b Bool) IsConsuming() bool    { return false }
func (b Bool) Call(*Context, int, *Dict) (Accept, *Reject) {
	panic("bool cannot be called")
}
func (b Bool) ToInt() int64 {
	if b {
		return 1
	}
	return 0
}
func (b Bool) ToFloat() float64 { return float64(b.ToInt()) }
func (b Bool) Repr() string {
	if b {
		return "true"
	}
	return "false"
}

type Int int64

func (i Int) Type() string                                        { return "int" }
func (i Int) IsTrue() bool                                        { return i != 0 }
func (i Int) Repr() string                                        { return strconv.FormatInt(int64(i), 10) }
func (i Int) IsCallable(bool) bool                                { return false }
func (i Int) IsConsuming() bool                                   { return false }
func (i Int) Call(*Context, int, *Dict) (Accept, *Reject)          { panic("int cannot be called") }
func (i Int) ToInt() int64                                        { return int64(i) }
func (i Int) ToFloat() float64                                    { return float64(i) }

type Float float64

func (f Float) Type() string                                        { return "float" }
func (f Float) IsTrue() bool                                        { return f != 0 }
func (f Float) Repr() string                                        { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) IsCallable(bool) bool                                { return false }
func (f Float) IsConsuming() bool                                   { return false }
func (f Float) Call(*Context, int, *Dict) (Accept, *Reject)          { panic("float cannot be called") }
func (f Float) ToInt() int64                                        { return int64(f) }
func (f Float) ToFloat() float64                                    { return float64(f) }

type Str string

func (s Str) Type() string                               { return "str" }
func (s Str) IsTrue() bool                               { return len(s) > 0 }
func (s Str) Repr() string                               { return strconv.Quote(string(s)) }
func (s Str) IsCallable(bool) bool                       { return false }
func (s Str) IsConsuming() bool                          { return false }
func (s Str) Call(*Context, int, *Dict) (Accept, *Reject) { panic("str cannot be called") }
func (s Str) ToInt() int64 {
	n, _ := strconv.ParseInt(string(s), 10, 64)
	return n
}
func (s Str) ToFloat() float64 {
	f, _ := strconv.ParseFloat(string(s), 64)
	return f
}

// --- list ----------------------------------------------------------------------

// List is the list Value kind. Supplemented from
// original_source/src/value/list.rs: Repr follows Rust's
// parenthesized, trailing-comma-for-singleton format.
type List struct {
	Items []RefValue
}

func NewList(items ...RefValue) *List {
	return &List{Items: items}
}

func (l *List) Type() string                                        { return "list" }
func (l *List) IsTrue() bool                                        { return len(l.Items) > 0 }
func (l *List) IsCallable(bool) bool                                { return false }
func (l *List) IsConsuming() bool                                   { return false }
func (l *List) Call(*Context, int, *Dict) (Accept, *Reject)          { panic("list cannot be called") }
func (l *List) ToInt() int64                                        { return int64(len(l.Items)) }
func (l *List) ToFloat() float64                                    { return float64(len(l.Items)) }

func (l *List) Push(v RefValue) {
	l.Items = append(l.Items, v)
}

func (l *List) Len() int {
	return len(l.Items)
}

func (l *List) Repr() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range l.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.V.Repr())
	}
	if len(l.Items) == 1 {
		b.WriteString(",")
	}
	b.WriteByte(')')
	return b.String()
}

// --- dict ------------------------------------------------------------------

// Dict is the dict Value kind. Keys preserve insertion order, the way
// Context.collect needs numbered positional keys ("0", "1", ...) to sit
// deterministically alongside named keys.
type Dict struct {
	order  []string
	values map[string]RefValue
}

func NewDict() *Dict {
	return &Dict{values: map[string]RefValue{}}
}

func (d *Dict) Insert(key string, v RefValue) {
	if _, ok := d.values[key]; !ok {
		d.order = append(d.order, key)
	}
	d.values[key] = v
}

func (d *Dict) Get(key string) (RefValue, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Dict) Len() int {
	return len(d.order)
}

func (d *Dict) Keys() []string {
	return d.order
}

func (d *Dict) Type() string                                        { return "dict" }
func (d *Dict) IsTrue() bool                                        { return d.Len() > 0 }
func (d *Dict) IsCallable(bool) bool                                { return false }
func (d *Dict) IsConsuming() bool                                   { return false }
func (d *Dict) Call(*Context, int, *Dict) (Accept, *Reject)          { panic("dict cannot be called") }
func (d *Dict) ToInt() int64                                        { return int64(d.Len()) }
func (d *Dict) ToFloat() float64                                    { return float64(d.Len()) }

func (d *Dict) Repr() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range d.order {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", k, d.values[k].V.Repr())
	}
	b.WriteByte('}')
	return b.String()
}

// --- builtin -----------------------------------------------------------------

// BuiltinFunc is the native implementation behind a Builtin value.
type BuiltinFunc func(ctx *Context, argc int, nargs *Dict) (Accept, *Reject)

// Builtin is the object/native-function escape hatch Op.Call/TryCall
// plug into, grounded on original_source/src/value/object.rs's Object
// trait (is_callable/is_consuming/call).
type Builtin struct {
	Name      string
	Consuming bool
	Func      BuiltinFunc
}

func NewBuiltin(name string, consuming bool, fn BuiltinFunc) *Builtin {
	return &Builtin{Name: name, Consuming: consuming, Func: fn}
}

func (b *Builtin) Type() string         { return "builtin" }
func (b *Builtin) IsTrue() bool         { return true }
func (b *Builtin) Repr() string         { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *Builtin) IsCallable(bool) bool { return true }
func (b *Builtin) IsConsuming() bool    { return b.Consuming }
func (b *Builtin) ToInt() int64         { return 0 }
func (b *Builtin) ToFloat() float64     { return 0 }

func (b *Builtin) Call(ctx *Context, argc int, nargs *Dict) (Accept, *Reject) {
	return b.Func(ctx, argc, nargs)
}

// --- arithmetic ----------------------------------------------------------------

// Arith implements Op.Add/Sub/Mul/Div's value coercion: both-Int stays
// integral, any Float promotes both sides, and Add additionally allows
// string concatenation (the other side is coerced via Repr when it is
// not already a string).
func Arith(op byte, a, b Value) (Value, *Error) {
	if op == opAdd {
		if as, ok := a.(Str); ok {
			return as + reprAsStr(b), nil
		}
		if bs, ok := b.(Str); ok {
			return reprAsStr(a) + bs, nil
		}
	}

	_, aFloat := a.(Float)
	_, bFloat := b.(Float)
	if aFloat || bFloat {
		af, bf := a.ToFloat(), b.ToFloat()
		switch op {
		case opAdd:
			return Float(af + bf), nil
		case opSub:
			return Float(af - bf), nil
		case opMul:
			return Float(af * bf), nil
		case opDiv:
			if bf == 0 {
				return nil, NewError(nil, "division by zero")
			}
			return Float(af / bf), nil
		}
	}

	ai, bi := a.ToInt(), b.ToInt()
	switch op {
	case opAdd:
		return Int(ai + bi), nil
	case opSub:
		return Int(ai - bi), nil
	case opMul:
		return Int(ai * bi), nil
	case opDiv:
		if bi == 0 {
			return nil, NewError(nil, "division by zero")
		}
		return Int(ai / bi), nil
	}

	return nil, NewError(nil, "unsupported operator")
}

func reprAsStr(v Value) Str {
	if s, ok := v.(Str); ok {
		return s
	}
	return Str(v.Repr())
}

const (
	opAdd byte = iota
	opSub
	opMul
	opDiv
)
