package tokay

// Op is one node of the parsing expression tree. Unlike the teacher's
// flat bytecode VM, this engine walks a tree of Ops directly: composite
// Ops (Sequence, Block, Repeat, ...) hold child Ops and call their
// Run/Finalize/Resolve in turn rather than addressing them by program
// counter.
//
// Run follows Go's (value, error) convention: a nil *Reject means the
// returned Accept is meaningful; a non-nil *Reject means rejection and
// the Accept return is the zero value.
type Op interface {
	Run(ctx *Context) (Accept, *Reject)

	// Finalize recomputes this Op's contribution to the leftrec/nullable
	// fixed point for the current round and propagates into any child
	// Ops. statics is the program's static table (for CallStatic/Symbol
	// references into other parselets).
	Finalize(statics []RefValue) (leftrec bool, nullable bool)

	// Resolve late-binds Symbol references reachable from this Op,
	// returning the Op that should replace it in its parent (usually
	// itself). Composite Ops call Resolve on their children and store
	// back whatever is returned.
	Resolve(res *Resolver) Op
}

// --- trivial leaves --------------------------------------------------------

// Nop always accepts without consuming input or producing a capture.
type Nop struct{}

func (Nop) Run(*Context) (Accept, *Reject)                  { return AcceptedNext(), nil }
func (Nop) Finalize([]RefValue) (bool, bool)                 { return false, true }
func (n Nop) Resolve(*Resolver) Op                           { return n }

// Empty is distinguished from Nop only by provenance (an explicit empty
// alternative in source vs. a synthesized no-op); behavior is identical.
type Empty struct{}

func (Empty) Run(*Context) (Accept, *Reject)  { return AcceptedNext(), nil }
func (Empty) Finalize([]RefValue) (bool, bool) { return false, true }
func (e Empty) Resolve(*Resolver) Op           { return e }

// RejectOp always rejects, the Op behind the `reject` keyword.
type RejectOp struct{}

func (RejectOp) Run(*Context) (Accept, *Reject)  { return Accept{}, RejectedNext() }
func (RejectOp) Finalize([]RefValue) (bool, bool) { return false, false }
func (r RejectOp) Resolve(*Resolver) Op           { return r }

// LoadAccept is the Op behind a bare `accept` keyword: it returns from
// the enclosing parselet immediately, carrying no explicit value (the
// caller's Collect of this frame's captures supplies the result).
type LoadAccept struct{}

func (LoadAccept) Run(*Context) (Accept, *Reject)  { return AcceptedReturn(nil), nil }
func (LoadAccept) Finalize([]RefValue) (bool, bool) { return false, true }
func (l LoadAccept) Resolve(*Resolver) Op           { return l }

// Skip accepts with Accept::Skip, consuming no input and pushing no
// capture. Sequence and Repeat handle Accept::Skip the same way as
// Accept::Next and Lexeme passes it through; captures already on the
// stack are not discarded because of it.
type Skip struct{}

func (Skip) Run(*Context) (Accept, *Reject)  { return AcceptedSkip(), nil }
func (Skip) Finalize([]RefValue) (bool, bool) { return false, true }
func (s Skip) Resolve(*Resolver) Op           { return s }

// --- literal pushes ----------------------------------------------------------

type Push0 struct{}

func (Push0) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(NewRefValue(Int(0)), SeverityValue)), nil
}
func (Push0) Finalize([]RefValue) (bool, bool) { return false, true }
func (p Push0) Resolve(*Resolver) Op            { return p }

type Push1 struct{}

func (Push1) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(NewRefValue(Int(1)), SeverityValue)), nil
}
func (Push1) Finalize([]RefValue) (bool, bool) { return false, true }
func (p Push1) Resolve(*Resolver) Op            { return p }

type PushVoid struct{}

func (PushVoid) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(NewRefValue(Void{}), SeverityValue)), nil
}
func (PushVoid) Finalize([]RefValue) (bool, bool) { return false, true }
func (p PushVoid) Resolve(*Resolver) Op            { return p }

type PushNull struct{}

func (PushNull) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(NewRefValue(Null{}), SeverityValue)), nil
}
func (PushNull) Finalize([]RefValue) (bool, bool) { return false, true }
func (p PushNull) Resolve(*Resolver) Op            { return p }

type PushTrue struct{}

func (PushTrue) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(NewRefValue(Bool(true)), SeverityValue)), nil
}
func (PushTrue) Finalize([]RefValue) (bool, bool) { return false, true }
func (p PushTrue) Resolve(*Resolver) Op            { return p }

type PushFalse struct{}

func (PushFalse) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(NewRefValue(Bool(false)), SeverityValue)), nil
}
func (PushFalse) Finalize([]RefValue) (bool, bool) { return false, true }
func (p PushFalse) Resolve(*Resolver) Op            { return p }

// --- globals / statics ---------------------------------------------------------

// LoadStatic pushes the program's Index'th static constant as a value
// capture, used for literal pool references (string/int/float literals
// shared across parselets).
type LoadStatic struct{ Index int }

func (o LoadStatic) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(ctx.Runtime.Program.Statics[o.Index], SeverityValue)), nil
}
func (LoadStatic) Finalize([]RefValue) (bool, bool) { return false, true }
func (o LoadStatic) Resolve(*Resolver) Op            { return o }

// LoadGlobal pushes the current content of global slot Index.
type LoadGlobal struct{ Index int }

func (o LoadGlobal) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(ctx.Runtime.Program.Globals[o.Index], SeverityValue)), nil
}
func (LoadGlobal) Finalize([]RefValue) (bool, bool) { return false, true }
func (o LoadGlobal) Resolve(*Resolver) Op            { return o }

// StoreGlobal is a documented no-op: global slots are seeded once at
// program construction and never reassigned from within a parse, a
// quirk carried over faithfully from the source this was distilled
// from rather than "fixed" here.
type StoreGlobal struct{ Index int }

func (StoreGlobal) Run(ctx *Context) (Accept, *Reject)  { return AcceptedNext(), nil }
func (StoreGlobal) Finalize([]RefValue) (bool, bool)    { return false, true }
func (o StoreGlobal) Resolve(*Resolver) Op              { return o }

// LoadFast pushes the current content of local slot Index.
type LoadFast struct{ Index int }

func (o LoadFast) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ValueCapture(ctx.GetLocal(o.Index), SeverityValue)), nil
}
func (LoadFast) Finalize([]RefValue) (bool, bool) { return false, true }
func (o LoadFast) Resolve(*Resolver) Op            { return o }

// StoreFast pops the topmost capture and assigns its value into local
// slot Index.
type StoreFast struct{ Index int }

func (o StoreFast) Run(ctx *Context) (Accept, *Reject) {
	c := ctx.Runtime.stackPop()
	ctx.SetLocal(o.Index, c.AsValue(ctx.Runtime))
	return AcceptedNext(), nil
}
func (StoreFast) Finalize([]RefValue) (bool, bool) { return false, true }
func (o StoreFast) Resolve(*Resolver) Op            { return o }

// --- capture access ------------------------------------------------------------

// LoadFastCapture pushes a copy of capture Pos (1-based; 0 means "all
// input consumed so far", handled by Context.GetCapture).
type LoadFastCapture struct{ Pos int }

func (o LoadFastCapture) Run(ctx *Context) (Accept, *Reject) {
	return AcceptedPush(ctx.GetCapture(o.Pos)), nil
}
func (LoadFastCapture) Finalize([]RefValue) (bool, bool) { return false, true }
func (o LoadFastCapture) Resolve(*Resolver) Op            { return o }

// LoadCapture pops a capture, reads it as an integer position, and
// pushes that dynamically-addressed capture — the runtime-indexed
// sibling of LoadFastCapture's compile-time-constant position.
type LoadCapture struct{}

func (LoadCapture) Run(ctx *Context) (Accept, *Reject) {
	pos := ctx.Runtime.stackPop()
	idx := int(pos.AsValue(ctx.Runtime).V.ToInt())
	return AcceptedPush(ctx.GetCapture(idx)), nil
}
func (LoadCapture) Finalize([]RefValue) (bool, bool) { return false, true }
func (o LoadCapture) Resolve(*Resolver) Op            { return o }

// StoreFastCapture pops the topmost capture and writes it into capture
// slot Pos.
type StoreFastCapture struct{ Pos int }

func (o StoreFastCapture) Run(ctx *Context) (Accept, *Reject) {
	c := ctx.Runtime.stackPop()
	ctx.SetCapture(o.Pos, c)
	return AcceptedNext(), nil
}
func (StoreFastCapture) Finalize([]RefValue) (bool, bool) { return false, true }
func (o StoreFastCapture) Resolve(*Resolver) Op            { return o }

// StoreCapture pops a value, then a position, and writes the value into
// that dynamically-addressed capture slot.
type StoreCapture struct{}

func (StoreCapture) Run(ctx *Context) (Accept, *Reject) {
	value := ctx.Runtime.stackPop()
	pos := ctx.Runtime.stackPop()
	idx := int(pos.AsValue(ctx.Runtime).V.ToInt())
	ctx.SetCapture(idx, value)
	return AcceptedNext(), nil
}
func (StoreCapture) Finalize([]RefValue) (bool, bool) { return false, true }
func (o StoreCapture) Resolve(*Resolver) Op            { return o }

// --- composition/value construction ---------------------------------------------

// Create collects the current frame's captures (single-mode off, so a
// lone unnamed survivor does not collapse the way a Sequence's own
// end-of-run collect would) and wraps the result into a
// {emit: Name, children|value: collected} dict, returned via
// Accept::Return so it replaces the whole call's result outright
// rather than being placed as one more capture among siblings. A
// collected result of exactly one unnamed item is unwrapped under the
// "value" key (a single Match's text, say); several items, or a dict
// produced by named sub-captures, go under "children"; an empty frame
// puts void under "value". Grounded on §4.1's Create(name).
type Create struct {
	Name string
}

func NewCreate(name string) Create { return Create{Name: name} }

func (o Create) Run(ctx *Context) (Accept, *Reject) {
	collected := ctx.Collect(ctx.captureStart, false, false)
	v := collected.AsValue(ctx.Runtime)

	dict := NewDict()
	dict.Insert("emit", NewRefValue(Str(o.Name)))

	list, isList := v.V.(*List)
	_, isDict := v.V.(*Dict)
	switch {
	case isList && list.Len() == 1:
		dict.Insert("value", list.Items[0])
	case isList || isDict:
		dict.Insert("children", v)
	default:
		dict.Insert("value", v)
	}

	return AcceptedReturn(NewRefValue(dict)), nil
}
func (Create) Finalize([]RefValue) (bool, bool) { return false, true }
func (o Create) Resolve(*Resolver) Op            { return o }

// Lexeme runs Body, then discards whatever captures it produced and
// replaces them with a single Range capture (value severity) over the
// exact input text Body consumed, read out as a Str when materialized — the Op behind source-level lexer/token blocks that
// want raw text regardless of internal structure.
type Lexeme struct {
	Body Op
}

func (o Lexeme) Run(ctx *Context) (Accept, *Reject) {
	start := ctx.Runtime.Reader.Tell()
	mark := ctx.Runtime.stackLen()

	accept, reject := o.Body.Run(ctx)
	if reject != nil {
		return Accept{}, reject
	}

	ctx.Runtime.stackTruncate(mark)

	if accept.Kind == AcceptSkip {
		return accept, nil
	}

	rng := ctx.Runtime.Reader.CaptureFrom(start)
	return AcceptedPush(RangeCapture(rng, SeverityValue)), nil
}

func (o Lexeme) Finalize(statics []RefValue) (bool, bool) {
	return o.Body.Finalize(statics)
}

func (o Lexeme) Resolve(res *Resolver) Op {
	o.Body = o.Body.Resolve(res)
	return o
}

// --- lookahead / error escalation -----------------------------------------------

// Peek runs Body for its accept/reject outcome only: the reader
// position is always restored afterwards, so Body never consumes input
// from the caller's perspective.
type Peek struct {
	Body Op
}

func (o Peek) Run(ctx *Context) (Accept, *Reject) {
	start := ctx.Runtime.Reader.Tell()
	mark := ctx.Runtime.stackLen()
	_, reject := o.Body.Run(ctx)
	ctx.Runtime.Reader.Reset(start)
	ctx.Runtime.stackTruncate(mark)
	if reject != nil {
		return Accept{}, reject
	}
	return AcceptedNext(), nil
}

func (o Peek) Finalize(statics []RefValue) (bool, bool) {
	_, nullable := o.Body.Finalize(statics)
	return false, nullable
}

func (o Peek) Resolve(res *Resolver) Op {
	o.Body = o.Body.Resolve(res)
	return o
}

// Not is negative lookahead: Body succeeding rejects, Body rejecting
// (with RejectNext) succeeds. Reader position is always restored.
type Not struct {
	Body Op
}

func (o Not) Run(ctx *Context) (Accept, *Reject) {
	start := ctx.Runtime.Reader.Tell()
	mark := ctx.Runtime.stackLen()
	_, reject := o.Body.Run(ctx)
	ctx.Runtime.Reader.Reset(start)
	ctx.Runtime.stackTruncate(mark)
	if reject == nil {
		return Accept{}, RejectedNext()
	}
	if reject.Kind != RejectNext {
		return Accept{}, reject
	}
	return AcceptedNext(), nil
}

func (o Not) Finalize(statics []RefValue) (bool, bool) {
	o.Body.Finalize(statics)
	return false, true
}

func (o Not) Resolve(res *Resolver) Op {
	o.Body = o.Body.Resolve(res)
	return o
}

// Expect turns a plain RejectNext from Body into a RejectError carrying
// Message, escalating an ordinary backtrack into a hard parse error.
// Other reject kinds (Return/Main/Error) and all accepts pass through
// unchanged.
type Expect struct {
	Body    Op
	Message string
}

func (o Expect) Run(ctx *Context) (Accept, *Reject) {
	accept, reject := o.Body.Run(ctx)
	if reject == nil {
		return accept, nil
	}
	if reject.Kind != RejectNext {
		return Accept{}, reject
	}
	offset := ctx.Runtime.Reader.Tell()
	msg := o.Message
	if msg == "" {
		msg = "expected expression"
	}
	return Accept{}, RejectedError(NewError(&offset, msg))
}

func (o Expect) Finalize(statics []RefValue) (bool, bool) {
	return o.Body.Finalize(statics)
}

func (o Expect) Resolve(res *Resolver) Op {
	o.Body = o.Body.Resolve(res)
	return o
}

// --- calls -----------------------------------------------------------------

// CallStatic invokes the program's Index'th static value (a *Parselet
// or *Builtin) with no arguments.
type CallStatic struct{ Index int }

func (o CallStatic) Run(ctx *Context) (Accept, *Reject) {
	v := ctx.Runtime.Program.Statics[o.Index]
	return v.V.Call(ctx, 0, nil)
}

func (o CallStatic) Finalize(statics []RefValue) (bool, bool) {
	if p, ok := statics[o.Index].V.(*Parselet); ok {
		return p.leftrec, p.nullable
	}
	return false, true
}

func (o CallStatic) Resolve(*Resolver) Op { return o }

// TryCall pops the topmost capture; if its value is callable with no
// arguments it is invoked and its outcome replaces the capture,
// otherwise the value is pushed back untouched. This is what lets a
// bareword identifier serve as either a parameterless parselet
// invocation or a plain value reference.
type TryCall struct{}

func (TryCall) Run(ctx *Context) (Accept, *Reject) {
	c := ctx.Runtime.stackPop()
	v := c.AsValue(ctx.Runtime)
	if v.V.IsCallable(false) {
		return v.V.Call(ctx, 0, nil)
	}
	return AcceptedPush(c), nil
}
func (TryCall) Finalize([]RefValue) (bool, bool) { return true, true }
func (o TryCall) Resolve(*Resolver) Op            { return o }

// Symbol is a not-yet-resolved identifier reference. Resolve replaces
// it with CallStatic (compile-time-known static parselet/builtin),
// Sequence{LoadFast, TryCall} (a local variable that may hold a
// callable), or Sequence{LoadGlobal, TryCall} (same, for a global).
// Run must never be reached on a Symbol that survived Resolve.
type Symbol struct{ Name string }

func (o Symbol) Run(*Context) (Accept, *Reject) {
	panic("tokay: unresolved symbol " + o.Name + " reached Run")
}

func (Symbol) Finalize([]RefValue) (bool, bool) { return true, true }

func (o Symbol) Resolve(res *Resolver) Op {
	return res.ResolveSymbol(o.Name)
}

// --- arithmetic ------------------------------------------------------------

type arithOp struct {
	code byte
}

func (o arithOp) Run(ctx *Context) (Accept, *Reject) {
	rhs := ctx.Runtime.stackPop().AsValue(ctx.Runtime)
	lhs := ctx.Runtime.stackPop().AsValue(ctx.Runtime)
	result, err := Arith(o.code, lhs.V, rhs.V)
	if err != nil {
		return Accept{}, RejectedError(err)
	}
	return AcceptedPush(ValueCapture(NewRefValue(result), SeverityValue)), nil
}
func (arithOp) Finalize([]RefValue) (bool, bool) { return false, true }
func (o arithOp) Resolve(*Resolver) Op            { return o }

type Add struct{ arithOp }
type Sub struct{ arithOp }
type Mul struct{ arithOp }
type Div struct{ arithOp }

func NewAdd() Add { return Add{arithOp{opAdd}} }
func NewSub() Sub { return Sub{arithOp{opSub}} }
func NewMul() Mul { return Mul{arithOp{opMul}} }
func NewDiv() Div { return Div{arithOp{opDiv}} }
