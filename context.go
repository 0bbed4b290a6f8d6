package tokay

import "strconv"

// Context is a parselet call's frame: where on the shared capture
// stack this call's captures begin, where its locals live, and the
// reader offset the call started at. Grounded on tokay.rs's Context
// struct plus its Drop impl, reproduced here as an explicit Close
// method since Go has no destructors.
type Context struct {
	Runtime  *Runtime
	Parselet *Parselet

	stackStart   int
	captureStart int
	readerStart  Offset

	locals []RefValue
}

// NewContext opens a frame for a parselet call. Callers must invoke
// Close at every exit path (normally via defer) to truncate the shared
// capture stack back down, the stand-in for tokay.rs's automatic Drop.
func NewContext(rt *Runtime, parselet *Parselet) *Context {
	return &Context{
		Runtime:      rt,
		Parselet:     parselet,
		stackStart:   rt.stackLen(),
		captureStart: rt.stackLen(),
		readerStart:  rt.Reader.Tell(),
		locals:       make([]RefValue, len(parselet.Locals)),
	}
}

// Close truncates the shared capture stack back to where this frame
// began. Safe to call more than once.
func (ctx *Context) Close() {
	if ctx.Runtime.stackLen() > ctx.stackStart {
		ctx.Runtime.stackTruncate(ctx.stackStart)
	}
}

func (ctx *Context) ReaderStart() Offset {
	return ctx.readerStart
}

// Push appends a capture to the top of the shared stack, implementing
// Accept.Push's effect.
func (ctx *Context) Push(c Capture) {
	ctx.Runtime.stackPush(c)
}

// GetCapture resolves a 1-based capture reference. Position 0 is
// special-cased to mean "everything consumed by this call so far",
// synthesized directly from the reader rather than read off the stack.
func (ctx *Context) GetCapture(pos int) Capture {
	if pos == 0 {
		return RangeCapture(ctx.Runtime.Reader.CaptureFrom(ctx.readerStart), SeverityValue)
	}
	idx := ctx.captureStart + pos - 1
	if idx < 0 || idx >= ctx.Runtime.stackLen() {
		return EmptyCapture()
	}
	return ctx.Runtime.stackAt(idx)
}

// SetCapture overwrites a 1-based capture slot, growing the stack with
// empty captures as needed. Position 0 cannot be assigned.
func (ctx *Context) SetCapture(pos int, c Capture) {
	if pos == 0 {
		panic("capture 0 is read-only")
	}
	idx := ctx.captureStart + pos - 1
	for idx >= ctx.Runtime.stackLen() {
		ctx.Runtime.stackPush(EmptyCapture())
	}
	ctx.Runtime.stackSet(idx, c)
}

// GetCaptureByName scans this frame's captures from the top down for
// the most recently pushed capture with the given name.
func (ctx *Context) GetCaptureByName(name string) Capture {
	for i := ctx.Runtime.stackLen() - 1; i >= ctx.captureStart; i-- {
		c := ctx.Runtime.stackAt(i)
		if c.Name() == name {
			return c
		}
	}
	return EmptyCapture()
}

func (ctx *Context) SetCaptureByName(name string, c Capture) {
	for i := ctx.Runtime.stackLen() - 1; i >= ctx.captureStart; i-- {
		if ctx.Runtime.stackAt(i).Name() == name {
			ctx.Runtime.stackSet(i, c.Named(name))
			return
		}
	}
	ctx.Runtime.stackPush(c.Named(name))
}

// --- locals ------------------------------------------------------------------

func (ctx *Context) GetLocal(idx int) RefValue {
	v := ctx.locals[idx]
	if v == nil {
		v = NewRefValue(Void{})
		ctx.locals[idx] = v
	}
	return v
}

func (ctx *Context) SetLocal(idx int, v RefValue) {
	ctx.locals[idx] = v
}

// --- collect -------------------------------------------------------------------

// Collect implements the capture-stack-to-AST-value reduction of §4.6:
// captures below the maximum severity present are pruned, a lone
// surviving unnamed capture collapses to its own value when single is
// set, several unnamed captures become a List, and any named capture
// present forces a Dict keyed by name (unnamed survivors fill in
// positional "0", "1", ... keys ahead of the named ones).
//
// When copy is false the shared stack is truncated back to
// captureStart as part of collecting; when true the stack is left
// untouched (used for peeking at what a nested call produced without
// consuming it).
func (ctx *Context) Collect(captureStart int, copy bool, single bool) Capture {
	rt := ctx.Runtime
	end := rt.stackLen()

	type entry struct {
		cap Capture
	}

	var named, unnamed []entry
	// maxSeverity only ever considers unnamed captures: a Named capture's
	// severity must never influence which unnamed siblings survive
	// pruning (tokay.rs's Capture::Named match arm never touches it)
	// since a named capture is always kept regardless of severity.
	maxSeverity := SeveritySilent

	for i := captureStart; i < end; i++ {
		c := rt.stackAt(i)
		if c.IsEmpty() {
			continue
		}
		if c.Name() != "" {
			named = append(named, entry{c})
			continue
		}
		if c.Severity() > maxSeverity {
			maxSeverity = c.Severity()
		}
		unnamed = append(unnamed, entry{c})
	}

	if !copy {
		rt.stackTruncate(captureStart)
	}

	if maxSeverity == SeveritySilent && len(named) == 0 {
		return EmptyCapture()
	}

	keep := func(c Capture) bool { return c.Severity() == maxSeverity }

	if len(named) == 0 {
		var kept []Capture
		for _, e := range unnamed {
			if keep(e.cap) {
				kept = append(kept, e.cap)
			}
		}
		if len(kept) == 0 {
			return EmptyCapture()
		}
		if single && len(kept) == 1 {
			return kept[0]
		}
		list := NewList()
		for _, c := range kept {
			list.Push(c.AsValue(rt))
		}
		return ValueCapture(NewRefValue(list), SeverityValue)
	}

	dict := NewDict()
	pos := 0
	for _, e := range unnamed {
		if keep(e.cap) {
			dict.Insert(strconv.Itoa(pos), e.cap.AsValue(rt))
			pos++
		}
	}
	for _, e := range named {
		dict.Insert(e.cap.Name(), e.cap.AsValue(rt))
	}
	return ValueCapture(NewRefValue(dict), SeverityValue)
}
