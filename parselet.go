package tokay

import "fmt"

// Parselet is a named, callable parsing rule: a Body Op plus the local
// variable slots its Op tree addresses via LoadFast/StoreFast. It
// implements Value so CallStatic/TryCall can invoke it exactly like any
// other callable, and so it can be stored in locals, globals or the
// static table. Grounded on §4.7.
type Parselet struct {
	Name       string
	Body       Op
	LocalNames []string

	leftrec  bool
	nullable bool
}

func NewParselet(name string, locals []string, body Op) *Parselet {
	// nullable starts optimistic (true) and only ever drops to false as
	// finalize discovers a mandatory consuming step; leftrec starts
	// pessimistic (false) and only ever rises to true. Both fields are
	// the per-round fixed-point state the driver in finalize.go updates.
	return &Parselet{Name: name, Body: body, LocalNames: locals, nullable: true}
}

func (p *Parselet) Locals() []string { return p.LocalNames }

// --- Value ---------------------------------------------------------------------

func (p *Parselet) Type() string         { return "parselet" }
func (p *Parselet) IsTrue() bool         { return true }
func (p *Parselet) Repr() string         { return fmt.Sprintf("<parselet %s>", p.Name) }
func (p *Parselet) IsCallable(bool) bool { return true }
func (p *Parselet) IsConsuming() bool    { return !p.nullable }
func (p *Parselet) ToInt() int64         { return 0 }
func (p *Parselet) ToFloat() float64     { return 0 }

// Call invokes the parselet as a nested rule: it opens a fresh Context,
// runs Body, and folds whatever Body produced into a single capture the
// same way Context.Collect folds any other capture group, then pushes
// that as this call's own result.
func (p *Parselet) Call(ctx *Context, argc int, nargs *Dict) (Accept, *Reject) {
	rt := ctx.Runtime
	child := NewContext(rt, p)
	defer child.Close()

	accept, reject := p.Body.Run(child)
	if reject != nil {
		if reject.Kind == RejectReturn {
			return Accept{}, RejectedNext()
		}
		return Accept{}, reject
	}

	if accept.Kind == AcceptReturn && accept.Value != nil {
		return AcceptedPush(ValueCapture(accept.Value, SeverityValue)), nil
	}

	// A body that already collected itself (Sequence, Block, ...) hands
	// its result up as Accept::Push; fold it onto this frame before the
	// final collect the same way a Sequence item would.
	if accept.Kind == AcceptPush {
		child.Push(accept.Capture)
	}

	result := child.Collect(child.captureStart, false, true)
	return AcceptedPush(result), nil
}

// Finalize recomputes this parselet's leftrec/nullable contribution for
// the current fixed-point round; the driver in finalize.go compares the
// result against the stored fields to detect convergence.
func (p *Parselet) Finalize(statics []RefValue) (bool, bool) {
	return p.Body.Finalize(statics)
}

// ResolveBody late-binds Symbol references inside Body.
func (p *Parselet) ResolveBody(res *Resolver) {
	p.Body = p.Body.Resolve(res)
}

// RunMain drives the "main mode" loop (§4.7/§7): repeatedly invoke this
// parselet at the reader's current position, collecting each
// successful result into a list, and whenever a position fails to
// parse skip forward by one rune and retry. Returns the accumulated
// results, or the offending Reject if one escalates to RejectMain or a
// hard RejectErrorKind.
func (p *Parselet) RunMain(rt *Runtime) (*List, *Reject) {
	results := NewList()

	for !rt.Reader.EOF() {
		if max := rt.Config.GetInt("vm.max_main_steps"); max > 0 && rt.mainSteps >= max {
			break
		}
		rt.mainSteps++

		before := rt.Reader.Tell()
		child := NewContext(rt, p)
		accept, reject := p.Body.Run(child)

		if reject != nil {
			child.Close()
			if reject.Kind == RejectMain || reject.Kind == RejectErrorKind {
				return results, reject
			}
			rt.Reader.Reset(before)
			if _, ok := rt.Reader.Next(); !ok {
				break
			}
			continue
		}

		var resultCap Capture
		if accept.Kind == AcceptReturn && accept.Value != nil {
			resultCap = ValueCapture(accept.Value, SeverityValue)
		} else {
			if accept.Kind == AcceptPush {
				child.Push(accept.Capture)
			}
			resultCap = child.Collect(child.captureStart, false, true)
		}
		child.Close()

		if !resultCap.IsEmpty() {
			results.Push(resultCap.AsValue(rt))
		}

		if rt.Reader.Tell().Byte == before.Byte {
			if _, ok := rt.Reader.Next(); !ok {
				break
			}
		}
	}

	return results, nil
}
