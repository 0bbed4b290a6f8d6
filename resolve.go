package tokay

import "fmt"

// Resolver carries the symbol tables Symbol.Resolve needs to decide
// what a bareword identifier refers to: a compile-time-known static
// callable (resolved straight to CallStatic), a local variable that
// might hold one (LoadFast+TryCall), or a global (LoadGlobal+TryCall).
// Grounded on §4.9.
type Resolver struct {
	Statics map[string]int
	Globals map[string]int
	Locals  map[string]int
}

func (r *Resolver) ResolveSymbol(name string) Op {
	if idx, ok := r.Statics[name]; ok {
		return CallStatic{Index: idx}
	}
	if idx, ok := r.Locals[name]; ok {
		return NewSequence(
			SequenceItem{Op: LoadFast{Index: idx}},
			SequenceItem{Op: TryCall{}},
		)
	}
	if idx, ok := r.Globals[name]; ok {
		return NewSequence(
			SequenceItem{Op: LoadGlobal{Index: idx}},
			SequenceItem{Op: TryCall{}},
		)
	}
	return unresolvedSymbol{Name: name}
}

// unresolvedSymbol is what a Symbol resolves to when no static, local
// or global binding matches its name: a hard parse error at Run time
// rather than a panic, since an undefined reference is a legitimate
// (if fatal) outcome for a program assembled programmatically.
type unresolvedSymbol struct{ Name string }

func (o unresolvedSymbol) Run(ctx *Context) (Accept, *Reject) {
	offset := ctx.Runtime.Reader.Tell()
	return Accept{}, RejectedError(NewError(&offset, fmt.Sprintf("unresolved symbol %q", o.Name)))
}

func (unresolvedSymbol) Finalize([]RefValue) (bool, bool) { return false, true }
func (o unresolvedSymbol) Resolve(*Resolver) Op            { return o }

// ResolveProgram runs the Resolve pass over every parselet in the
// program's static table, giving each its own Locals namespace built
// from its LocalNames while sharing the program-wide Statics/Globals
// tables.
func ResolveProgram(prog *Program) {
	for _, rv := range prog.Statics {
		p, ok := rv.V.(*Parselet)
		if !ok {
			continue
		}

		locals := make(map[string]int, len(p.LocalNames))
		for i, name := range p.LocalNames {
			if name != "" {
				locals[name] = i
			}
		}

		res := &Resolver{
			Statics: prog.StaticNames,
			Globals: prog.GlobalNames,
			Locals:  locals,
		}
		p.ResolveBody(res)
	}
}
