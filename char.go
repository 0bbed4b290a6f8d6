package tokay

// Char matches a single rune against a Charset (or, inverted, any rune
// not in it), pushing a Range capture over the matched rune and
// advancing the reader by one rune — unless Silent, in which case
// the match still consumes input but pushes nothing (§4.2's
// Char(ccl, repeats, silent) carries this same flag). Grounded on
// §4.2's Char Op.
type Char struct {
	Set      *Charset
	Inverted bool
	Silent   bool
}

func NewChar(set *Charset) Char {
	return Char{Set: set}
}

func NewCharInverted(set *Charset) Char {
	return Char{Set: set, Inverted: true}
}

// NewSilentChar builds a Char that consumes a matching rune without
// pushing a capture for it, e.g. a whitespace-skipping terminal.
func NewSilentChar(set *Charset) Char {
	return Char{Set: set, Silent: true}
}

func (o Char) Run(ctx *Context) (Accept, *Reject) {
	r, ok := ctx.Runtime.Reader.Peek()
	if !ok {
		return Accept{}, RejectedNext()
	}

	matched := o.Set.Has(r)
	if o.Inverted {
		matched = !matched
	}
	if !matched {
		return Accept{}, RejectedNext()
	}

	start := ctx.Runtime.Reader.Tell()
	ctx.Runtime.Reader.Next()
	if o.Silent {
		return AcceptedNext(), nil
	}
	rng := ctx.Runtime.Reader.CaptureFrom(start)
	return AcceptedPush(RangeCapture(rng, SeverityNormal)), nil
}

func (Char) Finalize([]RefValue) (bool, bool) { return false, false }
func (o Char) Resolve(*Resolver) Op            { return o }
