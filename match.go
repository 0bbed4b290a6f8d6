package tokay

import "strings"

// Match compares the reader's upcoming text against a fixed string
// literal, rune by rune, either matching it verbatim or (if Silent) as
// an unspoken keyword boundary used internally by other combinators.
// Grounded on §4.2's Match Op.
type Match struct {
	Text   string
	Silent bool
}

func NewMatch(text string) Match {
	return Match{Text: text}
}

func (o Match) Run(ctx *Context) (Accept, *Reject) {
	start := ctx.Runtime.Reader.Tell()

	for _, want := range o.Text {
		got, ok := ctx.Runtime.Reader.Next()
		if !ok || got != want {
			ctx.Runtime.Reader.Reset(start)
			return Accept{}, RejectedNext()
		}
	}

	if o.Text == "" {
		return AcceptedNext(), nil
	}

	rng := ctx.Runtime.Reader.CaptureFrom(start)
	if o.Silent {
		return AcceptedNext(), nil
	}
	return AcceptedPush(RangeCapture(rng, SeverityNormal)), nil
}

func (o Match) Finalize([]RefValue) (bool, bool) {
	return false, o.Text == ""
}

func (o Match) Resolve(*Resolver) Op { return o }

func (o Match) String() string {
	return strings.TrimSpace(o.Text)
}
