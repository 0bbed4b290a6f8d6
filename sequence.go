package tokay

// SequenceItem is one element of a Sequence: the sub-Op to run and,
// when it captures a value, the field name that capture should be
// tagged with (empty for unnamed/positional captures).
type SequenceItem struct {
	Op    Op
	Alias string
}

// Sequence runs its Items in order, backtracking the reader and
// discarding any captures already pushed the moment any item rejects
// with RejectNext. AcceptRepeat/AcceptReturn from an item propagate
// immediately, short-circuiting the remaining items (they signal a
// Repeat/Parselet-level control transfer, not an ordinary match).
// Grounded on §4.4.
type Sequence struct {
	Items []SequenceItem
}

func NewSequence(items ...SequenceItem) *Sequence {
	return &Sequence{Items: items}
}

func (o *Sequence) Run(ctx *Context) (Accept, *Reject) {
	start := ctx.Runtime.Reader.Tell()
	mark := ctx.Runtime.stackLen()

	for _, item := range o.Items {
		accept, reject := item.Op.Run(ctx)
		if reject != nil {
			if reject.Kind == RejectNext {
				ctx.Runtime.Reader.Reset(start)
				ctx.Runtime.stackTruncate(mark)
			}
			return Accept{}, reject
		}

		switch accept.Kind {
		case AcceptNext, AcceptSkip:
			// no capture to place
		case AcceptPush:
			c := accept.Capture
			if item.Alias != "" {
				c = c.Named(item.Alias)
			}
			ctx.Push(c)
		case AcceptRepeat, AcceptReturn:
			return accept, nil
		}
	}

	// After all items ran: attempt collection (single-mode on). If a
	// capture emerges, push it; else, if the reader advanced, produce a
	// silent Range spanning what was consumed; else plain Accept::Next.
	// Grounded on §4.4.
	if result := ctx.Collect(mark, false, true); !result.IsEmpty() {
		return AcceptedPush(result), nil
	}
	if end := ctx.Runtime.Reader.Tell(); end.Byte != start.Byte {
		return AcceptedPush(RangeCapture(ctx.Runtime.Reader.CaptureFrom(start), SeveritySilent)), nil
	}
	return AcceptedNext(), nil
}

func (o *Sequence) Finalize(statics []RefValue) (bool, bool) {
	leftrec := false
	nullable := true
	for _, item := range o.Items {
		lr, nu := item.Op.Finalize(statics)
		if nullable && lr {
			leftrec = true
		}
		if !nu {
			nullable = false
			// Ops after the first non-nullable item no longer
			// contribute to this sequence's own leftrec/nullable
			// status in terms of "can this run at the very start",
			// but finalize them anyway to propagate into their own
			// statics.
		}
	}
	return leftrec, nullable
}

func (o *Sequence) Resolve(res *Resolver) Op {
	for i, item := range o.Items {
		o.Items[i].Op = item.Op.Resolve(res)
	}
	return o
}
