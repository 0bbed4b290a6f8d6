package tokay

// nextBlockID hands out the monotonically increasing identity blocks
// use as part of their packrat memo key, standing in for the source's
// use of raw block pointer identity (stable identity without relying
// on Go values never moving).
var nextBlockID int

func newBlockID() int {
	id := nextBlockID
	nextBlockID++
	return id
}

// Block is ordered choice over Alternatives plus packrat memoization
// and left-recursion seed-and-grow, the engine's central combinator
// (§4.5). The first alternative to accept wins; if evaluating an
// alternative recurses back into this same Block at the same reader
// position, the memoized seed (initially a reject) is returned to that
// inner call, and the outer call keeps re-running the alternatives
// ("growing") for as long as each successive attempt consumes more
// input than the last.
//
// Per §4.5, the seed is established from only the non-left-recursive
// alternatives, and growth only re-runs the left-recursive ones;
// altLeftrec records that per-alternative split once Finalize has run.
type Block struct {
	id           int
	Alternatives []Op

	// altLeftrec[i] is whether Alternatives[i] came back left-recursive
	// the last time Finalize ran; nil until Finalize has run at least
	// once (e.g. a Block built directly in a test without going
	// through Program.Compile).
	altLeftrec []bool
}

func NewBlock(alternatives ...Op) *Block {
	return &Block{id: newBlockID(), Alternatives: alternatives}
}

// seedAndGrowAlternatives splits Alternatives into the set the seed
// attempt may use and the set growth may retry. CallStatic.Finalize
// reads its target parselet's already-settled leftrec flag rather than
// doing true self-reference detection, so a directly self-referential
// parselet's own leftrec can never flip from false through this
// formula alone (see DESIGN.md) — every alternative then reads as
// non-leftrec, which would leave growth with nothing to retry. Falling
// back to the full alternative list on either side whenever its
// genuine subset comes back empty keeps that case (and any Block built
// without Finalize having run) growing exactly as it did before the
// split existed.
func (o *Block) seedAndGrowAlternatives() (seed, grow []Op) {
	if o.altLeftrec == nil {
		return o.Alternatives, o.Alternatives
	}
	for i, alt := range o.Alternatives {
		if o.altLeftrec[i] {
			grow = append(grow, alt)
		} else {
			seed = append(seed, alt)
		}
	}
	if len(seed) == 0 {
		seed = o.Alternatives
	}
	if len(grow) == 0 {
		grow = o.Alternatives
	}
	return seed, grow
}

func (o *Block) Run(ctx *Context) (Accept, *Reject) {
	rt := ctx.Runtime
	start := rt.Reader.Tell()
	entryMark := rt.stackLen()
	key := memoKey{readerStart: start.Byte, blockID: o.id}

	if entry, ok := rt.memoGet(key); ok {
		rt.Reader.Reset(entry.readerEnd)
		for _, c := range entry.captures {
			rt.stackPush(c)
		}
		if entry.reject != nil {
			return Accept{}, entry.reject
		}
		return entry.accept, nil
	}

	// Seed with an immediate reject so a recursive re-entry at this
	// exact position backtracks instead of looping forever.
	rt.memoSet(key, memoEntry{readerEnd: start, reject: RejectedNext(), leftrec: true})

	seedAlts, growAlts := o.seedAndGrowAlternatives()

	rt.Reader.Reset(start)
	rt.stackTruncate(entryMark)

	accept, reject := o.runAlternatives(ctx, seedAlts)
	if reject != nil {
		rt.stackTruncate(entryMark)
		rt.memoSet(key, memoEntry{readerEnd: start, reject: reject})
		return Accept{}, reject
	}

	best := memoEntry{
		readerEnd: rt.Reader.Tell(),
		accept:    accept,
		captures:  append([]Capture(nil), rt.stack[entryMark:]...),
	}
	rt.memoSet(key, best)

	for {
		rt.Reader.Reset(start)
		rt.stackTruncate(entryMark)

		accept, reject := o.runAlternatives(ctx, growAlts)
		if reject != nil {
			rt.stackTruncate(entryMark)
			break
		}

		end := rt.Reader.Tell()
		if end.Byte <= best.readerEnd.Byte {
			rt.stackTruncate(entryMark)
			break
		}

		best = memoEntry{
			readerEnd: end,
			accept:    accept,
			captures:  append([]Capture(nil), rt.stack[entryMark:]...),
		}
		rt.memoSet(key, best)
	}

	rt.Reader.Reset(best.readerEnd)
	rt.stackTruncate(entryMark)
	for _, c := range best.captures {
		rt.stackPush(c)
	}
	rt.memoSet(key, best)
	return best.accept, nil
}

// runAlternatives tries each alternative in alts in turn, backtracking
// reader and stack between attempts, and returns the first to accept.
// A non-RejectNext rejection from any alternative propagates
// immediately since it represents a hard error rather than an ordinary
// backtrack. An alternative that accepts via Accept::Push but consumes
// no input is not taken as the winner unless it is the last one in
// alts — a nullable alternative earlier in the list shouldn't shadow a
// later one that might still consume something, per §4.5.
func (o *Block) runAlternatives(ctx *Context, alts []Op) (Accept, *Reject) {
	rt := ctx.Runtime
	start := rt.Reader.Tell()
	mark := rt.stackLen()

	var last *Reject
	for i, alt := range alts {
		rt.Reader.Reset(start)
		rt.stackTruncate(mark)

		accept, reject := alt.Run(ctx)
		if reject == nil {
			isLast := i == len(alts)-1
			if accept.Kind == AcceptPush && !isLast && rt.Reader.Tell().Byte == start.Byte {
				rt.stackTruncate(mark)
				last = RejectedNext()
				continue
			}
			return accept, nil
		}
		if reject.Kind != RejectNext {
			return Accept{}, reject
		}
		last = reject
	}

	if last == nil {
		last = RejectedNext()
	}
	return Accept{}, last
}

func (o *Block) Finalize(statics []RefValue) (bool, bool) {
	leftrec := false
	nullable := false
	altLeftrec := make([]bool, len(o.Alternatives))
	for i, alt := range o.Alternatives {
		lr, nu := alt.Finalize(statics)
		altLeftrec[i] = lr
		if lr {
			leftrec = true
		}
		if nu {
			nullable = true
		}
	}
	o.altLeftrec = altLeftrec
	return leftrec, nullable
}

func (o *Block) Resolve(res *Resolver) Op {
	for i, alt := range o.Alternatives {
		o.Alternatives[i] = alt.Resolve(res)
	}
	return o
}
