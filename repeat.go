package tokay

// Repeat runs Body between Min and Max times (Max == 0 means
// unbounded), pushing each iteration's capture in turn — unless
// Silent, in which case iterations still consume input but push
// nothing, the shape a whitespace-skipping repeat needs (§4.3's
// Repeat(min, max, silent) carries this same flag). A successful
// iteration that consumes no input ends the loop, whether or not Max
// is set, since repeating a zero-width match would never progress.
// Grounded on §4.3.
type Repeat struct {
	Body   Op
	Min    int
	Max    int // 0 = unbounded
	Silent bool
}

func NewRepeat(body Op, min, max int) *Repeat {
	return &Repeat{Body: body, Min: min, Max: max}
}

// NewSilentRepeat is NewRepeat with Silent set, e.g. for a
// whitespace-skipping Star that must not leave captures behind.
func NewSilentRepeat(body Op, min, max int) *Repeat {
	return &Repeat{Body: body, Min: min, Max: max, Silent: true}
}

// Optional is Repeat{0, 1}.
func Optional(body Op) *Repeat { return NewRepeat(body, 0, 1) }

// Star is Repeat{0, unbounded}.
func Star(body Op) *Repeat { return NewRepeat(body, 0, 0) }

// Plus is Repeat{1, unbounded}.
func Plus(body Op) *Repeat { return NewRepeat(body, 1, 0) }

func (o *Repeat) Run(ctx *Context) (Accept, *Reject) {
	count := 0

	for {
		start := ctx.Runtime.Reader.Tell()

		accept, reject := o.Body.Run(ctx)
		if reject != nil {
			if reject.Kind == RejectNext {
				if count >= o.Min {
					break
				}
				return Accept{}, reject
			}
			return Accept{}, reject
		}

		switch accept.Kind {
		case AcceptReturn:
			return accept, nil
		case AcceptRepeat:
			count++
			if accept.Value != nil && !o.Silent {
				ctx.Push(ValueCapture(accept.Value, SeverityValue))
			}
			return AcceptedNext(), nil
		case AcceptPush:
			if !o.Silent {
				ctx.Push(accept.Capture)
			}
			count++
		default: // AcceptNext, AcceptSkip
			count++
		}

		if o.Max > 0 && count >= o.Max {
			break
		}

		if ctx.Runtime.Reader.Tell().Byte == start.Byte {
			// zero-width match: one iteration is enough, further
			// iterations would never terminate or progress.
			break
		}
	}

	if count < o.Min {
		return Accept{}, RejectedNext()
	}
	return AcceptedNext(), nil
}

func (o *Repeat) Finalize(statics []RefValue) (bool, bool) {
	leftrec, nullable := o.Body.Finalize(statics)
	if o.Min == 0 {
		nullable = true
	}
	return leftrec, nullable
}

func (o *Repeat) Resolve(res *Resolver) Op {
	o.Body = o.Body.Resolve(res)
	return o
}
