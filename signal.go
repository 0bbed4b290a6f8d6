package tokay

// Accept and Reject are the two control-flow signals every Op.Run
// produces, mirroring tokay.rs's Accept/Reject enums. Op.Run follows
// Go's (value, error) convention: it returns (Accept, *Reject), where a
// nil *Reject means the Accept return is meaningful and any non-nil
// *Reject means rejection, with the Accept return undefined/zero.

type AcceptKind uint8

const (
	AcceptNext AcceptKind = iota
	AcceptSkip
	AcceptPush
	AcceptRepeat
	AcceptReturn
)

type Accept struct {
	Kind    AcceptKind
	Capture Capture  // meaningful when Kind == AcceptPush
	Value   RefValue // meaningful when Kind == AcceptRepeat / AcceptReturn; nil means "no value"
}

func AcceptedNext() Accept { return Accept{Kind: AcceptNext} }
func AcceptedSkip() Accept { return Accept{Kind: AcceptSkip} }

func AcceptedPush(c Capture) Accept {
	return Accept{Kind: AcceptPush, Capture: c}
}

func AcceptedRepeat(v RefValue) Accept {
	return Accept{Kind: AcceptRepeat, Value: v}
}

func AcceptedReturn(v RefValue) Accept {
	return Accept{Kind: AcceptReturn, Value: v}
}

type RejectKind uint8

const (
	RejectNext RejectKind = iota
	RejectReturn
	RejectMain
	RejectErrorKind
)

// Reject implements error so Op.Run's second return composes with
// ordinary Go error-handling idiom, even though its Kind usually
// matters more than its Error() string.
type Reject struct {
	Kind RejectKind
	Err  *Error // meaningful when Kind == RejectErrorKind
}

func (r *Reject) Error() string {
	switch r.Kind {
	case RejectErrorKind:
		return r.Err.Error()
	case RejectMain:
		return "rejected to main"
	case RejectReturn:
		return "rejected, returning from parselet"
	default:
		return "rejected"
	}
}

func RejectedNext() *Reject   { return &Reject{Kind: RejectNext} }
func RejectedReturn() *Reject { return &Reject{Kind: RejectReturn} }
func RejectedMain() *Reject   { return &Reject{Kind: RejectMain} }

func RejectedError(err *Error) *Reject {
	return &Reject{Kind: RejectErrorKind, Err: err}
}
