package tokay

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/tokay-lang/tokay/ascii"
)

// dumpConfig controls how Dump renders values: indented, pointer
// addresses suppressed, method output ignored — a human-browsing
// rather than a reflective-serialization config.
var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Dump writes a deep, recursive rendering of v to w, showing
// captures/values without a bespoke pretty-printer, the way the
// teacher's TreePrinter did for its own Value enum. Nothing in the
// engine or its tests calls it.
func Dump(w io.Writer, v any) {
	dumpConfig.Fdump(w, v)
}

// Sdump is Dump into a string, handy for assert.Equal failure messages
// in tests.
func Sdump(v any) string {
	return dumpConfig.Sdump(v)
}

// Tracer emits structured step-by-step parse tracing, gated by a
// Config's "vm.trace" flag. The engine itself does not create a Tracer
// or call Step; a caller that wants trace lines drives it directly.
type Tracer struct {
	Out     io.Writer
	Enabled bool
	Theme   ascii.Theme
}

// NewTracer builds a Tracer reading its enabled state from config's
// vm.trace setting, writing to os.Stderr with the default color theme.
func NewTracer(config *Config) *Tracer {
	return &Tracer{
		Out:     os.Stderr,
		Enabled: config.GetBool("vm.trace"),
		Theme:   ascii.DefaultTheme,
	}
}

// Step logs one Op's outcome at a reader position, e.g.:
//
//	Step(Char{...}, offset, accept, nil)
func (t *Tracer) Step(op Op, at Offset, accept Accept, reject *Reject) {
	if !t.Enabled {
		return
	}

	label := fmt.Sprintf("%T", op)
	pos := ascii.Color(t.Theme.Span, "%s", at.String())

	if reject != nil {
		fmt.Fprintf(t.Out, "%s %s %s\n", pos, ascii.Color(t.Theme.Error, "reject"), label)
		return
	}

	var verb string
	switch accept.Kind {
	case AcceptPush:
		verb = ascii.Color(t.Theme.Success, "push")
	case AcceptRepeat:
		verb = ascii.Color(t.Theme.Accent, "repeat")
	case AcceptReturn:
		verb = ascii.Color(t.Theme.Accent, "return")
	case AcceptSkip:
		verb = ascii.Color(t.Theme.Muted, "skip")
	default:
		verb = ascii.Color(t.Theme.Info, "next")
	}
	fmt.Fprintf(t.Out, "%s %s %s\n", pos, verb, label)
}
