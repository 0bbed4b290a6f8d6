package tokay

import "fmt"

// Program is a fully assembled, ready-to-run parser: a static table of
// callables/constants, a global table, and the index of the parselet
// main-mode drives. Grounded on the newer, index-based vm/program.rs
// rather than the older pointer-graph Program — this is the shape
// intended for direct programmatic construction (Add*/SetMain) rather
// than emission from a compiler front end, which is out of scope here.
type Program struct {
	Statics     []RefValue
	StaticNames map[string]int

	Globals     []RefValue
	GlobalNames map[string]int

	Main int // index into Statics; -1 until SetMain
}

func NewProgram() *Program {
	return &Program{
		StaticNames: map[string]int{},
		GlobalNames: map[string]int{},
		Main:        -1,
	}
}

// AddStatic appends v to the static table, optionally registering name
// for Resolve's compile-time lookup. Returns the assigned index.
func (p *Program) AddStatic(name string, v RefValue) int {
	idx := len(p.Statics)
	p.Statics = append(p.Statics, v)
	if name != "" {
		p.StaticNames[name] = idx
	}
	return idx
}

// AddGlobal appends v to the global table under name. Returns the
// assigned index.
func (p *Program) AddGlobal(name string, v RefValue) int {
	idx := len(p.Globals)
	p.Globals = append(p.Globals, v)
	if name != "" {
		p.GlobalNames[name] = idx
	}
	return idx
}

// SetMain designates the parselet registered under name as the one
// main-mode drives.
func (p *Program) SetMain(name string) error {
	idx, ok := p.StaticNames[name]
	if !ok {
		return fmt.Errorf("tokay: no such parselet %q", name)
	}
	p.Main = idx
	return nil
}

// Compile runs the Resolve pass followed by the leftrec/nullable
// fixed-point Finalize pass, in that order: Finalize's CallStatic
// traversal is only precise once every Symbol has already been
// replaced by a concrete Op. Returns the number of Finalize rounds.
func (p *Program) Compile() int {
	ResolveProgram(p)
	return Finalize(p.Statics)
}

// Run parses the full contents of reader against the main parselet,
// returning the list of top-level results main-mode accumulated.
func (p *Program) Run(reader Reader, config *Config) (RefValue, *Reject) {
	if p.Main < 0 {
		return nil, RejectedError(NewError(nil, "program has no main parselet"))
	}
	main, ok := p.Statics[p.Main].V.(*Parselet)
	if !ok {
		return nil, RejectedError(NewError(nil, "main static is not a parselet"))
	}

	if config == nil {
		config = NewConfig()
	}
	rt := NewRuntime(p, reader, config)

	results, reject := main.RunMain(rt)
	if reject != nil {
		return nil, reject
	}
	return NewRefValue(results), nil
}

func (p *Program) RunFromReader(reader Reader) (RefValue, *Reject) {
	return p.Run(reader, NewConfig())
}

func (p *Program) RunFromString(s string) (RefValue, *Reject) {
	return p.Run(NewRuneReaderFromString(s), NewConfig())
}

func (p *Program) RunFromFile(path string) (RefValue, *Reject) {
	reader, err := NewRuneReaderFromFile(path)
	if err != nil {
		return nil, RejectedError(NewError(nil, err.Error()))
	}
	return p.Run(reader, NewConfig())
}
