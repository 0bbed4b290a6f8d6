package tokay

// Finalize computes the least fixed point of every parselet's leftrec
// and nullable flags across statics: leftrec only ever flips
// false→true, nullable only ever flips true→false, so repeatedly
// recomputing both from the current Op tree (which consults other
// parselets' already-settled flags via CallStatic.Finalize) converges
// in a bounded number of rounds. Returns how many rounds it took,
// grounded on §4.8.
func Finalize(statics []RefValue) int {
	loops := 0
	for {
		loops++
		changed := false

		for _, rv := range statics {
			p, ok := rv.V.(*Parselet)
			if !ok {
				continue
			}

			leftrec, nullable := p.Finalize(statics)

			if leftrec && !p.leftrec {
				p.leftrec = true
				changed = true
			}
			if !nullable && p.nullable {
				p.nullable = false
				changed = true
			}
		}

		if !changed {
			return loops
		}
	}
}
