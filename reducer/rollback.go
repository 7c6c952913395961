package reducer

import "github.com/sevanspowell/hydra-poc/head"

// rollback pops depth layers off the prev chain. Idle has no predecessor
// and absorbs any remaining depth (spec §4.4). prev is the only field this
// function ever reads; it is never observed any other way.
func rollback(state head.State, depth int) head.Outcome {
	next := state
	for i := 0; i < depth; i++ {
		if _, ok := next.(head.Idle); ok {
			break
		}
		prev := next.Previous()
		if prev == nil {
			break
		}
		next = prev
	}
	return head.NewStateOutcome{
		State:   next,
		Effects: []head.Effect{head.ClientEffectOf{Output: head.RolledBack{}}},
	}
}
