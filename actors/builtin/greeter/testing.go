package greeter

import (
	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

type StateSummary struct {
	GreetedCount int
}

// Checks internal invariants of greeter state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{}

	greeted, err := adt.AsSet(store, st.Greeted, builtin.DefaultHamtBitwidth)
	if err != nil {
		acc.Addf("error loading greeted set: %v", err)
		return summary, acc
	}
	err = greeted.ForEach(func(k string) error {
		summary.GreetedCount++
		return nil
	})
	acc.RequireNoError(err, "error iterating greeted set")

	return summary, acc
}
