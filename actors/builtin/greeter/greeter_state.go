package greeter

import (
	cid "github.com/ipfs/go-cid"
	xerrors "golang.org/x/xerrors"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

type State struct {
	Greeted cid.Cid // HAMT[string]EmptyValue
}

func ConstructState(store adt.Store) (*State, error) {
	emptySetCid, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty set: %w", err)
	}
	return &State{Greeted: emptySetCid}, nil
}

// Adds name to the greeted set. Greeting a name twice leaves the set unchanged.
func (st *State) AddGreeted(store adt.Store, name string) error {
	greeted, err := adt.AsSet(store, st.Greeted, builtin.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load greeted set: %w", err)
	}
	if err := greeted.Put(adt.StringKey(name)); err != nil {
		return xerrors.Errorf("failed to add %q to greeted set: %w", name, err)
	}
	if st.Greeted, err = greeted.Root(); err != nil {
		return xerrors.Errorf("failed to flush greeted set: %w", err)
	}
	return nil
}

func (st *State) HasGreeted(store adt.Store, name string) (bool, error) {
	greeted, err := adt.AsSet(store, st.Greeted, builtin.DefaultHamtBitwidth)
	if err != nil {
		return false, xerrors.Errorf("failed to load greeted set: %w", err)
	}
	return greeted.Has(adt.StringKey(name))
}
