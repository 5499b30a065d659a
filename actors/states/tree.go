package states

import (
	"github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"
	xerrors "golang.org/x/xerrors"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

// Value type for the actor state tree.
type Actor struct {
	Code       cid.Cid // The code of the actor.
	Head       cid.Cid // The root of the actor's state.
	CallSeqNum uint64  // Number of top-level messages sent by this actor.
}

// A specialization of a map of ID-addresses to actor heads.
type Tree struct {
	Map   *adt.Map
	Store adt.Store
}

// Initializes a new, empty state tree backed by a store.
func NewTree(store adt.Store) (*Tree, error) {
	emptyMap, err := adt.MakeEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Map:   emptyMap,
		Store: store,
	}, nil
}

// Loads a tree from a root CID and store.
func LoadTree(s adt.Store, r cid.Cid) (*Tree, error) {
	m, err := adt.AsMap(s, r, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Map:   m,
		Store: s,
	}, nil
}

// Writes the tree root node to the store, and returns its CID.
func (t *Tree) Flush() (cid.Cid, error) {
	return t.Map.Root()
}

// Loads the state associated with an address.
func (t *Tree) GetActor(addr address.Address) (*Actor, bool, error) {
	if addr.Protocol() != address.ID {
		return nil, false, xerrors.Errorf("non-ID address %v invalid as actor key", addr)
	}
	var actor Actor
	found, err := t.Map.Get(adt.AddrKey(addr), &actor)
	return &actor, found, err
}

// Sets the state associated with an address, overwriting if it already present.
func (t *Tree) SetActor(addr address.Address, actor *Actor) error {
	if addr.Protocol() != address.ID {
		return xerrors.Errorf("non-ID address %v invalid as actor key", addr)
	}
	return t.Map.Put(adt.AddrKey(addr), actor)
}

// Traverses all entries in the tree.
func (t *Tree) ForEach(fn func(addr address.Address, actor *Actor) error) error {
	var val Actor
	return t.Map.ForEach(&val, func(key string) error {
		addr, err := address.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		return fn(addr, &val)
	})
}
