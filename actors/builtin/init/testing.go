package init

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

type StateSummary struct {
	AddrIDs map[addr.Address]abi.ActorID
	NextID  abi.ActorID
}

// Checks internal invariants of init state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		AddrIDs: make(map[addr.Address]abi.ActorID),
		NextID:  st.NextID,
	}

	acc.Require(len(st.NetworkName) > 0, "network name is empty")
	acc.Require(st.NextID >= builtin.FirstNonSingletonActorId, "next id %d is too low", st.NextID)

	initSeenIDs := make(map[abi.ActorID]addr.Address)
	if addrs, err := adt.AsMap(store, st.AddressMap, builtin.DefaultHamtBitwidth); err != nil {
		acc.Addf("error loading address map: %v", err)
	} else {
		var actorID cbg.CborInt
		err = addrs.ForEach(&actorID, func(key string) error {
			actorAddr, err := addr.NewFromBytes([]byte(key))
			if err != nil {
				return err
			}
			acc.Require(actorAddr.Protocol() != addr.ID, "unexpected id address in init actor map: %v", actorAddr)

			if prev, found := initSeenIDs[abi.ActorID(actorID)]; found {
				acc.Addf("duplicate mapping to ID %d: %v, %v", actorID, prev, actorAddr)
			}
			initSeenIDs[abi.ActorID(actorID)] = actorAddr
			summary.AddrIDs[actorAddr] = abi.ActorID(actorID)

			acc.Require(abi.ActorID(actorID) < st.NextID, "actor id %d for %v not less than next id %d", actorID, actorAddr, st.NextID)
			return nil
		})
		acc.RequireNoError(err, "error iterating address map")
	}

	return summary, acc
}
