package release

import (
	addr "github.com/filecoin-project/go-address"

	"github.com/leakr-project/leakr-actors/actors/builtin"
)

type StateSummary struct {
	Author      addr.Address
	ReleaseTime uint64
	Released    bool
}

// Checks internal invariants of record state at time now.
func CheckStateInvariants(st *State, now uint64) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	acc.Require(st.Author.Protocol() == addr.ID, "author %v must be an ID address", st.Author)

	return &StateSummary{
		Author:      st.Author,
		ReleaseTime: st.ReleaseTime,
		Released:    st.IsReleased(now),
	}, acc
}
