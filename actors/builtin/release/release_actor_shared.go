package release

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/runtime"
)

// Params and returns common to both record actors.

type ChangeReleaseTimeParams struct {
	NewTime uint64
}

type GetMessageReturn struct {
	Message string
}

type GetInfoReturn struct {
	Author      addr.Address
	ReleaseTime uint64
	Released    bool
}

// Records are deployed through the init actor. The author is the account that signed the
// deploying message, never a parameter.
func constructRecord(rt runtime.Runtime, description, message string, releaseTime uint64) {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)
	author := rt.Message().Origin()
	builtin.RequireState(rt, author.Protocol() == addr.ID, "origin %v is not an ID address", author)

	rt.StateCreate(ConstructState(author, description, message, releaseTime))
}

func readMessage(rt runtime.Runtime) *GetMessageReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	msg, err := st.MessageAt(rt.CurrTimestamp())
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "cannot read message")
	return &GetMessageReturn{Message: msg}
}

// Returns the release time before the change.
func reschedule(rt runtime.Runtime, newTime uint64, policy SchedulePolicy) uint64 {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()
	now := rt.CurrTimestamp()

	var st State
	var prev uint64
	rt.StateTransaction(&st, func() {
		prev = st.ReleaseTime
		err := st.Reschedule(caller, now, newTime, policy)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "cannot change release time")
	})
	return prev
}

func readInfo(rt runtime.Runtime) *GetInfoReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	return &GetInfoReturn{
		Author:      st.Author,
		ReleaseTime: st.ReleaseTime,
		Released:    st.IsReleased(rt.CurrTimestamp()),
	}
}
