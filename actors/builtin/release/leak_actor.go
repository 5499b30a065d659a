package release

import (
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

// LeakActor is a record with a public description whose release time is frozen
// once the message is public.
type LeakActor struct{}

func (a LeakActor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.GetMessage,
		3:                         a.GetPublicDescription,
		4:                         a.ChangeReleaseTime,
		5:                         a.GetInfo,
	}
}

func (a LeakActor) Code() cid.Cid {
	return builtin.LeakActorCodeID
}

func (a LeakActor) State() cbor.Er {
	return new(State)
}

func (a LeakActor) IsSingleton() bool {
	return false
}

var _ runtime.VMActor = LeakActor{}

type LeakConstructorParams struct {
	PublicDescription string
	Message           string
	ReleaseTime       uint64
}

type GetPublicDescriptionReturn struct {
	PublicDescription string
}

func (a LeakActor) Constructor(rt runtime.Runtime, params *LeakConstructorParams) *adt.EmptyValue {
	constructRecord(rt, params.PublicDescription, params.Message, params.ReleaseTime)
	return nil
}

// Fails with ErrNotYetReleased until the release time has passed, for every caller.
func (a LeakActor) GetMessage(rt runtime.Runtime, _ *adt.EmptyValue) *GetMessageReturn {
	return readMessage(rt)
}

func (a LeakActor) GetPublicDescription(rt runtime.Runtime, _ *adt.EmptyValue) *GetPublicDescriptionReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.StateReadonly(&st)
	return &GetPublicDescriptionReturn{PublicDescription: st.PublicDescription}
}

// Only the author may change the release time, and only while the message is pending.
func (a LeakActor) ChangeReleaseTime(rt runtime.Runtime, params *ChangeReleaseTimeParams) *adt.EmptyValue {
	reschedule(rt, params.NewTime, StrictPolicy{})
	return nil
}

func (a LeakActor) GetInfo(rt runtime.Runtime, _ *adt.EmptyValue) *GetInfoReturn {
	return readInfo(rt)
}
