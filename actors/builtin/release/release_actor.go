package release

import (
	"github.com/filecoin-project/go-state-types/cbor"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

// ReleaseActor is a record whose author may reschedule at any time,
// including hiding a message again after it became public.
type ReleaseActor struct{}

func (a ReleaseActor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.GetMessage,
		3:                         nil, // no public description
		4:                         a.ChangeReleaseTime,
		5:                         a.GetInfo,
	}
}

func (a ReleaseActor) Code() cid.Cid {
	return builtin.ReleaseActorCodeID
}

func (a ReleaseActor) State() cbor.Er {
	return new(State)
}

func (a ReleaseActor) IsSingleton() bool {
	return false
}

var _ runtime.VMActor = ReleaseActor{}

type ReleaseConstructorParams struct {
	Message     string
	ReleaseTime uint64
}

func (a ReleaseActor) Constructor(rt runtime.Runtime, params *ReleaseConstructorParams) *adt.EmptyValue {
	constructRecord(rt, "", params.Message, params.ReleaseTime)
	return nil
}

func (a ReleaseActor) GetMessage(rt runtime.Runtime, _ *adt.EmptyValue) *GetMessageReturn {
	return readMessage(rt)
}

// Only the author may change the release time. There is no other restriction.
func (a ReleaseActor) ChangeReleaseTime(rt runtime.Runtime, params *ChangeReleaseTimeParams) *adt.EmptyValue {
	prev := reschedule(rt, params.NewTime, PermissivePolicy{})
	rt.Log(builtin.GetActorLogLevel(a, rtt.DEBUG), "release time changed from %d to %d", prev, params.NewTime)
	return nil
}

func (a ReleaseActor) GetInfo(rt runtime.Runtime, _ *adt.EmptyValue) *GetInfoReturn {
	return readInfo(rt)
}
