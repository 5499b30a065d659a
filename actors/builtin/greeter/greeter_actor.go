package greeter

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

// Actor keeps the set of names it has greeted and emits an event for every greeting.
// Anyone may greet.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Greet,
		3:                         a.HasGreeted,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.GreeterActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

func (a Actor) IsSingleton() bool {
	return false
}

var _ runtime.VMActor = Actor{}

type GreetParams struct {
	Name string
}

type HasGreetedReturn struct {
	Greeted bool
}

// Recorded against the message receipt for every greeting.
type GreetedEvent struct {
	From addr.Address
	To   string
	Time uint64
}

func (a Actor) Constructor(rt runtime.Runtime, _ *adt.EmptyValue) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)
	st, err := ConstructState(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

func (a Actor) Greet(rt runtime.Runtime, params *GreetParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		err := st.AddGreeted(adt.AsStore(rt), params.Name)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to record greeting")
	})

	rt.EmitEvent(&GreetedEvent{
		From: rt.Message().Caller(),
		To:   params.Name,
		Time: rt.CurrTimestamp(),
	})
	return nil
}

func (a Actor) HasGreeted(rt runtime.Runtime, params *GreetParams) *HasGreetedReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	greeted, err := st.HasGreeted(adt.AsStore(rt), params.Name)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to look up greeting")
	return &HasGreetedReturn{Greeted: greeted}
}
