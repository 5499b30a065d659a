package test

import (
	"bytes"
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/greeter"
	"github.com/leakr-project/leakr-actors/support/vm"
)

func TestGreeterRecordsGreetingsAndEvents(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 2, 93837778)
	alice, bob := addrs[0], addrs[1]
	aliceID, _ := v.NormalizeAddress(alice)
	bobID, _ := v.NormalizeAddress(bob)

	greeterAddr := execActor(t, v, alice, builtin.GreeterActorCodeID, nil).IDAddress

	hasGreeted := func(name string) bool {
		ret := vm.ApplyOk(t, v, bob, greeterAddr, builtin.MethodsGreeter.HasGreeted, &greeter.GreetParams{Name: name})
		return ret.(*greeter.HasGreetedReturn).Greeted
	}
	assert.False(t, hasGreeted("carol"))

	first := vm.RequireApplyMessage(t, v, alice, greeterAddr, builtin.MethodsGreeter.Greet, &greeter.GreetParams{Name: "carol"})
	require.NoError(t, v.SetTimestamp(v.GetTimestamp()+60))
	second := vm.RequireApplyMessage(t, v, bob, greeterAddr, builtin.MethodsGreeter.Greet, &greeter.GreetParams{Name: "carol"})

	assert.True(t, hasGreeted("carol"))
	assert.False(t, hasGreeted("dave"))

	// Every greeting is recorded against its own message, even a repeated one.
	assert.Equal(t, greeter.GreetedEvent{From: aliceID, To: "carol", Time: vm.GenesisTimestamp}, onlyGreetedEvent(t, v, first, greeterAddr))
	assert.Equal(t, greeter.GreetedEvent{From: bobID, To: "carol", Time: vm.GenesisTimestamp + 60}, onlyGreetedEvent(t, v, second, greeterAddr))

	var st greeter.State
	require.NoError(t, v.GetState(greeterAddr, &st))
	summary, msgs := greeter.CheckStateInvariants(&st, v.Store())
	assert.True(t, msgs.IsEmpty(), msgs.Messages())
	assert.Equal(t, 1, summary.GreetedCount)
	vm.RequireStateInvariants(t, v)
}

func onlyGreetedEvent(t *testing.T, v *vm.VM, result vm.MessageResult, emitter addr.Address) greeter.GreetedEvent {
	events, err := v.GetEvents(result.EventsRoot)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, emitter, events[0].Emitter)

	var ev greeter.GreetedEvent
	require.NoError(t, ev.UnmarshalCBOR(bytes.NewReader(events[0].Payload)))
	return ev
}
