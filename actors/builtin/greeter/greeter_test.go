package greeter_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/greeter"
	"github.com/leakr-project/leakr-actors/support/mock"
	tutil "github.com/leakr-project/leakr-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, greeter.Actor{})
}

func TestGreeter(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 1000)
	alice := tutil.NewIDAddr(t, 100)
	bob := tutil.NewIDAddr(t, 101)
	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(builtin.InitActorAddr, builtin.InitActorCodeID).
		WithTimestamp(1000)

	t.Run("construction requires the init actor", func(t *testing.T) {
		rt := builder.Build(t)
		rt.SetCaller(alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		rt.ExpectAbort(exitcode.SysErrForbidden, func() {
			rt.Call(greeter.Actor{}.Constructor, nil)
		})
		rt.Verify()
	})

	t.Run("greet records the name and emits an event", func(t *testing.T) {
		rt := builder.Build(t)
		construct(rt)

		assert.False(t, hasGreeted(rt, "bob"))
		greet(rt, alice, "bob", 1000)
		assert.True(t, hasGreeted(rt, "bob"))
		assert.False(t, hasGreeted(rt, "carol"))

		checkState(t, rt, 1)
	})

	t.Run("greeting twice emits twice but stores once", func(t *testing.T) {
		rt := builder.Build(t)
		construct(rt)

		greet(rt, alice, "carol", 1000)
		rt.SetTimestamp(1005)
		greet(rt, bob, "carol", 1005)
		greet(rt, bob, "alice", 1005)

		checkState(t, rt, 2)
	})

	t.Run("empty name is an ordinary member", func(t *testing.T) {
		rt := builder.Build(t)
		construct(rt)

		greet(rt, alice, "", 1000)
		assert.True(t, hasGreeted(rt, ""))
	})
}

func construct(rt *mock.Runtime) {
	rt.SetCaller(builtin.InitActorAddr, builtin.InitActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
	rt.Call(greeter.Actor{}.Constructor, nil)
	rt.Verify()
}

func greet(rt *mock.Runtime, from addr.Address, name string, at uint64) {
	rt.SetCaller(from, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectEmitEvent(&greeter.GreetedEvent{From: from, To: name, Time: at})
	rt.Call(greeter.Actor{}.Greet, &greeter.GreetParams{Name: name})
	rt.Verify()
}

func hasGreeted(rt *mock.Runtime, name string) bool {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(greeter.Actor{}.HasGreeted, &greeter.GreetParams{Name: name}).(*greeter.HasGreetedReturn)
	rt.Verify()
	return ret.Greeted
}

func checkState(t *testing.T, rt *mock.Runtime, expectedCount int) {
	var st greeter.State
	rt.GetState(&st)
	summary, msgs := greeter.CheckStateInvariants(&st, rt.AdtStore())
	assert.True(t, msgs.IsEmpty(), msgs.Messages())
	assert.Equal(t, expectedCount, summary.GreetedCount)
}
