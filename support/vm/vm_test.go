package vm_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/account"
	"github.com/leakr-project/leakr-actors/actors/builtin/greeter"
	initactor "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/builtin/release"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	tutil "github.com/leakr-project/leakr-actors/support/testing"
	"github.com/leakr-project/leakr-actors/support/vm"
)

func TestGenesis(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 2, 93837778)

	var initSt initactor.State
	require.NoError(t, v.GetState(builtin.InitActorAddr, &initSt))
	assert.Equal(t, builtin.DefaultNetworkName, initSt.NetworkName)
	assert.EqualValues(t, builtin.FirstNonSingletonActorId+2, initSt.NextID)

	for i, a := range addrs {
		idAddr, found := v.NormalizeAddress(a)
		require.True(t, found)
		assert.Equal(t, tutil.NewIDAddr(t, uint64(builtin.FirstNonSingletonActorId+i)), idAddr)

		var st account.State
		require.NoError(t, v.GetState(a, &st))
		assert.Equal(t, a, st.Address)
	}
	assert.Equal(t, vm.GenesisTimestamp, v.GetTimestamp())
	vm.RequireStateInvariants(t, v)
}

func TestClock(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)

	require.NoError(t, v.SetTimestamp(vm.GenesisTimestamp+10))
	require.NoError(t, v.SetTimestamp(vm.GenesisTimestamp+10))
	assert.Error(t, v.SetTimestamp(vm.GenesisTimestamp+9))
	assert.Equal(t, vm.GenesisTimestamp+10, v.GetTimestamp())

	require.NoError(t, v.SetEpoch(3))
	assert.Error(t, v.SetEpoch(2))
	assert.EqualValues(t, 3, v.GetEpoch())
}

func TestApplyMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown sender is rejected", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		stranger := tutil.NewBLSAddr(t, 1)
		result := v.ApplyMessage(stranger, builtin.InitActorAddr, builtin.MethodsInit.Exec, nil)
		assert.Equal(t, exitcode.SysErrSenderInvalid, result.Code)
	})

	t.Run("non-account sender is rejected", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		result := v.ApplyMessage(builtin.InitActorAddr, builtin.InitActorAddr, builtin.MethodsInit.Exec, nil)
		assert.Equal(t, exitcode.SysErrSenderInvalid, result.Code)
	})

	t.Run("undefined method", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		addrs := vm.CreateAccounts(ctx, t, v, 1, 93837778)
		greeterAddr, _ := deploy(t, v, addrs[0], builtin.GreeterActorCodeID, nil)

		vm.ApplyCode(t, v, addrs[0], greeterAddr, 9, nil, exitcode.SysErrInvalidMethod)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		addrs := vm.CreateAccounts(ctx, t, v, 1, 93837778)
		vm.ApplyCode(t, v, addrs[0], tutil.NewIDAddr(t, 999), builtin.MethodsGreeter.Greet,
			&greeter.GreetParams{Name: "x"}, exitcode.SysErrInvalidReceiver)
	})

	t.Run("call sequence advances on failure", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		addrs := vm.CreateAccounts(ctx, t, v, 1, 93837778)

		// A record constructor may only be invoked by the init actor.
		vm.ApplyCode(t, v, addrs[0], builtin.InitActorAddr, builtin.MethodsInit.Constructor,
			&initactor.ConstructorParams{NetworkName: "x"}, exitcode.SysErrForbidden)

		act, found, err := v.GetActor(addrs[0])
		require.NoError(t, err)
		require.True(t, found)
		assert.EqualValues(t, 1, act.CallSeqNum)
	})

	t.Run("failed deployment leaves no trace", func(t *testing.T) {
		v := vm.NewVMWithSingletons(ctx, t)
		addrs := vm.CreateAccounts(ctx, t, v, 1, 93837778)
		before, err := v.StateRoot()
		require.NoError(t, err)

		// Malformed constructor params fail inside the nested constructor call.
		result := v.ApplyMessage(addrs[0], builtin.InitActorAddr, builtin.MethodsInit.Exec, &initactor.ExecParams{
			CodeCID:           builtin.ReleaseActorCodeID,
			ConstructorParams: []byte{0x01},
		})
		assert.Equal(t, exitcode.ErrSerialization, result.Code)

		var initSt initactor.State
		require.NoError(t, v.GetState(builtin.InitActorAddr, &initSt))
		assert.EqualValues(t, builtin.FirstNonSingletonActorId+1, initSt.NextID)

		// Only the sender's call sequence moved.
		after, err := v.StateRoot()
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
		act, _, err := v.GetActor(addrs[0])
		require.NoError(t, err)
		assert.EqualValues(t, 1, act.CallSeqNum)
		vm.RequireStateInvariants(t, v)
	})
}

func TestInvocationTrace(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 1, 93837778)
	sender, _ := v.NormalizeAddress(addrs[0])

	ctorParams := &release.ReleaseConstructorParams{Message: "m", ReleaseTime: vm.GenesisTimestamp + 100}
	idAddr, _ := deploy(t, v, addrs[0], builtin.ReleaseActorCodeID, ctorParams)

	vm.ExpectInvocation{
		To:     builtin.InitActorAddr,
		Method: builtin.MethodsInit.Exec,
		From:   vm.ExpectAddress(sender),
		SubInvocations: []vm.ExpectInvocation{{
			To:     idAddr,
			Method: builtin.MethodConstructor,
			From:   vm.ExpectAddress(builtin.InitActorAddr),
			Params: vm.ExpectBytes(marshal(t, ctorParams)),
			Ret:    vm.ExpectObject(nil),
		}},
	}.Matches(t, v.LastInvocation())

	assert.Len(t, v.Invocations(), 1)
	assert.Equal(t, runtime.CBORBytes(marshal(t, ctorParams)), vm.ParamsForInvocation(t, v, 0, 0))
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 1, 93837778)
	sender, _ := v.NormalizeAddress(addrs[0])
	greeterAddr, _ := deploy(t, v, addrs[0], builtin.GreeterActorCodeID, nil)

	result := vm.RequireApplyMessage(t, v, addrs[0], greeterAddr, builtin.MethodsGreeter.Greet, &greeter.GreetParams{Name: "bob"})
	require.True(t, result.EventsRoot.Defined())

	events, err := v.GetEvents(result.EventsRoot)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, greeterAddr, events[0].Emitter)

	var ev greeter.GreetedEvent
	require.NoError(t, ev.UnmarshalCBOR(bytes.NewReader(events[0].Payload)))
	assert.Equal(t, greeter.GreetedEvent{From: sender, To: "bob", Time: vm.GenesisTimestamp}, ev)

	// Reads emit nothing.
	result = vm.RequireApplyMessage(t, v, addrs[0], greeterAddr, builtin.MethodsGreeter.HasGreeted, &greeter.GreetParams{Name: "bob"})
	assert.False(t, result.EventsRoot.Defined())
	assert.Equal(t, &greeter.HasGreetedReturn{Greeted: true}, result.Ret)
	events, err = v.GetEvents(result.EventsRoot)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 1, 93837778)
	releaseTime := vm.GenesisTimestamp + 100
	recordAddr, _ := deploy(t, v, addrs[0], builtin.LeakActorCodeID, &release.LeakConstructorParams{
		PublicDescription: "d",
		Message:           "m",
		ReleaseTime:       releaseTime,
	})
	require.NoError(t, v.SetTimestamp(vm.GenesisTimestamp+50))

	var buf bytes.Buffer
	_, err := v.ExportCAR(&buf)
	require.NoError(t, err)

	restored, err := vm.NewVMFromCAR(ctx, vm.BuiltinLookup(), &buf)
	require.NoError(t, err)

	expectedRoot, err := v.StateRoot()
	require.NoError(t, err)
	actualRoot, err := restored.StateRoot()
	require.NoError(t, err)
	assert.Equal(t, expectedRoot, actualRoot)
	assert.Equal(t, v.GetTimestamp(), restored.GetTimestamp())
	assert.Equal(t, v.Config().NetworkName, restored.Config().NetworkName)

	var st release.State
	require.NoError(t, restored.GetState(recordAddr, &st))
	assert.Equal(t, releaseTime, st.ReleaseTime)

	// The restored VM keeps executing: the record is still hidden.
	vm.ApplyCode(t, restored, addrs[0], recordAddr, builtin.MethodsLeak.GetMessage, nil, release.ErrNotYetReleased)
	require.NoError(t, restored.SetTimestamp(releaseTime+1))
	ret := vm.ApplyOk(t, restored, addrs[0], recordAddr, builtin.MethodsLeak.GetMessage, nil)
	assert.Equal(t, &release.GetMessageReturn{Message: "m"}, ret)
	vm.RequireStateInvariants(t, restored)
}

func deploy(t *testing.T, v *vm.VM, from address.Address, code cid.Cid, params cbor.Marshaler) (address.Address, address.Address) {
	var ctorBytes []byte
	if params != nil {
		ctorBytes = marshal(t, params)
	}
	ret := vm.ApplyOk(t, v, from, builtin.InitActorAddr, builtin.MethodsInit.Exec, &initactor.ExecParams{
		CodeCID:           code,
		ConstructorParams: ctorBytes,
	}).(*initactor.ExecReturn)
	return ret.IDAddress, ret.RobustAddress
}

func marshal(t *testing.T, o cbor.Marshaler) []byte {
	var buf bytes.Buffer
	require.NoError(t, o.MarshalCBOR(&buf))
	return buf.Bytes()
}
