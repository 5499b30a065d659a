package init_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	init_ "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
	"github.com/leakr-project/leakr-actors/support/mock"
	tutil "github.com/leakr-project/leakr-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, init_.Actor{})
}

func TestConstructor(t *testing.T) {
	actor := initHarness{init_.Actor{}, t}

	receiver := tutil.NewIDAddr(t, 1000)
	builder := mock.NewBuilder(context.Background(), receiver).WithCaller(builtin.SystemActorAddr, cid.Undef)
	rt := builder.Build(t)
	actor.constructAndVerify(rt)
}

func TestExec(t *testing.T) {
	actor := initHarness{init_.Actor{}, t}

	receiver := tutil.NewIDAddr(t, 1000)
	anne := tutil.NewIDAddr(t, 1001)
	builder := mock.NewBuilder(context.Background(), receiver).WithCaller(builtin.SystemActorAddr, cid.Undef)

	var fakeParams = runtime.CBORBytes([]byte{'D', 'E', 'A', 'D', 'B', 'E', 'E', 'F'})

	t.Run("abort actors that cannot be exec'd", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(anne, builtin.AccountActorCodeID)
		for _, code := range []cid.Cid{builtin.AccountActorCodeID, builtin.InitActorCodeID, cid.Undef} {
			rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
			rt.ExpectAbort(exitcode.ErrForbidden, func() {
				actor.execAndVerify(rt, code, []byte{})
			})
		}
	})

	t.Run("abort callers that cannot sign", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(tutil.NewIDAddr(t, 1002), builtin.LeakActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbort(exitcode.SysErrForbidden, func() {
			actor.execAndVerify(rt, builtin.LeakActorCodeID, fakeParams)
		})
	})

	t.Run("happy path exec create 2 records", func(t *testing.T) {
		rt := builder.Build(t)

		actor.constructAndVerify(rt)
		rt.SetCaller(anne, builtin.AccountActorCodeID)

		// re-org-stable address of the leak actor
		uniqueAddr1 := tutil.NewActorAddr(t, []byte("leak"))
		rt.SetNewActorAddress(uniqueAddr1)

		// next id address
		expectedIdAddr1 := tutil.NewIDAddr(t, 100)
		rt.ExpectCreateActor(builtin.LeakActorCodeID, expectedIdAddr1)

		// expect anne deploying a leak to trigger a send to its constructor
		rt.ExpectSend(expectedIdAddr1, builtin.MethodConstructor, fakeParams, nil, exitcode.Ok)
		execRet1 := actor.execAndVerify(rt, builtin.LeakActorCodeID, fakeParams)
		assert.Equal(t, uniqueAddr1, execRet1.RobustAddress)
		assert.Equal(t, expectedIdAddr1, execRet1.IDAddress)

		var st init_.State
		rt.GetState(&st)
		actualIdAddr, found, err := st.ResolveAddress(rt.AdtStore(), uniqueAddr1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, expectedIdAddr1, actualIdAddr)

		// a second record is created with the next ID
		uniqueAddr2 := tutil.NewActorAddr(t, []byte("release"))
		rt.SetNewActorAddress(uniqueAddr2)
		expectedIdAddr2 := tutil.NewIDAddr(t, 101)
		rt.ExpectCreateActor(builtin.ReleaseActorCodeID, expectedIdAddr2)
		rt.ExpectSend(expectedIdAddr2, builtin.MethodConstructor, fakeParams, nil, exitcode.Ok)
		execRet2 := actor.execAndVerify(rt, builtin.ReleaseActorCodeID, fakeParams)
		assert.Equal(t, uniqueAddr2, execRet2.RobustAddress)
		assert.Equal(t, expectedIdAddr2, execRet2.IDAddress)

		rt.GetState(&st)
		actualIdAddr2, found, err := st.ResolveAddress(rt.AdtStore(), uniqueAddr2)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, expectedIdAddr2, actualIdAddr2)

		summary, msgs := init_.CheckStateInvariants(&st, rt.AdtStore())
		assert.True(t, msgs.IsEmpty(), msgs.Messages())
		assert.Len(t, summary.AddrIDs, 2)
	})

	t.Run("happy path exec create greeter", func(t *testing.T) {
		rt := builder.Build(t)

		actor.constructAndVerify(rt)
		rt.SetCaller(anne, builtin.AccountActorCodeID)

		uniqueAddr := tutil.NewActorAddr(t, []byte("greeter"))
		rt.SetNewActorAddress(uniqueAddr)
		expectedIdAddr := tutil.NewIDAddr(t, 100)
		rt.ExpectCreateActor(builtin.GreeterActorCodeID, expectedIdAddr)
		rt.ExpectSend(expectedIdAddr, builtin.MethodConstructor, runtime.CBORBytes(nil), nil, exitcode.Ok)
		execRet := actor.execAndVerify(rt, builtin.GreeterActorCodeID, nil)
		assert.Equal(t, expectedIdAddr, execRet.IDAddress)
	})

	t.Run("sending to constructor failure", func(t *testing.T) {
		rt := builder.Build(t)

		actor.constructAndVerify(rt)
		rt.SetCaller(anne, builtin.AccountActorCodeID)

		uniqueAddr := tutil.NewActorAddr(t, []byte("leak"))
		rt.SetNewActorAddress(uniqueAddr)

		expectedIdAddr := tutil.NewIDAddr(t, 100)
		rt.ExpectCreateActor(builtin.LeakActorCodeID, expectedIdAddr)

		// the constructor send fails, so the whole exec aborts with its code
		rt.ExpectSend(expectedIdAddr, builtin.MethodConstructor, fakeParams, nil, exitcode.ErrIllegalState)
		rt.ExpectAbort(exitcode.ErrIllegalState, func() {
			actor.execAndVerify(rt, builtin.LeakActorCodeID, fakeParams)
		})

		// since the send failed, the uniqueAddr should not resolve
		var st init_.State
		rt.GetState(&st)
		noResoAddr, found, err := st.ResolveAddress(rt.AdtStore(), uniqueAddr)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, addr.Undef, noResoAddr)
	})
}

type initHarness struct {
	init_.Actor
	t testing.TB
}

func (h *initHarness) constructAndVerify(rt *mock.Runtime) {
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, &init_.ConstructorParams{NetworkName: "leakr-test"})
	assert.Nil(h.t, ret)
	rt.Verify()

	var st init_.State
	rt.GetState(&st)
	emptyMap, err := adt.StoreEmptyMap(rt.AdtStore(), builtin.DefaultHamtBitwidth)
	require.NoError(h.t, err)
	assert.Equal(h.t, emptyMap, st.AddressMap)
	assert.Equal(h.t, int64(builtin.FirstNonSingletonActorId), int64(st.NextID))
	assert.Equal(h.t, "leakr-test", st.NetworkName)
}

func (h *initHarness) execAndVerify(rt *mock.Runtime, codeID cid.Cid, constructorParams []byte) *init_.ExecReturn {
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	ret := rt.Call(h.Exec, &init_.ExecParams{
		CodeCID:           codeID,
		ConstructorParams: constructorParams,
	}).(*init_.ExecReturn)
	rt.Verify()
	return ret
}
