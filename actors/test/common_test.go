package test

import (
	"bytes"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	init_ "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/builtin/release"
	"github.com/leakr-project/leakr-actors/support/vm"
)

const day = uint64(100_000)

func execActor(t *testing.T, v *vm.VM, deployer addr.Address, code cid.Cid, params cbor.Marshaler) *init_.ExecReturn {
	paramBuf := new(bytes.Buffer)
	if params != nil {
		require.NoError(t, params.MarshalCBOR(paramBuf))
	}

	initParam := init_.ExecParams{
		CodeCID:           code,
		ConstructorParams: paramBuf.Bytes(),
	}
	ret := vm.ApplyOk(t, v, deployer, builtin.InitActorAddr, builtin.MethodsInit.Exec, &initParam)
	initRet, ok := ret.(*init_.ExecReturn)
	require.True(t, ok)
	return initRet
}

func deployLeak(t *testing.T, v *vm.VM, author addr.Address, description, message string, releaseTime uint64) addr.Address {
	return execActor(t, v, author, builtin.LeakActorCodeID, &release.LeakConstructorParams{
		PublicDescription: description,
		Message:           message,
		ReleaseTime:       releaseTime,
	}).IDAddress
}

func deployRelease(t *testing.T, v *vm.VM, author addr.Address, message string, releaseTime uint64) addr.Address {
	return execActor(t, v, author, builtin.ReleaseActorCodeID, &release.ReleaseConstructorParams{
		Message:     message,
		ReleaseTime: releaseTime,
	}).IDAddress
}

func readMessage(t *testing.T, v *vm.VM, reader, record addr.Address) string {
	ret := vm.ApplyOk(t, v, reader, record, builtin.MethodsLeak.GetMessage, nil)
	msg, ok := ret.(*release.GetMessageReturn)
	require.True(t, ok)
	return msg.Message
}

func getInfo(t *testing.T, v *vm.VM, reader, record addr.Address) *release.GetInfoReturn {
	ret := vm.ApplyOk(t, v, reader, record, builtin.MethodsLeak.GetInfo, nil)
	info, ok := ret.(*release.GetInfoReturn)
	require.True(t, ok)
	return info
}
