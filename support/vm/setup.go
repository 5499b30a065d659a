package vm

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/account"
	"github.com/leakr-project/leakr-actors/actors/builtin/exported"
	initactor "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/states"
	"github.com/leakr-project/leakr-actors/support/ipld"
	actor_testing "github.com/leakr-project/leakr-actors/support/testing"
)

// A genesis timestamp for scenarios, 2020-09-13T12:26:40Z.
const GenesisTimestamp = uint64(1_600_000_000)

//
// Genesis like setup
//

// BuiltinLookup indexes every built-in actor implementation by code.
func BuiltinLookup() ActorImplLookup {
	lookup := ActorImplLookup{}
	for _, ba := range exported.BuiltinActors() {
		lookup[ba.Code()] = ba
	}
	return lookup
}

// Creates a new VM and initializes the singleton init actor.
func NewVMWithSingletons(ctx context.Context, t *testing.T) *VM {
	return NewVMWithConfig(ctx, t, Config{
		NetworkName:      builtin.DefaultNetworkName,
		GenesisTimestamp: GenesisTimestamp,
	})
}

func NewVMWithConfig(ctx context.Context, t *testing.T, cfg Config) *VM {
	vm, err := NewVM(ctx, BuiltinLookup(), ipld.NewBlockStoreInMemory(), cfg)
	require.NoError(t, err)

	initState, err := initactor.ConstructState(vm.store, cfg.NetworkName)
	require.NoError(t, err)
	initializeActor(t, vm, initState, builtin.InitActorCodeID, builtin.InitActorAddr)

	_, err = vm.checkpoint()
	require.NoError(t, err)

	return vm
}

// Creates n account actors in the VM, returning their public key addresses.
// Accounts are registered with the init actor so their key addresses resolve.
func CreateAccounts(ctx context.Context, t *testing.T, vm *VM, n int, seed int64) []address.Address {
	var initState initactor.State
	err := vm.GetState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	addrPairs := make([]addrPair, n)
	for i := range addrPairs {
		addr := actor_testing.NewBLSAddr(t, seed+int64(i))
		idAddr, err := initState.MapAddressToNewID(vm.store, addr)
		require.NoError(t, err)

		addrPairs[i] = addrPair{
			pubAddr: addr,
			idAddr:  idAddr,
		}
	}
	err = vm.setActorState(ctx, builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	pubAddrs := make([]address.Address, len(addrPairs))
	for i, addrPair := range addrPairs {
		st := &account.State{Address: addrPair.pubAddr}
		initializeActor(t, vm, st, builtin.AccountActorCodeID, addrPair.idAddr)
		pubAddrs[i] = addrPair.pubAddr
	}

	_, err = vm.checkpoint()
	require.NoError(t, err)
	return pubAddrs
}

//
//  internal stuff
//

func (vm *VM) setActorState(ctx context.Context, key address.Address, state cbor.Marshaler) error {
	stateCid, err := vm.store.Put(ctx, state)
	if err != nil {
		return err
	}
	a, found, err := vm.actors.GetActor(key)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("actor %v not found", key)
	}
	a.Head = stateCid
	return vm.setActor(key, a)
}

func initializeActor(t *testing.T, vm *VM, state cbor.Marshaler, code cid.Cid, a address.Address) {
	stateCID, err := vm.store.Put(vm.ctx, state)
	require.NoError(t, err)
	actor := &states.Actor{
		Head: stateCID,
		Code: code,
	}
	err = vm.setActor(a, actor)
	require.NoError(t, err)
}

type addrPair struct {
	pubAddr address.Address
	idAddr  address.Address
}
