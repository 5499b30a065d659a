package vm

import (
	"context"
	"io"

	"github.com/filecoin-project/go-state-types/abi"
	block "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"
	car "github.com/ipld/go-car"
	carutil "github.com/ipld/go-car/util"
	"golang.org/x/xerrors"

	"github.com/leakr-project/leakr-actors/support/ipld"
)

// Snapshot is the root object of an exported VM: the state tree plus the clock readings.
type Snapshot struct {
	StateRoot   cid.Cid
	Epoch       abi.ChainEpoch
	Timestamp   uint64
	NetworkName string
}

// ExportCAR writes every block in the VM's store as a CARv1 archive rooted at a Snapshot.
// It returns the CID of the snapshot.
func (vm *VM) ExportCAR(w io.Writer) (cid.Cid, error) {
	stateRoot, err := vm.checkpoint()
	if err != nil {
		return cid.Undef, err
	}
	snapshot := &Snapshot{
		StateRoot:   stateRoot,
		Epoch:       vm.currentEpoch,
		Timestamp:   vm.timestamp,
		NetworkName: vm.cfg.NetworkName,
	}
	root, err := vm.store.Put(vm.ctx, snapshot)
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to store snapshot: %w", err)
	}

	header := &car.CarHeader{Roots: []cid.Cid{root}, Version: 1}
	if err := car.WriteHeader(header, w); err != nil {
		return cid.Undef, xerrors.Errorf("failed to write car header: %w", err)
	}
	err = vm.blocks.ForEach(func(b block.Block) error {
		return carutil.LdWrite(w, b.Cid().Bytes(), b.RawData())
	})
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to write car blocks: %w", err)
	}
	return root, nil
}

// NewVMFromCAR restores a VM from an archive written by ExportCAR.
// The network name and clock come from the snapshot; the invocation trace and logs start empty.
func NewVMFromCAR(ctx context.Context, actorImpls ActorImplLookup, r io.Reader) (*VM, error) {
	blocks := ipld.NewBlockStoreInMemory()
	header, err := car.LoadCar(blocks, r)
	if err != nil {
		return nil, xerrors.Errorf("failed to load car: %w", err)
	}
	if len(header.Roots) != 1 {
		return nil, xerrors.Errorf("expected a single snapshot root, got %d", len(header.Roots))
	}

	vm, err := NewVM(ctx, actorImpls, blocks, Config{})
	if err != nil {
		return nil, err
	}
	var snapshot Snapshot
	if err := vm.store.Get(ctx, header.Roots[0], &snapshot); err != nil {
		return nil, xerrors.Errorf("failed to load snapshot %s: %w", header.Roots[0], err)
	}
	if err := vm.rollback(snapshot.StateRoot); err != nil {
		return nil, err
	}
	vm.cfg = Config{NetworkName: snapshot.NetworkName, GenesisTimestamp: snapshot.Timestamp}
	vm.currentEpoch = snapshot.Epoch
	vm.timestamp = snapshot.Timestamp
	return vm, nil
}
