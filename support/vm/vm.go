package vm

import (
	"context"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/account"
	init_ "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	"github.com/leakr-project/leakr-actors/actors/states"
	"github.com/leakr-project/leakr-actors/actors/util/adt"
	"github.com/leakr-project/leakr-actors/support/ipld"
)

var log = logging.Logger("vm")

// Config holds the parameters a VM is started with.
type Config struct {
	NetworkName      string
	GenesisTimestamp uint64 // Unix seconds
}

// VM holds the state and executes messages over the state.
// A VM is not safe for concurrent use: messages are applied one at a time, so calls to any
// record are serialized.
type VM struct {
	ctx    context.Context
	blocks *ipld.BlockStoreInMemory
	store  adt.Store
	cfg    Config

	currentEpoch abi.ChainEpoch
	timestamp    uint64

	actorImpls  ActorImplLookup
	stateRoot   cid.Cid      // The last committed root.
	actors      *states.Tree // The current (not necessarily committed) root node.
	actorsDirty bool

	emptyObject cid.Cid

	invocations []*Invocation
	logs        []string
}

type ActorImplLookup map[cid.Cid]runtime.VMActor

// InternalMessage is a call from one actor to another, or from the outside world to an actor.
type InternalMessage struct {
	from   address.Address
	to     address.Address
	origin address.Address
	method abi.MethodNum
	params cbor.Marshaler
}

// MessageResult is the receipt of a top-level message.
type MessageResult struct {
	Ret  cbor.Marshaler
	Code exitcode.ExitCode
	// Root of an AMT of EventEntry, or cid.Undef if the message emitted no events.
	EventsRoot cid.Cid
}

// EventEntry is an event emitted by an actor, as recorded against a message receipt.
type EventEntry struct {
	Emitter address.Address
	Payload []byte // CBOR encoding of the event
}

// Invocation is a node in the trace of calls made while applying a message.
type Invocation struct {
	Msg            *InternalMessage
	Exitcode       exitcode.ExitCode
	Ret            cbor.Marshaler
	SubInvocations []*Invocation
}

// NewVM creates a new runtime for executing messages over an empty state tree.
func NewVM(ctx context.Context, actorImpls ActorImplLookup, blocks *ipld.BlockStoreInMemory, cfg Config) (*VM, error) {
	store := adt.WrapBlockStore(ctx, blocks)
	actors, err := states.NewTree(store)
	if err != nil {
		return nil, xerrors.Errorf("failed to create state tree: %w", err)
	}
	actorRoot, err := actors.Flush()
	if err != nil {
		return nil, err
	}

	emptyObject, err := store.Put(ctx, adt.Empty)
	if err != nil {
		return nil, err
	}

	return &VM{
		ctx:         ctx,
		blocks:      blocks,
		store:       store,
		cfg:         cfg,
		timestamp:   cfg.GenesisTimestamp,
		actorImpls:  actorImpls,
		stateRoot:   actorRoot,
		actors:      actors,
		emptyObject: emptyObject,
	}, nil
}

func (vm *VM) rollback(root cid.Cid) error {
	var err error
	vm.actors, err = states.LoadTree(vm.store, root)
	if err != nil {
		return xerrors.Errorf("failed to load node for %s: %w", root, err)
	}

	// reset the root node
	vm.stateRoot = root
	vm.actorsDirty = false
	return nil
}

func (vm *VM) GetActor(a address.Address) (*states.Actor, bool, error) {
	na, found := vm.NormalizeAddress(a)
	if !found {
		return nil, false, nil
	}
	return vm.actors.GetActor(na)
}

// setActor sets the the actor to the given value whether it previously existed or not.
func (vm *VM) setActor(key address.Address, a *states.Actor) error {
	if err := vm.actors.SetActor(key, a); err != nil {
		return xerrors.Errorf("setting actor in state tree failed: %w", err)
	}
	vm.actorsDirty = true
	return nil
}

func (vm *VM) checkpoint() (cid.Cid, error) {
	// commit the vm state
	root, err := vm.actors.Flush()
	if err != nil {
		return cid.Undef, err
	}
	vm.stateRoot = root
	vm.actorsDirty = false

	return root, nil
}

// StateRoot flushes pending changes and returns the root of the state tree.
func (vm *VM) StateRoot() (cid.Cid, error) {
	return vm.checkpoint()
}

// NormalizeAddress resolves an address of any protocol to an ID address via the init actor.
func (vm *VM) NormalizeAddress(addr address.Address) (address.Address, bool) {
	// short-circuit if the address is already an ID address
	if addr.Protocol() == address.ID {
		return addr, true
	}

	// resolve the target address via the InitActor, and attempt to load state.
	initActorEntry, found, err := vm.actors.GetActor(builtin.InitActorAddr)
	if err != nil {
		panic(xerrors.Errorf("failed to load init actor: %w", err))
	}
	if !found {
		panic(xerrors.Errorf("no init actor"))
	}

	// get a view into the actor state
	var state init_.State
	if err := vm.store.Get(vm.ctx, initActorEntry.Head, &state); err != nil {
		panic(err)
	}

	idAddr, found, err := state.ResolveAddress(vm.store, addr)
	if err != nil {
		panic(err)
	}
	return idAddr, found
}

// ApplyMessage applies a message from an account to the current state.
func (vm *VM) ApplyMessage(from, to address.Address, method abi.MethodNum, params cbor.Marshaler) MessageResult {
	// This method does not actually execute the message itself,
	// but rather deals with the pre/post processing of a message.
	// (see: `invocationContext.invoke()` for the dispatch and execution)

	// load actor from global state
	fromID, ok := vm.NormalizeAddress(from)
	if !ok {
		return MessageResult{Code: exitcode.SysErrSenderInvalid}
	}

	fromActor, found, err := vm.actors.GetActor(fromID)
	if err != nil {
		panic(err)
	}
	if !found {
		// Execution error; sender does not exist at time of message execution.
		return MessageResult{Code: exitcode.SysErrSenderInvalid}
	}

	if !fromActor.Code.Equals(builtin.AccountActorCodeID) {
		// Execution error; sender is not an account.
		return MessageResult{Code: exitcode.SysErrSenderInvalid}
	}

	// Load sender account state to obtain stable pubkey address.
	var senderState account.State
	if err := vm.store.Get(vm.ctx, fromActor.Head, &senderState); err != nil {
		panic(err)
	}

	// The call sequence number advances even if the message fails.
	callSeq := fromActor.CallSeqNum
	fromActor.CallSeqNum++
	if err := vm.setActor(fromID, fromActor); err != nil {
		panic(err)
	}

	// checkpoint state
	// Even if the message fails, the following accumulated changes will be applied:
	// - CallSeqNumber increment
	priorRoot, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}

	topLevel := topLevelContext{
		originatorStableAddress: senderState.Address,
		originatorCallSeq:       callSeq,
		newActorAddressCount:    0,
	}

	// build internal message
	msg := InternalMessage{
		from:   fromID,
		to:     to,
		origin: fromID,
		method: method,
		params: params,
	}
	ctx := newInvocationContext(vm, &topLevel, msg, fromActor, vm.emptyObject)

	// 3. invoke
	ret, exitCode := ctx.invoke()
	vm.invocations = append(vm.invocations, ctx.invocation)

	result := MessageResult{Ret: ret.inner, Code: exitCode, EventsRoot: cid.Undef}

	// Roll back all state if the receipt's exit code is not ok.
	// This is required in addition to rollback within the invocation context since top level messages can fail for
	// more reasons than internal ones. Invocation context still needs its own rollback so actors can recover and
	// proceed from a nested call failure.
	if exitCode != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			panic(err)
		}
		return result
	}

	// accumulate events and commit
	if len(topLevel.events) > 0 {
		result.EventsRoot, err = vm.storeEvents(topLevel.events)
		if err != nil {
			panic(err)
		}
	}
	if _, err := vm.checkpoint(); err != nil {
		panic(err)
	}
	return result
}

func (vm *VM) storeEvents(events []EventEntry) (cid.Cid, error) {
	arr, err := adt.MakeEmptyArray(vm.store, builtin.DefaultAmtBitwidth)
	if err != nil {
		return cid.Undef, err
	}
	for i := range events {
		if err := arr.AppendContinuous(&events[i]); err != nil {
			return cid.Undef, xerrors.Errorf("failed to append event %d: %w", i, err)
		}
	}
	return arr.Root()
}

// GetEvents loads the events recorded in a message receipt.
func (vm *VM) GetEvents(root cid.Cid) ([]EventEntry, error) {
	if !root.Defined() {
		return nil, nil
	}
	arr, err := adt.AsArray(vm.store, root, builtin.DefaultAmtBitwidth)
	if err != nil {
		return nil, err
	}
	var events []EventEntry
	var ev EventEntry
	err = arr.ForEach(&ev, func(_ int64) error {
		events = append(events, ev)
		return nil
	})
	return events, err
}

func (vm *VM) GetState(addr address.Address, out cbor.Unmarshaler) error {
	act, found, err := vm.GetActor(addr)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("actor %v not found", addr)
	}
	return vm.store.Get(vm.ctx, act.Head, out)
}

func (vm *VM) GetStateTree() (*states.Tree, error) {
	root, err := vm.checkpoint()
	if err != nil {
		return nil, err
	}
	return states.LoadTree(vm.store, root)
}

func (vm *VM) Store() adt.Store {
	return vm.store
}

func (vm *VM) Config() Config {
	return vm.cfg
}

func (vm *VM) GetEpoch() abi.ChainEpoch {
	return vm.currentEpoch
}

func (vm *VM) GetTimestamp() uint64 {
	return vm.timestamp
}

// SetTimestamp moves the clock seen by subsequent messages. The clock never runs backwards.
func (vm *VM) SetTimestamp(ts uint64) error {
	if ts < vm.timestamp {
		return xerrors.Errorf("timestamp %d precedes current timestamp %d", ts, vm.timestamp)
	}
	vm.timestamp = ts
	return nil
}

// SetEpoch moves the chain epoch seen by subsequent messages. Epochs never decrease.
func (vm *VM) SetEpoch(epoch abi.ChainEpoch) error {
	if epoch < vm.currentEpoch {
		return xerrors.Errorf("epoch %d precedes current epoch %d", epoch, vm.currentEpoch)
	}
	vm.currentEpoch = epoch
	return nil
}

// Invocations returns the traces of every message applied so far.
func (vm *VM) Invocations() []*Invocation {
	return vm.invocations
}

// LastInvocation returns the trace of the most recently applied message.
func (vm *VM) LastInvocation() *Invocation {
	if len(vm.invocations) == 0 {
		return nil
	}
	return vm.invocations[len(vm.invocations)-1]
}

func (vm *VM) GetLogs() []string {
	return vm.logs
}

// CheckStateInvariants checks the state tree against the current clock.
func (vm *VM) CheckStateInvariants() (*builtin.MessageAccumulator, error) {
	tree, err := vm.GetStateTree()
	if err != nil {
		return nil, err
	}
	return states.CheckStateInvariants(tree, vm.timestamp)
}

func (vm *VM) getActorImpl(code cid.Cid) runtime.VMActor {
	actorImpl, ok := vm.actorImpls[code]
	if !ok {
		vm.Abortf(exitcode.SysErrInvalidReceiver, "actor implementation not found for code %v", code)
	}
	return actorImpl
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

func (vm *VM) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

//
// implement runtime.Message for InternalMessage
//

var _ runtime.Message = (*InternalMessage)(nil)

// Caller implements runtime.Message.
func (msg InternalMessage) Caller() address.Address {
	return msg.from
}

// Receiver implements runtime.Message.
func (msg InternalMessage) Receiver() address.Address {
	return msg.to
}

// Origin implements runtime.Message.
func (msg InternalMessage) Origin() address.Address {
	return msg.origin
}

func (msg InternalMessage) Method() abi.MethodNum {
	return msg.method
}

func (msg InternalMessage) Params() cbor.Marshaler {
	return msg.params
}
