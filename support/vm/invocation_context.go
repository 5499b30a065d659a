package vm

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	"github.com/leakr-project/leakr-actors/actors/states"
)

// Context for an individual message invocation, including inter-actor sends.
type invocationContext struct {
	vm               *VM
	topLevel         *topLevelContext
	msg              InternalMessage // The message being processed
	fromActor        *states.Actor   // The immediate calling actor
	toActor          *states.Actor   // The actor to which message is addressed
	emptyObject      cid.Cid
	allowSideEffects bool
	callerValidated  bool
	invocation       *Invocation
}

// Context for a top-level invocation sequence
type topLevelContext struct {
	originatorStableAddress address.Address // Stable (public key) address of the top-level message sender.
	originatorCallSeq       uint64          // Call sequence number of the top-level message.
	newActorAddressCount    uint64          // Count of calls to NewActorAddress (mutable).
	events                  []EventEntry    // Events emitted by invocations that have not been rolled back.
}

func newInvocationContext(vm *VM, topLevel *topLevelContext, msg InternalMessage, fromActor *states.Actor, emptyObject cid.Cid) *invocationContext {
	// Note: the toActor and stateHandle are loaded during the `invoke()`
	return &invocationContext{
		vm:               vm,
		topLevel:         topLevel,
		msg:              msg,
		fromActor:        fromActor,
		toActor:          nil,
		emptyObject:      emptyObject,
		allowSideEffects: true,
		callerValidated:  false,
		invocation:       &Invocation{Msg: &msg},
	}
}

var _ runtime.StateHandle = (*invocationContext)(nil)

func (ic *invocationContext) loadState(obj cbor.Unmarshaler) cid.Cid {
	// The actor must be loaded from store every time since the state may have changed via a different state handle
	// (e.g. in a recursive call).
	actr := ic.loadActor()
	c := actr.Head
	if !c.Defined() {
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to load undefined state, must construct first")
	}
	err := ic.vm.store.Get(ic.vm.ctx, c, obj)
	if err != nil {
		panic(fmt.Errorf("failed to load state for actor %s, CID %s: %w", ic.msg.to, c, err))
	}
	return c
}

func (ic *invocationContext) loadActor() *states.Actor {
	actr, found, err := ic.vm.GetActor(ic.msg.to)
	if err != nil {
		panic(err)
	}
	if !found {
		panic(fmt.Errorf("failed to find actor %s for state", ic.msg.to))
	}
	return actr
}

func (ic *invocationContext) storeActor(actr *states.Actor) {
	err := ic.vm.setActor(ic.msg.to, actr)
	if err != nil {
		panic(err)
	}
}

/////////////////////////////////////////////
//          Runtime methods
/////////////////////////////////////////////

var _ runtime.Runtime = (*invocationContext)(nil)

// Store implementation
func (ic *invocationContext) StoreGet(c cid.Cid, o cbor.Unmarshaler) bool {
	// Treat any error as not-found.
	return ic.vm.store.Get(ic.vm.ctx, c, o) == nil
}

func (ic *invocationContext) StorePut(x cbor.Marshaler) cid.Cid {
	c, err := ic.vm.store.Put(ic.vm.ctx, x)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to store object: %s", err)
	}
	return c
}

func (ic *invocationContext) Message() runtime.Message {
	return ic.msg
}

func (ic *invocationContext) NetworkName() string {
	return ic.vm.cfg.NetworkName
}

func (ic *invocationContext) CurrEpoch() abi.ChainEpoch {
	return ic.vm.currentEpoch
}

func (ic *invocationContext) CurrTimestamp() uint64 {
	return ic.vm.timestamp
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...address.Address) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, addr := range addrs {
		if ic.msg.from == addr {
			return
		}
	}
	ic.Abortf(exitcode.SysErrForbidden, "caller address %v forbidden, allowed: %v", ic.msg.from, addrs)
}

func (ic *invocationContext) ValidateImmediateCallerType(types ...cid.Cid) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, t := range types {
		if t.Equals(ic.fromActor.Code) {
			return
		}
	}
	ic.Abortf(exitcode.SysErrForbidden, "caller type %v forbidden, allowed: %v", ic.fromActor.Code, types)
}

func (ic *invocationContext) ResolveAddress(address address.Address) (address.Address, bool) {
	return ic.vm.NormalizeAddress(address)
}

func (ic *invocationContext) GetActorCodeCID(a address.Address) (ret cid.Cid, ok bool) {
	entry, found, err := ic.vm.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		return cid.Undef, false
	}
	return entry.Code, true
}

func (ic *invocationContext) StateCreate(obj cbor.Marshaler) {
	actr := ic.loadActor()
	if actr.Head.Defined() && !ic.emptyObject.Equals(actr.Head) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to construct actor stateHandle: already initialized")
	}
	c, err := ic.vm.store.Put(ic.vm.ctx, obj)
	if err != nil {
		ic.Abortf(exitcode.ErrIllegalState, "failed to create actor state: %s", err)
	}
	actr.Head = c
	ic.storeActor(actr)
}

// Readonly is the implementation of the ActorStateHandle interface.
func (ic *invocationContext) StateReadonly(obj cbor.Unmarshaler) {
	// Load state to obj.
	ic.loadState(obj)
}

// Transaction is the implementation of the ActorStateHandle interface.
func (ic *invocationContext) StateTransaction(obj cbor.Er, f func()) {
	if obj == nil {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Must not pass nil to Transaction()")
	}

	// Load state to obj.
	ic.loadState(obj)

	// Call user code allowing mutation but not side-effects
	ic.allowSideEffects = false
	f()
	ic.allowSideEffects = true

	ic.replace(obj)
}

func (ic *invocationContext) replace(obj cbor.Marshaler) cid.Cid {
	actr, found, err := ic.vm.GetActor(ic.msg.to)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.ErrIllegalState, "failed to find actor %s for state", ic.msg.to)
	}
	c, err := ic.vm.store.Put(ic.vm.ctx, obj)
	if err != nil {
		ic.Abortf(exitcode.ErrIllegalState, "could not save new state")
	}
	actr.Head = c
	err = ic.vm.setActor(ic.msg.to, actr)
	if err != nil {
		ic.Abortf(exitcode.ErrIllegalState, "could not save actor %s", ic.msg.to)
	}
	return c
}

func (ic *invocationContext) Send(toAddr address.Address, methodNum abi.MethodNum, params cbor.Marshaler, out cbor.Er) exitcode.ExitCode {
	// check if side-effects are allowed
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Calling Send() is not allowed during side-effect lock")
	}
	from := ic.msg.to
	fromActor := ic.loadActor()
	newMsg := InternalMessage{
		from:   from,
		to:     toAddr,
		origin: ic.msg.origin,
		method: methodNum,
		params: params,
	}

	newCtx := newInvocationContext(ic.vm, ic.topLevel, newMsg, fromActor, ic.emptyObject)
	ret, code := newCtx.invoke()
	ic.invocation.SubInvocations = append(ic.invocation.SubInvocations, newCtx.invocation)

	if err := ret.into(out); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to serialize send return value into output parameter: %s", err)
	}
	return code
}

func (ic *invocationContext) NewActorAddress() address.Address {
	var buf bytes.Buffer

	if _, err := buf.Write(ic.topLevel.originatorStableAddress.Bytes()); err != nil {
		panic(err)
	}
	if err := binary.Write(&buf, binary.BigEndian, ic.topLevel.originatorCallSeq); err != nil {
		panic(err)
	}
	if err := binary.Write(&buf, binary.BigEndian, ic.topLevel.newActorAddressCount); err != nil {
		panic(err)
	}

	actorAddress, err := address.NewActorAddress(buf.Bytes())
	if err != nil {
		panic(err)
	}

	// Increment the count of actor addresses created in this message.
	ic.topLevel.newActorAddressCount++
	return actorAddress
}

// Create an actor in the state tree (may only be called by InitActor)
func (ic *invocationContext) CreateActor(codeID cid.Cid, addr address.Address) {
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Calling CreateActor() is not allowed during side-effect lock")
	}
	if !builtin.IsBuiltinActor(codeID) {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "Can only create built-in actors.")
	}
	if builtin.IsSingletonActor(codeID) {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "Can only have one instance of singleton actors.")
	}
	if ic.msg.to != builtin.InitActorAddr {
		ic.Abortf(exitcode.SysErrForbidden, "actor %s is not permitted to create actors", ic.msg.to)
	}
	if addr.Protocol() != address.ID {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "new actor address %s must be an ID address", addr)
	}

	_, found, err := ic.vm.actors.GetActor(addr)
	if err != nil {
		panic(err)
	}
	if found {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "Actor address already exists")
	}

	newActor := &states.Actor{
		Head: ic.emptyObject,
		Code: codeID,
	}
	if err := ic.vm.setActor(addr, newActor); err != nil {
		panic(err)
	}
}

func (ic *invocationContext) EmitEvent(event cbor.Marshaler) {
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "Calling EmitEvent() is not allowed during side-effect lock")
	}
	var buf bytes.Buffer
	if err := event.MarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to serialize event: %s", err)
	}
	ic.topLevel.events = append(ic.topLevel.events, EventEntry{
		Emitter: ic.msg.to,
		Payload: buf.Bytes(),
	})
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	ic.vm.Abortf(errExitCode, msg, args...)
}

func (ic *invocationContext) Context() context.Context {
	return ic.vm.ctx
}

func (ic *invocationContext) Log(level rt.LogLevel, msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	ic.vm.logs = append(ic.vm.logs, line)
	switch level {
	case rt.DEBUG:
		log.Debugw(line, "actor", ic.msg.to)
	case rt.INFO:
		log.Infow(line, "actor", ic.msg.to)
	case rt.WARN:
		log.Warnw(line, "actor", ic.msg.to)
	default:
		log.Errorw(line, "actor", ic.msg.to)
	}
}

/////////////////////////////////////////////
//          Invocation
/////////////////////////////////////////////

func (ic *invocationContext) invoke() (ret returnWrapper, errcode exitcode.ExitCode) {
	// Checkpoint state, for restoration on revert.
	// Note that changes prior to invocation (sequence number bump) have been persisted already.
	prevState, err := ic.vm.checkpoint()
	if err != nil {
		panic(err)
	}
	prevEvents := len(ic.topLevel.events)

	// Install handler for abort, which rolls back all state changes from this and any nested invocations.
	defer func() {
		if r := recover(); r != nil {
			if err := ic.vm.rollback(prevState); err != nil {
				panic(err)
			}
			ic.topLevel.events = ic.topLevel.events[:prevEvents]
			switch r := r.(type) {
			case abort:
				log.Debugw("invocation aborted", "to", ic.msg.to, "method", ic.msg.method, "abort", r.String())
				ret = returnWrapper{nil}
				errcode = r.code
			default:
				// do not trap unknown panics
				debug.PrintStack()
				panic(r)
			}
		}
		ic.invocation.Exitcode = errcode
		ic.invocation.Ret = ret.inner
	}()

	// 1. load target actor
	// Note: we replace the "to" address with the normalized version
	ic.toActor, ic.msg.to = ic.resolveTarget(ic.msg.to)
	ic.invocation.Msg.to = ic.msg.to

	// 2. a method zero send carries no value in this system and is a no-op
	if ic.msg.method == builtin.MethodSend {
		return returnWrapper{}, exitcode.Ok
	}

	// 3. load target actor code
	actorImpl := ic.vm.getActorImpl(ic.toActor.Code)

	// 4. invoke method on actor
	retRet := ic.dispatch(actorImpl, ic.msg.method, ic.msg.params)

	// 5. the actor must have validated its caller
	if !ic.callerValidated {
		ic.vm.Abortf(exitcode.SysErrorIllegalActor, "caller MUST be validated during method execution")
	}

	return returnWrapper{retRet}, exitcode.Ok
}

// resolveTarget loads the receiving actor, which must already exist.
func (ic *invocationContext) resolveTarget(target address.Address) (*states.Actor, address.Address) {
	targetIDAddr, found := ic.vm.NormalizeAddress(target)
	if !found {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "no actor at address %s", target)
	}
	act, found, err := ic.vm.actors.GetActor(targetIDAddr)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "no actor at address %s", targetIDAddr)
	}
	return act, targetIDAddr
}

// dispatch calls the exported method by reflection, decoding params to the method's declared type.
func (ic *invocationContext) dispatch(actor runtime.Invokee, method abi.MethodNum, arg cbor.Marshaler) cbor.Marshaler {
	exports := actor.Exports()
	if uint64(method) >= uint64(len(exports)) || exports[method] == nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "method %d undefined for actor %s", method, ic.msg.to)
	}

	meth := reflect.ValueOf(exports[method])
	methType := meth.Type()
	if methType.NumIn() != 2 || methType.In(1).Kind() != reflect.Ptr {
		panic(fmt.Sprintf("method %d of actor %s has an invalid signature", method, ic.msg.to))
	}

	param := ic.decodeParams(arg, methType.In(1))
	out := meth.Call([]reflect.Value{reflect.ValueOf(ic), param})
	if len(out) == 0 || out[0].IsNil() {
		return nil
	}
	ret, ok := out[0].Interface().(cbor.Marshaler)
	if !ok {
		panic(fmt.Sprintf("method %d of actor %s returned a non-marshalable value", method, ic.msg.to))
	}
	return ret
}

func (ic *invocationContext) decodeParams(arg cbor.Marshaler, paramType reflect.Type) reflect.Value {
	// Pass through params of the exact type.
	if arg != nil && reflect.TypeOf(arg) == paramType {
		return reflect.ValueOf(arg)
	}

	param := reflect.New(paramType.Elem())
	if arg == nil {
		return param
	}

	var buf bytes.Buffer
	if err := arg.MarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to serialize params: %s", err)
	}
	// Empty raw params decode to the zero value.
	if buf.Len() == 0 {
		return param
	}
	um, ok := param.Interface().(cbor.Unmarshaler)
	if !ok {
		panic(fmt.Sprintf("param type %v is not unmarshalable", paramType))
	}
	if err := um.UnmarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to deserialize params: %s", err)
	}
	return param
}

func (ic *invocationContext) assertf(condition bool, msg string, args ...interface{}) {
	if !condition {
		panic(fmt.Errorf(msg, args...))
	}
}

// returnWrapper wraps the return value of a method invocation.
type returnWrapper struct {
	inner cbor.Marshaler
}

func (r returnWrapper) into(o cbor.Unmarshaler) error {
	if r.inner == nil || o == nil {
		return nil
	}
	b := bytes.Buffer{}
	if err := r.inner.MarshalCBOR(&b); err != nil {
		return err
	}
	return o.UnmarshalCBOR(&b)
}
