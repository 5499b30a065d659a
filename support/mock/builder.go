package mock

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"

	"github.com/leakr-project/leakr-actors/actors/builtin"
)

// Build for fluent initialization of a mock runtime.
type RuntimeBuilder struct {
	rt *Runtime
}

// Initializes a new builder with a receiving actor address.
func NewBuilder(ctx context.Context, receiver addr.Address) *RuntimeBuilder {
	m := &Runtime{
		ctx:          ctx,
		networkName:  builtin.DefaultNetworkName,
		epoch:        0,
		timestamp:    0,
		receiver:     receiver,
		caller:       addr.Address{},
		callerType:   cid.Undef,
		origin:       addr.Address{},
		newActorAddr: addr.Undef,

		state: cid.Undef,
		store: make(map[cid.Cid][]byte),

		actorCodeCIDs: make(map[addr.Address]cid.Cid),

		t:                        nil, // Initialized at Build()
		expectValidateCallerAny:  false,
		expectValidateCallerAddr: nil,
		expectValidateCallerType: nil,
		expectCreateActor:        nil,

		expectSends:  make([]*expectedMessage, 0),
		expectEvents: make([]*expectedEvent, 0),
	}
	return &RuntimeBuilder{m}
}

// Builds a new runtime object with the configured values.
func (b *RuntimeBuilder) Build(t testing.TB) *Runtime {
	cpy := *b.rt

	// Deep copy the mutable values.
	cpy.store = make(map[cid.Cid][]byte)
	for k, v := range b.rt.store {
		cpy.store[k] = v
	}
	cpy.actorCodeCIDs = make(map[addr.Address]cid.Cid)
	for k, v := range b.rt.actorCodeCIDs {
		cpy.actorCodeCIDs[k] = v
	}

	cpy.t = t
	return &cpy
}

func (b *RuntimeBuilder) WithTimestamp(now uint64) *RuntimeBuilder {
	b.rt.timestamp = now
	return b
}

// Sets the immediate caller. The origin defaults to the caller unless set separately.
func (b *RuntimeBuilder) WithCaller(address addr.Address, code cid.Cid) *RuntimeBuilder {
	b.rt.caller = address
	b.rt.callerType = code
	b.rt.actorCodeCIDs[address] = code
	return b
}

func (b *RuntimeBuilder) WithActorType(address addr.Address, code cid.Cid) *RuntimeBuilder {
	b.rt.actorCodeCIDs[address] = code
	return b
}
