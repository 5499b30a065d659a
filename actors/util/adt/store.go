package adt

import (
	"context"

	addr "github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/leakr-project/leakr-actors/actors/runtime"
)

// Store defines an interface required to back the ADTs in this package.
type Store interface {
	Context() context.Context
	ipldcbor.IpldStore
}

// Adapts a vanilla IPLD store as an ADT store.
func WrapStore(ctx context.Context, store ipldcbor.IpldStore) Store {
	return &wstore{
		ctx:       ctx,
		IpldStore: store,
	}
}

// Adapts a block store backed by memory or disk as an ADT store.
func WrapBlockStore(ctx context.Context, bs ipldcbor.IpldBlockstore) Store {
	return WrapStore(ctx, ipldcbor.NewCborStore(bs))
}

type wstore struct {
	ctx context.Context
	ipldcbor.IpldStore
}

var _ Store = &wstore{}

func (s *wstore) Context() context.Context {
	return s.ctx
}

// Adapter allowing use of a runtime.Store as an ADT store.
type rtStore struct {
	runtime.Runtime
}

// AsStore allows Runtime to satisfy the adt.Store interface.
func AsStore(rt runtime.Runtime) Store {
	return rtStore{rt}
}

var _ Store = &rtStore{}

func (r rtStore) Context() context.Context {
	return r.Runtime.Context()
}

func (r rtStore) Get(_ context.Context, c cid.Cid, out interface{}) error {
	// The runtime aborts on failure to find or load the object.
	if !r.StoreGet(c, out.(cbg.CBORUnmarshaler)) {
		return ErrNotFound
	}
	return nil
}

func (r rtStore) Put(_ context.Context, v interface{}) (cid.Cid, error) {
	return r.StorePut(v.(cbg.CBORMarshaler)), nil
}

// Keyer defines an interface required to put values in mapping.
type Keyer interface {
	Key() string
}

// Adapts an address as a mapping key.
type AddrKey addr.Address

func (kw AddrKey) Key() string {
	return string(addr.Address(kw).Bytes())
}

// Adapts a string as a mapping key.
type StringKey string

func (k StringKey) Key() string {
	return string(k)
}
