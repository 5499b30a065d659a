package runtime

import (
	"io"

	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
)

// Concrete types associated with the runtime interface.

// Invokee is the method dispatch table of an actor.
type Invokee interface {
	Exports() []interface{}
}

// VMActor is a concrete implementation of an actor, to be used by a VM.
type VMActor interface {
	Invokee

	// Code is the code ID of the actor.
	Code() cid.Cid

	// State is a new, empty instance of the actor's state type.
	State() cbor.Er

	// IsSingleton reports whether at most one actor of this code may exist.
	IsSingleton() bool
}

// These interfaces are intended to match those from whyrusleeping/cbor-gen, such that code generated from that
// system is automatically usable here (but not mandatory).
type CBORMarshaler = cbor.Marshaler
type CBORUnmarshaler = cbor.Unmarshaler
type CBORer = cbor.Er

// Wraps already-serialized bytes as CBOR-marshalable.
type CBORBytes []byte

func (b CBORBytes) MarshalCBOR(w io.Writer) error {
	_, err := w.Write(b)
	return err
}

func (b *CBORBytes) UnmarshalCBOR(r io.Reader) error {
	var c []byte
	c, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	*b = c
	return nil
}
