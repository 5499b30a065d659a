package adt

import (
	"fmt"
	"io"

	"github.com/leakr-project/leakr-actors/actors/runtime"
)

// EmptyValue is the parameter and return type of methods that take or produce nothing.
type EmptyValue struct{}

// Empty is a convenience instance of EmptyValue.
var Empty = &EmptyValue{}

var _ runtime.CBORMarshaler = (*EmptyValue)(nil)
var _ runtime.CBORUnmarshaler = (*EmptyValue)(nil)

// 0x80 is empty list (major type 4 with zero length)
// 0xa0 is empty map (major type 5 with zero length)
// This is encoded with empty-list since we use tuple-encoding for everything.
const emptyListEncoded = 0x80

func (*EmptyValue) MarshalCBOR(w io.Writer) error {
	_, err := w.Write([]byte{emptyListEncoded})
	return err
}

func (*EmptyValue) UnmarshalCBOR(r io.Reader) error {
	buf := make([]byte, 1)
	_, err := io.ReadFull(r, buf)
	if err != nil {
		return err
	}
	if buf[0] != emptyListEncoded {
		return fmt.Errorf("invalid empty value %x", buf[0])
	}
	return nil
}
