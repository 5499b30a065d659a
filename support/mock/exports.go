package mock

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leakr-project/leakr-actors/actors/runtime"
)

// Checks that every exported method of an actor has the signature the VM dispatches on.
// Nil entries (reserved method numbers) are skipped.
func CheckActorExports(t *testing.T, act runtime.Invokee) {
	for i, m := range act.Exports() {
		if i == 0 { // Send is implicit
			continue
		}
		if m == nil {
			continue
		}
		meth := reflect.ValueOf(m)
		mt := meth.Type()
		require.Equal(t, reflect.Func, mt.Kind(), "method %d is not a function", i)
		require.Equal(t, 2, mt.NumIn(), "method %d must have two parameters", i)
		require.Equal(t, typeOfRuntimeInterface, mt.In(0), "method %d first parameter must be runtime", i)
		require.Equal(t, reflect.Ptr, mt.In(1).Kind(), "method %d second parameter must be a pointer", i)
		require.True(t, mt.In(1).Implements(typeOfCborUnmarshaler), "method %d params must be CBOR-unmarshalable", i)
		require.Equal(t, 1, mt.NumOut(), "method %d must return a single value", i)
		require.True(t, mt.Out(0).Implements(typeOfCborMarshaler), "method %d return must be CBOR-marshalable", i)
	}
}
