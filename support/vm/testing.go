package vm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leakr-project/leakr-actors/actors/runtime"
)

// ApplyOk applies a message and requires it to succeed, returning the method's return value.
func ApplyOk(t *testing.T, v *VM, from, to address.Address, method abi.MethodNum, params cbor.Marshaler) cbor.Marshaler {
	return ApplyCode(t, v, from, to, method, params, exitcode.Ok)
}

// ApplyCode applies a message and requires it to exit with the given code.
func ApplyCode(t *testing.T, v *VM, from, to address.Address, method abi.MethodNum, params cbor.Marshaler, code exitcode.ExitCode) cbor.Marshaler {
	result := v.ApplyMessage(from, to, method, params)
	require.Equal(t, code, result.Code, "unexpected exit code applying method %d to %s", method, to)
	return result.Ret
}

// RequireApplyMessage applies a message, requires it to succeed, and returns the whole receipt.
func RequireApplyMessage(t *testing.T, v *VM, from, to address.Address, method abi.MethodNum, params cbor.Marshaler) MessageResult {
	result := v.ApplyMessage(from, to, method, params)
	require.Equal(t, exitcode.Ok, result.Code, "unexpected exit code applying method %d to %s", method, to)
	return result
}

// RequireStateInvariants fails the test if any state invariant is broken.
func RequireStateInvariants(t *testing.T, v *VM) {
	msgs, err := v.CheckStateInvariants()
	require.NoError(t, err)
	assert.Zero(t, len(msgs.Messages()), "unexpected invariant violations: %v", msgs.Messages())
}

//
// Invocation expectations
//

func ExpectObject(v cbor.Marshaler) *objectExpectation {
	return &objectExpectation{v}
}

// distinguishes a non-expectation from an expectation of nil
type objectExpectation struct {
	val cbor.Marshaler
}

func ExpectAddress(addr address.Address) *address.Address      { return &addr }
func ExpectBytes(b []byte) *objectExpectation                  { return ExpectObject(runtime.CBORBytes(b)) }
func ExpectExitCode(code exitcode.ExitCode) *exitcode.ExitCode { return &code }

// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
func (oe objectExpectation) matches(obj cbor.Marshaler) bool {
	if oe.val == nil || obj == nil {
		return oe.val == nil && obj == nil
	}

	paramBuf1 := new(bytes.Buffer)
	oe.val.MarshalCBOR(paramBuf1) // nolint: errcheck
	paramBuf2 := new(bytes.Buffer)
	obj.MarshalCBOR(paramBuf2) // nolint: errcheck
	return bytes.Equal(paramBuf1.Bytes(), paramBuf2.Bytes())
}

type ExpectInvocation struct {
	To       address.Address
	Method   abi.MethodNum
	Exitcode exitcode.ExitCode

	From           *address.Address
	Params         *objectExpectation
	Ret            *objectExpectation
	SubInvocations []ExpectInvocation
}

func (ei ExpectInvocation) Matches(t *testing.T, invocation *Invocation) {
	ei.matches(t, "", invocation)
}

func (ei ExpectInvocation) matches(t *testing.T, breadcrumb string, invocation *Invocation) {
	identifier := fmt.Sprintf("%s[%s:%d]", breadcrumb, invocation.Msg.to, invocation.Msg.method)

	// mismatch of to or method probably indicates skipped message or messages out of order. halt.
	require.Equal(t, ei.To, invocation.Msg.to, "%s unexpected `to` address", identifier)
	require.Equal(t, ei.Method, invocation.Msg.method, "%s unexpected method", identifier)

	// other expectations are optional
	if ei.From != nil {
		assert.Equal(t, *ei.From, invocation.Msg.from, "%s unexpected from address", identifier)
	}
	if ei.Params != nil {
		assert.True(t, ei.Params.matches(invocation.Msg.params), "%s params aren't equal (%v != %v)", identifier, ei.Params.val, invocation.Msg.params)
	}
	if ei.SubInvocations != nil {
		for i, invk := range invocation.SubInvocations {
			subidentifier := fmt.Sprintf("%s%d:", identifier, i)
			require.Greater(t, len(ei.SubInvocations), i, "%s unexpected subinvocation [%s:%d]", subidentifier, invk.Msg.to, invk.Msg.method)
			ei.SubInvocations[i].matches(t, subidentifier, invk)
		}
		missingInvocations := len(ei.SubInvocations) - len(invocation.SubInvocations)
		if missingInvocations > 0 {
			missingIndex := len(invocation.SubInvocations)
			missingExpect := ei.SubInvocations[missingIndex]
			require.Failf(t, "missing invocation", "%s%d: expected invocation [%s:%d]", identifier, missingIndex, missingExpect.To, missingExpect.Method)
		}
	}

	// expect results
	assert.Equal(t, ei.Exitcode, invocation.Exitcode, "%s unexpected exitcode", identifier)
	if ei.Ret != nil {
		assert.True(t, ei.Ret.matches(invocation.Ret), "%s unexpected return value (%v != %v)", identifier, ei.Ret, invocation.Ret)
	}
}

func ParamsForInvocation(t *testing.T, vm *VM, idxs ...int) cbor.Marshaler {
	invocations := vm.Invocations()
	var invocation *Invocation
	for _, idx := range idxs {
		require.Greater(t, len(invocations), idx)
		invocation = invocations[idx]
		invocations = invocation.SubInvocations
	}
	require.NotNil(t, invocation)
	return invocation.Msg.params
}
