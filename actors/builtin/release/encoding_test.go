package release_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xorcare/golden"

	"github.com/leakr-project/leakr-actors/actors/builtin/release"
	tutil "github.com/leakr-project/leakr-actors/support/testing"
)

// The stored encoding of a record is part of the state root, so it must not drift.
func TestStateEncoding(t *testing.T) {
	st := release.ConstructState(tutil.NewIDAddr(t, 100), "pd", "hi", 1000)

	buf := new(bytes.Buffer)
	require.NoError(t, st.MarshalCBOR(buf))
	golden.Assert(t, []byte(hex.EncodeToString(buf.Bytes())+"\n"))

	var decoded release.State
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	require.Equal(t, *st, decoded)
}

func TestGetInfoReturnEncoding(t *testing.T) {
	ret := release.GetInfoReturn{
		Author:      tutil.NewIDAddr(t, 100),
		ReleaseTime: 23,
		Released:    true,
	}

	buf := new(bytes.Buffer)
	require.NoError(t, ret.MarshalCBOR(buf))
	golden.Assert(t, []byte(hex.EncodeToString(buf.Bytes())+"\n"))
}
