package builtin

import (
	addr "github.com/filecoin-project/go-address"
	autil "github.com/leakr-project/leakr-actors/actors/util"
)

// Addresses for singleton system actors.
var (
	// Distinguished AccountActor that is the source of genesis messages.
	SystemActorAddr = mustMakeAddress(0)
	InitActorAddr   = mustMakeAddress(1)
)

const FirstNonSingletonActorId = 100

func mustMakeAddress(id uint64) addr.Address {
	address, err := addr.NewIDAddress(id)
	autil.AssertNoError(err)
	return address
}
