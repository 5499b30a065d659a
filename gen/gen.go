package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/leakr-project/leakr-actors/actors/builtin/account"
	"github.com/leakr-project/leakr-actors/actors/builtin/greeter"
	init_ "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/builtin/release"
	"github.com/leakr-project/leakr-actors/actors/states"
	"github.com/leakr-project/leakr-actors/support/vm"
)

func main() {
	// State tree
	if err := gen.WriteTupleEncodersToFile("./actors/states/cbor_gen.go", "states",
		states.Actor{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/init/cbor_gen.go", "init",
		// actor state
		init_.State{},
		// method params
		init_.ConstructorParams{},
		init_.ExecParams{},
		// method returns
		init_.ExecReturn{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/release/cbor_gen.go", "release",
		// actor state
		release.State{},
		// method params
		release.LeakConstructorParams{},
		release.ReleaseConstructorParams{},
		release.ChangeReleaseTimeParams{},
		// method returns
		release.GetMessageReturn{},
		release.GetPublicDescriptionReturn{},
		release.GetInfoReturn{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/greeter/cbor_gen.go", "greeter",
		// actor state
		greeter.State{},
		// method params
		greeter.GreetParams{},
		// method returns
		greeter.HasGreetedReturn{},
		// events
		greeter.GreetedEvent{},
	); err != nil {
		panic(err)
	}

	// Host
	if err := gen.WriteTupleEncodersToFile("./support/vm/cbor_gen.go", "vm",
		vm.EventEntry{},
		vm.Snapshot{},
	); err != nil {
		panic(err)
	}
}
