package exported

import (
	"github.com/leakr-project/leakr-actors/actors/builtin/account"
	"github.com/leakr-project/leakr-actors/actors/builtin/greeter"
	init_ "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/builtin/release"
	"github.com/leakr-project/leakr-actors/actors/runtime"
)

// BuiltinActors returns every actor implementation a host must be able to run.
func BuiltinActors() []runtime.VMActor {
	return []runtime.VMActor{
		account.Actor{},
		init_.Actor{},
		release.LeakActor{},
		release.ReleaseActor{},
		greeter.Actor{},
	}
}
