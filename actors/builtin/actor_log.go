package builtin

import (
	"sync"

	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/leakr-project/leakr-actors/actors/runtime"
)

// ActorLog holds log level overrides keyed by actor code.
type ActorLog struct {
	sync.RWMutex
	Actors map[cid.Cid]rtt.LogLevel
}

var actorLogSingle *ActorLog

func init() {
	actorLogSingle = &ActorLog{Actors: make(map[cid.Cid]rtt.LogLevel)}
}

func SetActorsLogLevel(logLevel rtt.LogLevel, actors ...runtime.VMActor) {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()

	for _, actor := range actors {
		actorLogSingle.Actors[actor.Code()] = logLevel
	}
}

// GetActorLogLevel returns the level an actor should log its traces at, or defValue if none was set.
func GetActorLogLevel(actor runtime.VMActor, defValue rtt.LogLevel) rtt.LogLevel {
	actorLogSingle.RLock()
	defer actorLogSingle.RUnlock()

	actorLogLevel, ok := actorLogSingle.Actors[actor.Code()]
	if ok {
		return actorLogLevel
	}

	return defValue
}

// ResetActorsLogLevel drops all overrides.
func ResetActorsLogLevel() {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()

	actorLogSingle.Actors = make(map[cid.Cid]rtt.LogLevel)
}
