package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var (
	InitActorCodeID    cid.Cid
	AccountActorCodeID cid.Cid
	LeakActorCodeID    cid.Cid
	ReleaseActorCodeID cid.Cid
	GreeterActorCodeID cid.Cid
)

// Set of actor code types that can represent external signing parties.
var CallerTypesSignable []cid.Cid

var builtinActors map[cid.Cid]string

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	builtinActors = make(map[cid.Cid]string)

	for id, name := range map[*cid.Cid]string{
		&InitActorCodeID:    "init",
		&AccountActorCodeID: "account",
		&LeakActorCodeID:    "leak",
		&ReleaseActorCodeID: "release",
		&GreeterActorCodeID: "greeter",
	} {
		c, err := builder.Sum([]byte("leakr/1/" + name))
		if err != nil {
			panic(err)
		}
		*id = c
		builtinActors[c] = name
	}

	CallerTypesSignable = []cid.Cid{AccountActorCodeID}
}

// ActorNameByCode returns the (string) name of the actor given a cid code.
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	}

	name, ok := builtinActors[code]
	if !ok {
		return "<unknown>"
	}
	return "leakr/1/" + name
}

// IsBuiltinActor returns true if the code belongs to an actor defined in this repo.
func IsBuiltinActor(code cid.Cid) bool {
	_, isBuiltin := builtinActors[code]
	return isBuiltin
}

// IsSingletonActor returns true if the code belongs to a singleton actor.
func IsSingletonActor(code cid.Cid) bool {
	return code.Equals(InitActorCodeID)
}

// IsAccountActor returns true if the code belongs to an account actor.
func IsAccountActor(code cid.Cid) bool {
	return code.Equals(AccountActorCodeID)
}

// IsTimedReleaseActor returns true if the code belongs to one of the time-gated record actors.
func IsTimedReleaseActor(code cid.Cid) bool {
	return code.Equals(LeakActorCodeID) || code.Equals(ReleaseActorCodeID)
}
