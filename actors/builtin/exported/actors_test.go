package exported_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/exported"
	"github.com/leakr-project/leakr-actors/support/mock"
)

func TestBuiltinActors(t *testing.T) {
	seen := make(map[string]bool)
	for _, actor := range exported.BuiltinActors() {
		assert.True(t, builtin.IsBuiltinActor(actor.Code()), "%v is not a builtin code", actor.Code())
		name := builtin.ActorNameByCode(actor.Code())
		assert.False(t, seen[name], "duplicate actor %s", name)
		seen[name] = true

		assert.Equal(t, builtin.IsSingletonActor(actor.Code()), actor.IsSingleton(), name)
		assert.NotNil(t, actor.State(), name)
		mock.CheckActorExports(t, actor)
	}
	assert.Len(t, seen, 5)
}
