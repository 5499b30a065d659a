package release_test

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/leakr-project/leakr-actors/actors/builtin/release"
)

func idAddr(id uint64) addr.Address {
	a, err := addr.NewIDAddress(id)
	if err != nil {
		panic(err)
	}
	return a
}

func TestMessageVisibilityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("message is readable iff now is after the release time", prop.ForAll(
		func(releaseTime, now uint64) bool {
			st := release.ConstructState(idAddr(100), "", "secret", releaseTime)
			msg, err := st.MessageAt(now)
			if now > releaseTime {
				return err == nil && msg == "secret"
			}
			return exitcode.Unwrap(err, exitcode.Ok) == release.ErrNotYetReleased
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("reads are idempotent", prop.ForAll(
		func(releaseTime, now uint64) bool {
			st := release.ConstructState(idAddr(100), "desc", "secret", releaseTime)
			msg1, err1 := st.MessageAt(now)
			msg2, err2 := st.MessageAt(now)
			return msg1 == msg2 &&
				exitcode.Unwrap(err1, exitcode.Ok) == exitcode.Unwrap(err2, exitcode.Ok) &&
				st.PublicDescription == "desc"
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestRescheduleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	author := idAddr(100)

	properties.Property("non-author is always unauthorized and state is unchanged", prop.ForAll(
		func(callerID, releaseTime, now, newTime uint64, strict bool) bool {
			caller := idAddr(callerID)
			if caller == author {
				return true
			}
			var policy release.SchedulePolicy = release.PermissivePolicy{}
			if strict {
				policy = release.StrictPolicy{}
			}
			st := release.ConstructState(author, "", "secret", releaseTime)
			err := st.Reschedule(caller, now, newTime, policy)
			return exitcode.Unwrap(err, exitcode.Ok) == exitcode.ErrForbidden && st.ReleaseTime == releaseTime
		},
		gen.UInt64Range(0, 1<<40),
		gen.UInt64(),
		gen.UInt64(),
		gen.UInt64(),
		gen.Bool(),
	))

	properties.Property("strict: author is frozen out once released", prop.ForAll(
		func(releaseTime, now, newTime uint64) bool {
			st := release.ConstructState(author, "", "secret", releaseTime)
			err := st.Reschedule(author, now, newTime, release.StrictPolicy{})
			if now > releaseTime {
				return exitcode.Unwrap(err, exitcode.Ok) == release.ErrAlreadyReleased && st.ReleaseTime == releaseTime
			}
			return err == nil && st.ReleaseTime == newTime
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("permissive: author always succeeds and visibility follows the new time", prop.ForAll(
		func(releaseTime, now, newTime uint64) bool {
			st := release.ConstructState(author, "", "secret", releaseTime)
			if err := st.Reschedule(author, now, newTime, release.PermissivePolicy{}); err != nil {
				return false
			}
			_, err := st.MessageAt(now)
			return st.ReleaseTime == newTime && (err == nil) == (now > newTime)
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
