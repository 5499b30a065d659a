package release_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/release"
	"github.com/leakr-project/leakr-actors/actors/runtime"
	"github.com/leakr-project/leakr-actors/support/mock"
	tutil "github.com/leakr-project/leakr-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, release.LeakActor{})
	mock.CheckActorExports(t, release.ReleaseActor{})
}

func TestLeakConstruction(t *testing.T) {
	h := newHarness(t, release.LeakActor{})

	t.Run("author is the origin of the deploying message", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "a leak about something", "secret", now+100000)

		var st release.State
		rt.GetState(&st)
		assert.Equal(t, h.author, st.Author)
		assert.Equal(t, "a leak about something", st.PublicDescription)
		assert.Equal(t, "secret", st.Message)
		assert.Equal(t, now+100000, st.ReleaseTime)
		h.checkState(rt)
	})

	t.Run("only the init actor may construct", func(t *testing.T) {
		rt := h.newRuntime()
		rt.SetCaller(h.author, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		rt.ExpectAbort(exitcode.SysErrForbidden, func() {
			rt.Call(release.LeakActor{}.Constructor, &release.LeakConstructorParams{Message: "secret"})
		})
		rt.Verify()
	})

	t.Run("release time is not validated", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "", "", 0)
		h.checkState(rt)
	})
}

func TestLeakActor(t *testing.T) {
	h := newHarness(t, release.LeakActor{})

	t.Run("pending message is hidden from everyone", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now+100000)

		h.getMessageFails(rt, h.author, release.ErrNotYetReleased)
		h.getMessageFails(rt, h.stranger, release.ErrNotYetReleased)
	})

	t.Run("released message is readable by everyone", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now-100000)

		assert.Equal(t, "secret", h.getMessage(rt, h.author))
		assert.Equal(t, "secret", h.getMessage(rt, h.stranger))
	})

	t.Run("message is hidden at exactly the release time", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now)

		h.getMessageFails(rt, h.stranger, release.ErrNotYetReleased)
		rt.SetTimestamp(now + 1)
		assert.Equal(t, "secret", h.getMessage(rt, h.stranger))
	})

	t.Run("public description is always readable", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now+100000)

		for i := 0; i < 3; i++ {
			rt.SetCaller(h.stranger, builtin.AccountActorCodeID)
			rt.ExpectValidateCallerAny()
			ret := rt.Call(release.LeakActor{}.GetPublicDescription, nil).(*release.GetPublicDescriptionReturn)
			rt.Verify()
			assert.Equal(t, "desc", ret.PublicDescription)
		}
	})

	t.Run("non-author cannot reschedule", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now+100000)

		h.changeReleaseTimeFails(rt, release.LeakActor{}.ChangeReleaseTime, h.stranger, now-100000, exitcode.ErrForbidden)
		h.getMessageFails(rt, h.stranger, release.ErrNotYetReleased)
	})

	t.Run("author cannot reschedule a released message", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now-100000)

		h.changeReleaseTimeFails(rt, release.LeakActor{}.ChangeReleaseTime, h.author, now+100000, release.ErrAlreadyReleased)
		h.changeReleaseTimeFails(rt, release.LeakActor{}.ChangeReleaseTime, h.author, 0, release.ErrAlreadyReleased)
		assert.Equal(t, "secret", h.getMessage(rt, h.stranger))
		assert.Equal(t, now-100000, h.getInfo(rt).ReleaseTime)
	})

	t.Run("author can release a pending message early", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now+100000)

		h.changeReleaseTime(rt, release.LeakActor{}.ChangeReleaseTime, now-100000)
		assert.Equal(t, "secret", h.getMessage(rt, h.stranger))

		// and is then frozen out
		h.changeReleaseTimeFails(rt, release.LeakActor{}.ChangeReleaseTime, h.author, now+100000, release.ErrAlreadyReleased)
	})

	t.Run("author can postpone a pending message", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now+10)

		h.changeReleaseTime(rt, release.LeakActor{}.ChangeReleaseTime, now+100000)
		rt.SetTimestamp(now + 11)
		h.getMessageFails(rt, h.stranger, release.ErrNotYetReleased)
	})

	t.Run("info reports author, time and release status", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructLeak(rt, "desc", "secret", now+10)

		info := h.getInfo(rt)
		assert.Equal(t, h.author, info.Author)
		assert.Equal(t, now+10, info.ReleaseTime)
		assert.False(t, info.Released)

		rt.SetTimestamp(now + 11)
		assert.True(t, h.getInfo(rt).Released)
	})
}

func TestReleaseActor(t *testing.T) {
	h := newHarness(t, release.ReleaseActor{})

	t.Run("state carries no public description", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructRelease(rt, "secret", now+100000)

		var st release.State
		rt.GetState(&st)
		assert.Equal(t, h.author, st.Author)
		assert.Empty(t, st.PublicDescription)
		h.checkState(rt)
	})

	t.Run("non-author cannot reschedule, author can release early", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructRelease(rt, "secret", now+100000)

		h.changeReleaseTimeFails(rt, release.ReleaseActor{}.ChangeReleaseTime, h.stranger, now-100000, exitcode.ErrForbidden)
		h.getMessageFails(rt, h.stranger, release.ErrNotYetReleased)

		h.changeReleaseTime(rt, release.ReleaseActor{}.ChangeReleaseTime, now-100000)
		assert.Equal(t, "secret", h.getMessage(rt, h.author))
		assert.Equal(t, "secret", h.getMessage(rt, h.stranger))
	})

	t.Run("author can hide a released message again", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructRelease(rt, "secret", now-100000)
		assert.Equal(t, "secret", h.getMessage(rt, h.stranger))

		h.changeReleaseTime(rt, release.ReleaseActor{}.ChangeReleaseTime, now+100000)
		h.getMessageFails(rt, h.stranger, release.ErrNotYetReleased)
		assert.False(t, h.getInfo(rt).Released)
	})

	t.Run("reschedule is logged", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructRelease(rt, "secret", 5)

		rt.SetCaller(h.author, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectLogsContain("release time changed from 5 to 7")
		rt.Call(release.ReleaseActor{}.ChangeReleaseTime, &release.ChangeReleaseTimeParams{NewTime: 7})
		rt.Verify()
	})

	t.Run("rejected reschedule is not logged", func(t *testing.T) {
		rt := h.newRuntime()
		h.constructRelease(rt, "secret", 5)
		h.changeReleaseTime(rt, release.ReleaseActor{}.ChangeReleaseTime, 7)
		require.Len(t, rt.GetLogs(), 1)
		rt.Reset()

		rt.SetCaller(h.stranger, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortContainsMessage(exitcode.ErrForbidden, "is not the author", func() {
			rt.Call(release.ReleaseActor{}.ChangeReleaseTime, &release.ChangeReleaseTimeParams{NewTime: 9})
		})
		rt.Verify()
		assert.Empty(t, rt.GetLogs())
		assert.Equal(t, uint64(7), h.getInfo(rt).ReleaseTime)
	})
}

type harness struct {
	t        *testing.T
	actor    runtime.VMActor
	receiver addr.Address
	author   addr.Address
	stranger addr.Address
}

func newHarness(t *testing.T, actor runtime.VMActor) *harness {
	return &harness{
		t:        t,
		actor:    actor,
		receiver: tutil.NewIDAddr(t, 1000),
		author:   tutil.NewIDAddr(t, 100),
		stranger: tutil.NewIDAddr(t, 101),
	}
}

func (h *harness) newRuntime() *mock.Runtime {
	return mock.NewBuilder(context.Background(), h.receiver).
		WithTimestamp(now).
		WithActorType(h.author, builtin.AccountActorCodeID).
		WithActorType(h.stranger, builtin.AccountActorCodeID).
		Build(h.t)
}

func (h *harness) deployAs(rt *mock.Runtime) {
	rt.SetCaller(builtin.InitActorAddr, builtin.InitActorCodeID)
	rt.SetOrigin(h.author)
	rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
}

func (h *harness) constructLeak(rt *mock.Runtime, description, message string, releaseTime uint64) {
	h.deployAs(rt)
	ret := rt.Call(release.LeakActor{}.Constructor, &release.LeakConstructorParams{
		PublicDescription: description,
		Message:           message,
		ReleaseTime:       releaseTime,
	})
	assert.Nil(h.t, ret)
	rt.Verify()
	rt.SetOrigin(addr.Undef)
}

func (h *harness) constructRelease(rt *mock.Runtime, message string, releaseTime uint64) {
	h.deployAs(rt)
	ret := rt.Call(release.ReleaseActor{}.Constructor, &release.ReleaseConstructorParams{
		Message:     message,
		ReleaseTime: releaseTime,
	})
	assert.Nil(h.t, ret)
	rt.Verify()
	rt.SetOrigin(addr.Undef)
}

func (h *harness) getMessage(rt *mock.Runtime, caller addr.Address) string {
	rt.SetCaller(caller, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.actor.Exports()[builtin.MethodsLeak.GetMessage], nil).(*release.GetMessageReturn)
	rt.Verify()
	return ret.Message
}

func (h *harness) getMessageFails(rt *mock.Runtime, caller addr.Address, code exitcode.ExitCode) {
	rt.SetCaller(caller, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectAbort(code, func() {
		rt.Call(h.actor.Exports()[builtin.MethodsLeak.GetMessage], nil)
	})
	rt.Verify()
}

func (h *harness) getInfo(rt *mock.Runtime) *release.GetInfoReturn {
	rt.SetCaller(h.stranger, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.actor.Exports()[builtin.MethodsLeak.GetInfo], nil).(*release.GetInfoReturn)
	rt.Verify()
	return ret
}

func (h *harness) changeReleaseTime(rt *mock.Runtime, method interface{}, newTime uint64) {
	rt.SetCaller(h.author, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	ret := rt.Call(method, &release.ChangeReleaseTimeParams{NewTime: newTime})
	assert.Nil(h.t, ret)
	rt.Verify()

	var st release.State
	rt.GetState(&st)
	require.Equal(h.t, newTime, st.ReleaseTime)
}

func (h *harness) changeReleaseTimeFails(rt *mock.Runtime, method interface{}, caller addr.Address, newTime uint64, code exitcode.ExitCode) {
	var before release.State
	rt.GetState(&before)

	rt.SetCaller(caller, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectAbort(code, func() {
		rt.Call(method, &release.ChangeReleaseTimeParams{NewTime: newTime})
	})
	rt.Verify()

	var after release.State
	rt.GetState(&after)
	assert.Equal(h.t, before, after)
}

func (h *harness) checkState(rt *mock.Runtime) {
	var st release.State
	rt.GetState(&st)
	_, msgs := release.CheckStateInvariants(&st, rt.GetTimestamp())
	assert.True(h.t, msgs.IsEmpty(), msgs.Messages())
}
