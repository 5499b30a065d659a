package release

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
)

// Exit codes for errors specific to time-gated records.
const (
	// The release time is frozen because the message is already public.
	ErrAlreadyReleased = exitcode.FirstActorSpecificExitCode + iota
	// The message is still hidden.
	ErrNotYetReleased
)

// State is a message bound to an author and a release time.
// Only ReleaseTime ever changes after construction.
type State struct {
	// ID-address of the account that deployed the record.
	Author addr.Address
	// Always readable. Empty for records without a description.
	PublicDescription string
	// Hidden until the release time has passed.
	Message string
	// Unix seconds. The message is readable strictly after this instant.
	ReleaseTime uint64
}

// ConstructState binds a message to its author and release time. Any release time is accepted.
func ConstructState(author addr.Address, description, message string, releaseTime uint64) *State {
	return &State{
		Author:            author,
		PublicDescription: description,
		Message:           message,
		ReleaseTime:       releaseTime,
	}
}

// IsReleased reports whether the message is public at time now.
// A reading equal to the release time is still pending.
func (st *State) IsReleased(now uint64) bool {
	return now > st.ReleaseTime
}

// MessageAt returns the message if it is public at time now. The identity of the reader is irrelevant.
func (st *State) MessageAt(now uint64) (string, error) {
	if !st.IsReleased(now) {
		return "", ErrNotYetReleased.Wrapf("message is hidden until %d, now %d", st.ReleaseTime, now)
	}
	return st.Message, nil
}

// Reschedule moves the release time to newTime on behalf of caller.
// Only the author may reschedule, and then only if the policy allows it at time now.
// The state is unchanged if an error is returned.
func (st *State) Reschedule(caller addr.Address, now, newTime uint64, policy SchedulePolicy) error {
	if caller != st.Author {
		return exitcode.ErrForbidden.Wrapf("caller %v is not the author %v", caller, st.Author)
	}
	if err := policy.CheckReschedule(st.ReleaseTime, now); err != nil {
		return err
	}
	st.ReleaseTime = newTime
	return nil
}
