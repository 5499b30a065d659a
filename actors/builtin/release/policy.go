package release

// SchedulePolicy decides whether an authorized reschedule may happen at time now,
// given the current release time.
type SchedulePolicy interface {
	CheckReschedule(releaseTime, now uint64) error
}

// StrictPolicy freezes the release time once the message is public.
// While pending, any new time is accepted, including one in the past.
type StrictPolicy struct{}

var _ SchedulePolicy = StrictPolicy{}

func (StrictPolicy) CheckReschedule(releaseTime, now uint64) error {
	if now > releaseTime {
		return ErrAlreadyReleased.Wrapf("message was released at %d, now %d", releaseTime, now)
	}
	return nil
}

// PermissivePolicy lets the author reschedule at any time.
// Moving the release time into the future hides a message that was already public.
type PermissivePolicy struct{}

var _ SchedulePolicy = PermissivePolicy{}

func (PermissivePolicy) CheckReschedule(_, _ uint64) error {
	return nil
}
