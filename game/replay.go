package game

// Frame is the input recorded for one frame of play. Events are applied
// in press, release, click order before the frame advances.
type Frame struct {
	DeltaTime float64
	Pointer   Point
	Press     bool
	Release   bool
	Click     bool
}

// Apply feeds f to s and advances one frame.
func (f Frame) Apply(s *Session) {
	s.SetPointer(f.Pointer)
	if f.Press {
		s.OnPress(f.Pointer)
	}
	if f.Release {
		s.OnRelease(f.Pointer)
	}
	if f.Click {
		s.OnClick(f.Pointer)
	}
	s.Advance(f.DeltaTime)
}

// Replay applies frames to s in order and returns the snapshot taken after
// each one. A session built with the same seed and config reproduces the
// same snapshots.
func Replay(s *Session, frames []Frame) []Snapshot {
	snaps := make([]Snapshot, 0, len(frames))
	for _, f := range frames {
		f.Apply(s)
		snaps = append(snaps, s.Snapshot())
	}
	return snaps
}
