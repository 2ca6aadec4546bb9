package session

// progressTracker follows how far through the prepared question list the
// interview has advanced. The index is monotonically non-decreasing and
// never exceeds the total.
type progressTracker struct {
	current int
	total   int
}

func newProgressTracker(totalQuestions int) *progressTracker {
	return &progressTracker{total: totalQuestions}
}

// advance moves the index forward by one confirmed question. Called at most
// once per assistant turn.
func (t *progressTracker) advance() {
	if t.current < t.total {
		t.current++
	}
}

// remaining reports whether there are prepared questions left to ask.
func (t *progressTracker) remaining() bool {
	return t.current < t.total
}

// exhausted reports whether every prepared question has been asked. An
// interview with no prepared questions never exhausts; it only ends by
// inactivity, manual disconnect or remote termination.
func (t *progressTracker) exhausted() bool {
	return t.total > 0 && t.current >= t.total
}
