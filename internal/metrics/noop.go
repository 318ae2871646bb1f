package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncMessagePosted is a no-op.
func (n *NoopRecorder) IncMessagePosted() {}

// IncMessageDeleted is a no-op.
func (n *NoopRecorder) IncMessageDeleted() {}

// IncFollowCreated is a no-op.
func (n *NoopRecorder) IncFollowCreated() {}

// IncFollowRemoved is a no-op.
func (n *NoopRecorder) IncFollowRemoved() {}

// IncAuthzDenied is a no-op.
func (n *NoopRecorder) IncAuthzDenied(action string) {}
