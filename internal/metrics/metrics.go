// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Identity metrics
	IncSignup()
	IncLoginSuccess()
	IncLoginFailure()

	// Content metrics
	IncMessagePosted()
	IncMessageDeleted()

	// Social graph metrics
	IncFollowCreated()
	IncFollowRemoved()

	// Authorization metrics
	IncAuthzDenied(action string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
