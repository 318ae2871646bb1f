package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups         uint64
	LoginSuccesses  uint64
	LoginFailures   uint64
	MessagesPosted  uint64
	MessagesDeleted uint64
	FollowsCreated  uint64
	FollowsRemoved  uint64
	AuthzDenials    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	signups         uint64
	loginSuccesses  uint64
	loginFailures   uint64
	messagesPosted  uint64
	messagesDeleted uint64
	followsCreated  uint64
	followsRemoved  uint64
	authzDenials    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:         atomic.LoadUint64(&m.signups),
		LoginSuccesses:  atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:   atomic.LoadUint64(&m.loginFailures),
		MessagesPosted:  atomic.LoadUint64(&m.messagesPosted),
		MessagesDeleted: atomic.LoadUint64(&m.messagesDeleted),
		FollowsCreated:  atomic.LoadUint64(&m.followsCreated),
		FollowsRemoved:  atomic.LoadUint64(&m.followsRemoved),
		AuthzDenials:    atomic.LoadUint64(&m.authzDenials),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncMessagePosted increments the message posted counter.
func (m *InMemoryRecorder) IncMessagePosted() {
	atomic.AddUint64(&m.messagesPosted, 1)
}

// IncMessageDeleted increments the message deleted counter.
func (m *InMemoryRecorder) IncMessageDeleted() {
	atomic.AddUint64(&m.messagesDeleted, 1)
}

// IncFollowCreated increments the follow created counter.
func (m *InMemoryRecorder) IncFollowCreated() {
	atomic.AddUint64(&m.followsCreated, 1)
}

// IncFollowRemoved increments the follow removed counter.
func (m *InMemoryRecorder) IncFollowRemoved() {
	atomic.AddUint64(&m.followsRemoved, 1)
}

// IncAuthzDenied increments the authorization denial counter.
func (m *InMemoryRecorder) IncAuthzDenied(action string) {
	atomic.AddUint64(&m.authzDenials, 1)
}
