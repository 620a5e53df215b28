// Package view holds the client's view models: each UI component from the
// browser app becomes a view type that fetches through the API client, keeps
// exclusive local state and renders plain text. Views never share mutable
// state; cross-view consistency happens only through explicit re-fetch.
package view

import "context"

// Phase is the load state machine every fetching view goes through
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseError
	PhaseNotFound
)

// lifecycle ties a view's asynchronous work to its lifetime. Close cancels
// the view's context; results arriving afterwards are dropped instead of
// applied to state that nobody renders anymore.
type lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifecycle(parent context.Context) lifecycle {
	ctx, cancel := context.WithCancel(parent)
	return lifecycle{ctx: ctx, cancel: cancel}
}

// Context returns the view's context, used for all its requests
func (l *lifecycle) Context() context.Context {
	return l.ctx
}

// Close ends the view's lifetime
func (l *lifecycle) Close() {
	l.cancel()
}

// Closed reports whether the view was closed
func (l *lifecycle) Closed() bool {
	return l.ctx.Err() != nil
}
