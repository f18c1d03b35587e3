package bridge

import "context"

// Call is a deferred bridge invocation.
type Call struct {
	Name string
	Run  func(ctx context.Context, api API) error
}

// ReadyGate holds calls back until the host signals readiness, then
// releases them once, in submission order.
type ReadyGate struct {
	ready   bool
	pending []Call
}

// Ready reports whether the readiness signal arrived.
func (g *ReadyGate) Ready() bool {
	return g.ready
}

// Pending returns the number of queued calls.
func (g *ReadyGate) Pending() int {
	return len(g.pending)
}

// Submit returns the call for immediate execution when ready, or queues it
// and reports false.
func (g *ReadyGate) Submit(call Call) (Call, bool) {
	if g.ready {
		return call, true
	}
	g.pending = append(g.pending, call)
	return Call{}, false
}

// MarkReady flips the gate and hands back the queued calls. Later calls
// return nil.
func (g *ReadyGate) MarkReady() []Call {
	if g.ready {
		return nil
	}
	g.ready = true
	released := g.pending
	g.pending = nil
	return released
}
