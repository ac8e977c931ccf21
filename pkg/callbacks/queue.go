// Package callbacks holds named actions deferred until the next update or
// the end of the session.
package callbacks

import (
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
)

var log = logging.GetLogger("callbacks")

// Action is a deferred unit of work
type Action func() error

type callback struct {
	name   string
	action Action
}

// Queue runs actions in the order they were added, each at most once
type Queue struct {
	pending []callback
}

// NewQueue returns an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends a named action
func (q *Queue) Add(name string, action Action) {
	q.pending = append(q.pending, callback{name: name, action: action})
}

// Len is the number of actions waiting to run
func (q *Queue) Len() int {
	return len(q.pending)
}

// Names lists the waiting actions in run order
func (q *Queue) Names() []string {
	names := make([]string, len(q.pending))
	for i, cb := range q.pending {
		names[i] = cb.name
	}
	return names
}

// Run drains the queue in FIFO order. The first failure stops the run and
// the actions behind it are dropped with the rest of the drained queue.
func (q *Queue) Run() error {
	drained := q.pending
	q.pending = nil

	for i, cb := range drained {
		log.Info().Str("callback", cb.name).Msg("Running callback")
		if cb.action == nil {
			continue
		}
		if err := cb.action(); err != nil {
			if skipped := len(drained) - i - 1; skipped > 0 {
				log.Warn().Str("callback", cb.name).Int("dropped", skipped).Msg("Callback failed, dropping the rest of the queue")
			}
			return errors.Wrapf(err, errors.ErrCallback, "callback %q failed", cb.name).
				WithDetail("callback", cb.name)
		}
	}
	return nil
}

// Wait blocks until background callbacks finish. Callbacks run inline, so
// there is never anything to wait for.
func (q *Queue) Wait() error {
	return nil
}

// Abort cancels background callbacks. Callbacks run inline, so this does
// nothing.
func (q *Queue) Abort() {}
