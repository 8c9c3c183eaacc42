package checkpoint

import "sync/atomic"

// Sequencer generates a strictly monotonic count of dispatched updates,
// used to stamp each Record so a resumed replay and a fresh one produce
// directly comparable progress markers. Deterministic and replay-safe:
// reconstructing it from a saved Record's Sequence picks up exactly
// where the original run left off.
type Sequencer struct {
	next atomic.Uint64
}

// NewSequencer starts counting from start (0 for a fresh replay, or a
// checkpoint's saved Sequence when resuming).
func NewSequencer(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence value.
func (s *Sequencer) Next() uint64 { return s.next.Add(1) }

// Current returns the last issued sequence value without advancing.
func (s *Sequencer) Current() uint64 { return s.next.Load() }
