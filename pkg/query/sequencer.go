package query

// Sequencer hands out increasing sequence numbers and remembers which one
// has been settled. Only the latest issued sequence may be settled, and only
// once.
type Sequencer struct {
	issued  uint64
	settled uint64
}

// Next issues a new sequence number, one greater than the last.
func (s *Sequencer) Next() uint64 {
	s.issued++
	return s.issued
}

// Current is the highest issued sequence, zero before the first request.
func (s *Sequencer) Current() uint64 {
	return s.issued
}

// IsLatest reports whether seq is the highest issued sequence.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return seq != 0 && seq == s.issued
}

// Settle marks seq as answered. It fails for stale or already settled
// sequences, those responses must be discarded.
func (s *Sequencer) Settle(seq uint64) bool {
	if !s.IsLatest(seq) || s.settled == seq {
		return false
	}
	s.settled = seq
	return true
}

// Pending reports whether the latest request is still unanswered.
func (s *Sequencer) Pending() bool {
	return s.issued != 0 && s.settled != s.issued
}
