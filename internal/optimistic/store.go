// Package optimistic overlays in-flight session mutations on the confirmed schedule.
package optimistic

import (
	"slices"

	"github.com/conference-hall/hall/internal/schedule"
)

// Ticket identifies one dispatched mutation.
// Seq distinguishes successive mutations for the same key.
type Ticket struct {
	Key string
	Seq uint64
}

type pendingEntry struct {
	mutation schedule.Mutation
	seq      uint64
}

// Merge returns the sessions rendered when pending is applied over confirmed.
//
// Adds and updates replace the entry with the same id, keeping the previous proposal
// reference when the payload carries none. Deletes remove the id whether it came from
// confirmed data or an earlier pending mutation. The result is a new slice sorted by start.
func Merge(confirmed []schedule.Session, pending []schedule.Mutation) []schedule.Session {
	byID := make(map[string]schedule.Session, len(confirmed)+len(pending))
	order := make([]string, 0, len(confirmed)+len(pending))
	for _, s := range confirmed {
		if _, ok := byID[s.ID]; !ok {
			order = append(order, s.ID)
		}
		byID[s.ID] = s
	}

	for _, m := range pending {
		switch m.Kind {
		case schedule.MutationAdd, schedule.MutationUpdate:
			next := m.Payload.Clone()
			next.ID = m.SessionID
			prev, existed := byID[m.SessionID]
			if existed && next.Proposal == nil && prev.Proposal != nil {
				next.Proposal = prev.Clone().Proposal
			}
			if !existed {
				order = append(order, m.SessionID)
			}
			byID[m.SessionID] = next
		case schedule.MutationDelete:
			delete(byID, m.SessionID)
		}
	}

	result := make([]schedule.Session, 0, len(byID))
	for _, id := range order {
		if s, ok := byID[id]; ok {
			result = append(result, s)
		}
	}
	schedule.SortByStart(result)
	return result
}

// Store holds the confirmed sessions and the pending mutations keyed by session id.
// It is owned by a single event loop and is not safe for concurrent use.
type Store struct {
	confirmed []schedule.Session
	pending   map[string]pendingEntry
	seq       uint64
	sessions  []schedule.Session
}

// New creates a store over confirmed.
func New(confirmed []schedule.Session) *Store {
	s := &Store{pending: make(map[string]pendingEntry)}
	s.SetConfirmed(confirmed)
	return s
}

// SetConfirmed replaces the confirmed baseline, e.g. after a reload.
func (s *Store) SetConfirmed(confirmed []schedule.Session) {
	s.confirmed = slices.Clone(confirmed)
	s.recompute()
}

// Confirmed returns the confirmed baseline.
func (s *Store) Confirmed() []schedule.Session {
	return s.confirmed
}

// Apply records m as pending, superseding any pending mutation for the same session.
func (s *Store) Apply(m schedule.Mutation) Ticket {
	s.seq++
	s.pending[m.SessionID] = pendingEntry{mutation: m, seq: s.seq}
	s.recompute()
	return Ticket{Key: m.SessionID, Seq: s.seq}
}

// Retract removes the pending mutation identified by t.
// It returns false when that mutation was already retracted or superseded.
func (s *Store) Retract(t Ticket) bool {
	entry, ok := s.pending[t.Key]
	if !ok || entry.seq != t.Seq {
		return false
	}
	delete(s.pending, t.Key)
	s.recompute()
	return true
}

// Sessions returns the rendered sessions. The slice is rebuilt on every change
// and must not be modified.
func (s *Store) Sessions() []schedule.Session {
	return s.sessions
}

// Pending returns the pending mutations in dispatch order.
func (s *Store) Pending() []schedule.Mutation {
	entries := make([]pendingEntry, 0, len(s.pending))
	for _, e := range s.pending {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b pendingEntry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	result := make([]schedule.Mutation, len(entries))
	for i, e := range entries {
		result[i] = e.mutation
	}
	return result
}

// IsPending returns true if a mutation for id is in flight.
func (s *Store) IsPending(id string) bool {
	_, ok := s.pending[id]
	return ok
}

func (s *Store) recompute() {
	s.sessions = Merge(s.confirmed, s.Pending())
}
