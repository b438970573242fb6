package schedule

import "fmt"

// MutationKind identifies the kind of change a mutation applies.
type MutationKind string

const (
	MutationAdd    MutationKind = "add"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// Mutation is a not-yet-confirmed change to one session, keyed by SessionID.
// Payload is ignored for deletes.
type Mutation struct {
	Kind      MutationKind
	SessionID string
	Payload   Session
}

// AddSession returns an add mutation for s.
func AddSession(s Session) Mutation {
	return Mutation{Kind: MutationAdd, SessionID: s.ID, Payload: s}
}

// UpdateSession returns an update mutation for s.
func UpdateSession(s Session) Mutation {
	return Mutation{Kind: MutationUpdate, SessionID: s.ID, Payload: s}
}

// DeleteSession returns a delete mutation for id.
func DeleteSession(id string) Mutation {
	return Mutation{Kind: MutationDelete, SessionID: id}
}

// String describes the mutation for logs and status lines.
func (m Mutation) String() string {
	if m.Kind == MutationDelete {
		return fmt.Sprintf("%s %s", m.Kind, m.SessionID)
	}
	return fmt.Sprintf("%s %s %s@%s", m.Kind, m.SessionID, m.Payload.Timeslot, m.Payload.TrackID)
}
