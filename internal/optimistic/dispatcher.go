package optimistic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conference-hall/hall/internal/schedule"
)

// Settlement is the terminal outcome of a dispatched mutation.
type Settlement struct {
	Ticket   Ticket
	Mutation schedule.Mutation
	Err      error
}

// Request persists one mutation. Hosts run it off their event loop.
type Request func(ctx context.Context) Settlement

// Dispatcher applies mutations optimistically and builds the requests persisting them.
type Dispatcher struct {
	repo   schedule.Repository
	store  *Store
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher writing through repo.
func NewDispatcher(repo schedule.Repository, store *Store, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{repo: repo, store: store, logger: logger}
}

// Store returns the store the dispatcher applies mutations to.
func (d *Dispatcher) Store() *Store {
	return d.store
}

// Dispatch applies m to the store and returns its ticket and the request persisting it.
func (d *Dispatcher) Dispatch(m schedule.Mutation) (Ticket, Request) {
	// The store and the request keep their own copy of the caller's slices.
	m.Payload = m.Payload.Clone()
	ticket := d.store.Apply(m)
	d.logger.Debug("mutation dispatched", "mutation", m.String(), "seq", ticket.Seq)

	return ticket, func(ctx context.Context) Settlement {
		return Settlement{Ticket: ticket, Mutation: m, Err: persist(ctx, d.repo, m)}
	}
}

// Settle retracts the pending mutation of s.
// It returns false when a newer mutation for the same session superseded it.
func (d *Dispatcher) Settle(s Settlement) bool {
	if s.Err != nil {
		d.logger.Warn("mutation rejected", "mutation", s.Mutation.String(), "error", s.Err)
	} else {
		d.logger.Debug("mutation confirmed", "mutation", s.Mutation.String(), "seq", s.Ticket.Seq)
	}
	retracted := d.store.Retract(s.Ticket)
	if !retracted {
		d.logger.Debug("stale settlement ignored", "session", s.Ticket.Key, "seq", s.Ticket.Seq)
	}
	return retracted
}

func persist(ctx context.Context, repo schedule.Repository, m schedule.Mutation) error {
	switch m.Kind {
	case schedule.MutationAdd:
		if err := repo.CreateSession(ctx, m.Payload); err != nil {
			return fmt.Errorf("creating session: %w", err)
		}
	case schedule.MutationUpdate:
		if err := repo.UpdateSession(ctx, m.Payload); err != nil {
			return fmt.Errorf("updating session: %w", err)
		}
	case schedule.MutationDelete:
		if err := repo.DeleteSession(ctx, m.SessionID); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}
	default:
		return fmt.Errorf("unknown mutation kind %q", m.Kind)
	}
	return nil
}
