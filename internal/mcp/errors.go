package mcp

import (
	"errors"
	"fmt"
	"time"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/planner"
	"github.com/conference-hall/hall/internal/schedule"
	"github.com/conference-hall/hall/internal/timeslot"
)

// APIError is the body of a failed tool call.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool error codes. Unknown errors map to INTERNAL.
func MapError(err error, loc *time.Location) *APIError {
	if err == nil {
		return nil
	}
	msg := err.Error()

	var overlap *schedule.OverlapError
	switch {
	case errors.As(err, &overlap):
		return &APIError{
			Code:         "SESSION_OVERLAP",
			Message:      msg,
			Details:      map[string]any{"conflicts_with": newSessionView(overlap.With, "", loc)},
			RecoveryHint: "Pick a free time on the track, or move the other session first",
		}
	case errors.Is(err, schedule.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: msg, RecoveryHint: "Call get_agenda to list session ids"}
	case errors.Is(err, planner.ErrSessionRequired):
		return &APIError{Code: "SESSION_REQUIRED", Message: msg, RecoveryHint: "Pass a session id or unique id prefix"}
	case errors.Is(err, schedule.ErrTrackNotFound):
		return &APIError{Code: "TRACK_NOT_FOUND", Message: msg, RecoveryHint: "Call list_tracks for track names and ids"}
	case errors.Is(err, schedule.ErrMissingTrack):
		return &APIError{Code: "TRACK_REQUIRED", Message: msg, RecoveryHint: "Pass a track name or id"}
	case errors.Is(err, schedule.ErrEmptyTrackName):
		return &APIError{Code: "TRACK_NAME_REQUIRED", Message: msg}
	case errors.Is(err, schedule.ErrAmbiguousID):
		return &APIError{Code: "AMBIGUOUS_ID", Message: msg, RecoveryHint: "Use more characters of the id"}
	case errors.Is(err, schedule.ErrInvalidColor):
		return &APIError{Code: "INVALID_COLOR", Message: msg, Details: map[string]any{"colors": schedule.Colors()}}
	case errors.Is(err, planner.ErrMisaligned):
		return &APIError{Code: "MISALIGNED_TIME", Message: msg, RecoveryHint: "Round times to 5 minutes"}
	case errors.Is(err, timeslot.ErrInvalidClock), errors.Is(err, timeslot.ErrInvalidTimeslot):
		return &APIError{Code: "INVALID_TIME", Message: msg, RecoveryHint: "Use HH:MM with start before end"}
	case errors.Is(err, dateutil.ErrNotEventDay), errors.Is(err, dateutil.ErrInvalidDateFormat):
		return &APIError{Code: "INVALID_DAY", Message: msg, RecoveryHint: "Call list_days for the event days"}
	default:
		return &APIError{Code: "INTERNAL", Message: msg}
	}
}
