package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"carbook/internal/api"
	"carbook/internal/domain"
	"carbook/internal/logger"
	"carbook/internal/security"
	"carbook/internal/store"
	"carbook/internal/utils"
)

// State is the position of a single submission attempt.
type State string

const (
	StateIdle              State = "IDLE"
	StateValidating        State = "VALIDATING"
	StateInvalid           State = "INVALID"
	StateResolvingLocation State = "RESOLVING_LOCATION"
	StateAuthRequired      State = "AUTH_REQUIRED"
	StateSubmitting        State = "SUBMITTING"
	StateSucceeded         State = "SUCCEEDED"
	StateFailed            State = "FAILED"
)

// BookingAPI is the slice of the backend client the workflow needs.
type BookingAPI interface {
	CreateBooking(ctx context.Context, carID string, payload api.BookingPayload) (*domain.Booking, error)
}

// LocationResolver names a coordinate. It never fails hard; unresolvable
// coordinates come back as a sentinel string.
type LocationResolver interface {
	Resolve(ctx context.Context, lat, lng float64) string
}

// Outcome reports where a submission attempt ended up.
type Outcome struct {
	State     State           `json:"state"`
	Errors    []string        `json:"errors,omitempty"`     // validation messages (StateInvalid)
	Message   string          `json:"message,omitempty"`    // user-facing failure notice (StateFailed)
	ReopenMap bool            `json:"reopen_map,omitempty"` // the failure points at the drop-off location
	Booking   *domain.Booking `json:"booking,omitempty"`    // set on StateSucceeded; FinalPrice is authoritative
	// EstimatedTotal is the locally computed total, forwarded for display only.
	EstimatedTotal float64 `json:"estimated_total"`
}

// Workflow orchestrates one booking submission: validate, resolve the
// drop-off name if needed, gate on authentication, then persist. When the
// user is not signed in the intent is deferred to durable storage and
// replayed after authentication.
type Workflow struct {
	api      BookingAPI
	resolver LocationResolver
	store    store.Store
}

func NewWorkflow(bookingAPI BookingAPI, resolver LocationResolver, st store.Store) *Workflow {
	return &Workflow{
		api:      bookingAPI,
		resolver: resolver,
		store:    st,
	}
}

// Submit runs one submission attempt. Whatever the outcome, the caller's form
// state is never cleared; Invalid and Failed outcomes are resubmittable.
func (w *Workflow) Submit(ctx context.Context, intent *domain.BookingIntent) Outcome {
	state := transition(StateIdle, StateValidating)

	if errs := Validate(intent); len(errs) > 0 {
		transition(state, StateInvalid)
		return Outcome{State: StateInvalid, Errors: errs}
	}

	if intent.Dropoff != nil && strings.TrimSpace(intent.Dropoff.Name) == "" {
		// drop-off was picked on the map but not yet named
		state = transition(state, StateResolvingLocation)
		intent.Dropoff.Name = w.resolver.Resolve(ctx, intent.Dropoff.Lat, intent.Dropoff.Lng)
	}

	quote := utils.ComputeQuote(intent.DailyPrice, intent.Extras, domain.ExtrasCatalog, domain.BookingTax)
	intent.EstimatedTotal = quote.Total

	identity, err := w.identity()
	if err != nil {
		if deferErr := w.deferIntent(intent); deferErr != nil {
			logger.Error("failed to defer booking intent", "error", deferErr)
			transition(state, StateFailed)
			return Outcome{
				State:          StateFailed,
				Message:        "Could not save your booking for after sign-in. Please try again.",
				EstimatedTotal: quote.Total,
			}
		}
		transition(state, StateAuthRequired)
		return Outcome{State: StateAuthRequired, EstimatedTotal: quote.Total}
	}

	intent.UserID = identity.UserID
	return w.submit(ctx, state, intent)
}

// Resume replays a deferred intent after sign-in. The slot is cleared before
// the attempt so a replay happens at most once, whatever the outcome. A nil
// outcome means nothing was pending.
func (w *Workflow) Resume(ctx context.Context) (*Outcome, error) {
	raw, err := w.store.Get(store.KeyPendingBooking)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := w.store.Delete(store.KeyPendingBooking); err != nil {
		logger.Warn("failed to clear deferred booking slot", "error", err)
	}

	var intent domain.BookingIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		logger.Error("discarding undecodable deferred booking", "error", err)
		return nil, fmt.Errorf("deferred booking could not be decoded: %w", err)
	}

	identity, err := w.identity()
	if err != nil {
		// still unauthenticated; the slot is already gone per the
		// at-most-one replay rule
		return nil, err
	}
	intent.UserID = identity.UserID

	outcome := w.submit(ctx, StateValidating, &intent)
	if outcome.State == StateFailed {
		logger.Error("deferred booking replay failed", "car_id", intent.CarID, "message", outcome.Message)
	}
	return &outcome, nil
}

func (w *Workflow) submit(ctx context.Context, state State, intent *domain.BookingIntent) Outcome {
	transition(state, StateSubmitting)
	payload := BuildPayload(intent)

	booked, err := w.api.CreateBooking(ctx, intent.CarID, payload)
	if err != nil {
		message := "The booking could not be completed. Please try again."
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			message = apiErr.UserMessage()
		}
		transition(StateSubmitting, StateFailed)
		return Outcome{
			State:          StateFailed,
			Message:        message,
			ReopenMap:      mentionsLocation(message),
			EstimatedTotal: intent.EstimatedTotal,
		}
	}

	transition(StateSubmitting, StateSucceeded)
	return Outcome{
		State:          StateSucceeded,
		Booking:        booked,
		EstimatedTotal: intent.EstimatedTotal,
	}
}

func (w *Workflow) identity() (*security.Identity, error) {
	token, err := w.store.Get(store.KeyUserToken)
	if err != nil {
		return nil, security.ErrNoToken
	}
	return security.ParseIdentity(token)
}

// deferIntent serializes the intent into the single deferred-booking slot.
func (w *Workflow) deferIntent(intent *domain.BookingIntent) error {
	if _, err := w.store.Get(store.KeyPendingBooking); err == nil {
		logger.Warn("overwriting a previously deferred booking; the slot holds one intent at a time")
	}
	return store.SetJSON(w.store, store.KeyPendingBooking, intent)
}

func transition(from, to State) State {
	logger.Debug("booking workflow transition", "from", string(from), "to", string(to))
	return to
}

func mentionsLocation(message string) bool {
	return strings.Contains(strings.ToLower(message), "location")
}
