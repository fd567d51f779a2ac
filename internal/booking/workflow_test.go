package booking

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbook/internal/api"
	"carbook/internal/domain"
	"carbook/internal/store"
)

type mockBookingAPI struct {
	mock.Mock
}

func (m *mockBookingAPI) CreateBooking(ctx context.Context, carID string, payload api.BookingPayload) (*domain.Booking, error) {
	args := m.Called(ctx, carID, payload)
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type stubResolver struct {
	name  string
	calls int
}

func (r *stubResolver) Resolve(_ context.Context, _, _ float64) string {
	r.calls++
	return r.name
}

func signedTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func submittableIntent() *domain.BookingIntent {
	return &domain.BookingIntent{
		ID:          "intent-1",
		CarID:       "car-1",
		CarName:     "Camry",
		DailyPrice:  199.99,
		PickupDate:  "2026-09-01",
		PickupTime:  "10:00",
		DropoffDate: "2026-09-03",
		DropoffTime: "10:00",
		Pickup:      domain.PickupLocation,
	}
}

func TestWorkflowSubmit(t *testing.T) {
	t.Run("invalid intent never reaches the backend", func(t *testing.T) {
		backend := &mockBookingAPI{}
		wf := NewWorkflow(backend, &stubResolver{}, store.NewMemoryStore())

		intent := submittableIntent()
		intent.PickupDate = ""
		intent.DropoffDate = ""

		outcome := wf.Submit(context.Background(), intent)

		assert.Equal(t, StateInvalid, outcome.State)
		assert.NotEmpty(t, outcome.Errors)
		backend.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("signed-in submission succeeds with the backend booking", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))

		booked := &domain.Booking{ID: "b-1", Status: domain.BookingStatusPending, FinalPrice: 310}
		backend.On("CreateBooking", mock.Anything, "car-1", mock.MatchedBy(func(p api.BookingPayload) bool {
			return p.UserID == "42" && p.PickupLocation == domain.PickupLocation.Name
		})).Return(booked, nil)

		wf := NewWorkflow(backend, &stubResolver{}, st)
		outcome := wf.Submit(context.Background(), submittableIntent())

		assert.Equal(t, StateSucceeded, outcome.State)
		assert.Equal(t, booked, outcome.Booking)
		assert.Equal(t, 249.99, outcome.EstimatedTotal)
		backend.AssertExpectations(t)
	})

	t.Run("unnamed drop-off is resolved before submitting", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))
		resolver := &stubResolver{name: "Al Olaya"}

		backend.On("CreateBooking", mock.Anything, "car-1", mock.Anything).
			Return(&domain.Booking{ID: "b-2"}, nil)

		intent := submittableIntent()
		intent.Dropoff = &domain.Location{Lat: 24.7136, Lng: 46.6753, Temporary: true}

		wf := NewWorkflow(backend, resolver, st)
		outcome := wf.Submit(context.Background(), intent)

		assert.Equal(t, StateSucceeded, outcome.State)
		assert.Equal(t, 1, resolver.calls)
		assert.Equal(t, "Al Olaya", intent.Dropoff.Name)
	})

	t.Run("temporary drop-off travels by name only", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))

		backend.On("CreateBooking", mock.Anything, "car-1", mock.MatchedBy(func(p api.BookingPayload) bool {
			return p.AdditionalDriver &&
				p.DropoffLocationID == "" &&
				p.DropoffLocationName == "Al Olaya" &&
				p.DropoffLat != nil && p.DropoffLng != nil
		})).Return(&domain.Booking{ID: "b-3"}, nil)

		intent := submittableIntent()
		intent.Extras = []string{domain.ExtraAdditionalDriver}
		intent.Dropoff = &domain.Location{ID: "loc-9", Name: "Al Olaya", Lat: 24.7136, Lng: 46.6753, Temporary: true}

		wf := NewWorkflow(backend, &stubResolver{}, st)
		outcome := wf.Submit(context.Background(), intent)

		assert.Equal(t, StateSucceeded, outcome.State)
		backend.AssertExpectations(t)
	})

	t.Run("unauthenticated submission is deferred", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		wf := NewWorkflow(backend, &stubResolver{}, st)

		outcome := wf.Submit(context.Background(), submittableIntent())

		assert.Equal(t, StateAuthRequired, outcome.State)
		assert.Equal(t, 249.99, outcome.EstimatedTotal)

		_, err := st.Get(store.KeyPendingBooking)
		assert.NoError(t, err)
		backend.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a second deferral overwrites the slot", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		wf := NewWorkflow(backend, &stubResolver{}, st)

		first := submittableIntent()
		wf.Submit(context.Background(), first)

		second := submittableIntent()
		second.ID = "intent-2"
		second.CarID = "car-2"
		wf.Submit(context.Background(), second)

		var deferred domain.BookingIntent
		require.NoError(t, store.GetJSON(st, store.KeyPendingBooking, &deferred))
		assert.Equal(t, "car-2", deferred.CarID)
	})

	t.Run("backend failure is resubmittable", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))

		backend.On("CreateBooking", mock.Anything, "car-1", mock.Anything).
			Return(nil, &api.Error{Status: 500, Message: "The server failed to process the request. Please try again."}).Once()
		backend.On("CreateBooking", mock.Anything, "car-1", mock.Anything).
			Return(&domain.Booking{ID: "b-4"}, nil).Once()

		wf := NewWorkflow(backend, &stubResolver{}, st)

		failed := wf.Submit(context.Background(), submittableIntent())
		assert.Equal(t, StateFailed, failed.State)
		assert.Equal(t, "The server failed to process the request. Please try again.", failed.Message)
		assert.False(t, failed.ReopenMap)

		retried := wf.Submit(context.Background(), submittableIntent())
		assert.Equal(t, StateSucceeded, retried.State)
	})

	t.Run("location-related rejection reopens the map", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))

		backend.On("CreateBooking", mock.Anything, "car-1", mock.Anything).
			Return(nil, &api.Error{
				Status:  422,
				Message: "The submitted data was rejected.",
				Detail:  "The drop-off location is outside the service area.",
			})

		wf := NewWorkflow(backend, &stubResolver{}, st)
		outcome := wf.Submit(context.Background(), submittableIntent())

		assert.Equal(t, StateFailed, outcome.State)
		assert.True(t, outcome.ReopenMap)
		assert.Contains(t, outcome.Message, "outside the service area")
	})
}

func TestWorkflowResume(t *testing.T) {
	t.Run("nothing pending", func(t *testing.T) {
		wf := NewWorkflow(&mockBookingAPI{}, &stubResolver{}, store.NewMemoryStore())

		outcome, err := wf.Resume(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, outcome)
	})

	t.Run("deferred intent replays exactly once after sign-in", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		wf := NewWorkflow(backend, &stubResolver{}, st)

		// defer while signed out
		deferred := wf.Submit(context.Background(), submittableIntent())
		require.Equal(t, StateAuthRequired, deferred.State)

		// sign in and replay
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))
		backend.On("CreateBooking", mock.Anything, "car-1", mock.MatchedBy(func(p api.BookingPayload) bool {
			return p.UserID == "42"
		})).Return(&domain.Booking{ID: "b-5", Status: domain.BookingStatusPending}, nil).Once()

		outcome, err := wf.Resume(context.Background())
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, StateSucceeded, outcome.State)

		// the slot is consumed
		_, err = st.Get(store.KeyPendingBooking)
		assert.ErrorIs(t, err, store.ErrNotFound)

		again, err := wf.Resume(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, again)
		backend.AssertExpectations(t)
	})

	t.Run("failed replay is not re-deferred", func(t *testing.T) {
		backend := &mockBookingAPI{}
		st := store.NewMemoryStore()
		wf := NewWorkflow(backend, &stubResolver{}, st)

		require.Equal(t, StateAuthRequired, wf.Submit(context.Background(), submittableIntent()).State)
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))

		backend.On("CreateBooking", mock.Anything, "car-1", mock.Anything).
			Return(nil, &api.Error{Status: 500, Message: "The server failed to process the request. Please try again."})

		outcome, err := wf.Resume(context.Background())
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, StateFailed, outcome.State)

		_, err = st.Get(store.KeyPendingBooking)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("undecodable deferred intent is discarded", func(t *testing.T) {
		st := store.NewMemoryStore()
		require.NoError(t, st.Set(store.KeyPendingBooking, "{not json"))
		require.NoError(t, st.Set(store.KeyUserToken, signedTestToken(t, "42")))

		wf := NewWorkflow(&mockBookingAPI{}, &stubResolver{}, st)
		outcome, err := wf.Resume(context.Background())

		assert.Error(t, err)
		assert.Nil(t, outcome)
		_, err = st.Get(store.KeyPendingBooking)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
