package service

import (
	"context"

	"carbook/internal/api"
	"carbook/internal/domain"
	"carbook/internal/logger"
	"carbook/internal/store"
)

type authService struct {
	api      *api.Client
	store    store.Store
	bookings BookingService
}

// NewAuthService builds the customer auth service. After a successful sign-in
// or sign-up it replays any deferred booking through the booking service.
func NewAuthService(client *api.Client, st store.Store, bookings BookingService) AuthService {
	return &authService{api: client, store: st, bookings: bookings}
}

func (s *authService) Login(ctx context.Context, creds api.Credentials) (*Session, error) {
	token, user, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, token, user)
}

func (s *authService) Register(ctx context.Context, reg api.Registration) (*Session, error) {
	token, user, err := s.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, token, user)
}

// Logout invalidates the backend session best-effort and always clears the
// local one.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		logger.Warn("backend logout failed; clearing local session anyway", "error", err)
	}
	if err := s.store.Delete(store.KeyUserToken); err != nil {
		return err
	}
	return s.store.Delete(store.KeyUser)
}

func (s *authService) openSession(ctx context.Context, token string, user *domain.User) (*Session, error) {
	if err := s.store.Set(store.KeyUserToken, token); err != nil {
		return nil, err
	}
	if err := store.SetJSON(s.store, store.KeyUser, user); err != nil {
		logger.Warn("failed to persist user identity", "error", err)
	}

	session := &Session{User: user}

	// a booking deferred before sign-in resumes here, exactly once
	outcome, err := s.bookings.ResumePending(ctx)
	if err != nil {
		logger.Error("deferred booking resume failed", "error", err)
	}
	session.ResumedBooking = outcome
	return session, nil
}
