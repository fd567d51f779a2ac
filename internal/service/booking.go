package service

import (
	"context"

	"carbook/internal/api"
	"carbook/internal/booking"
	"carbook/internal/domain"
)

type bookingService struct {
	workflow *booking.Workflow
	api      *api.Client
}

func NewBookingService(workflow *booking.Workflow, client *api.Client) BookingService {
	return &bookingService{workflow: workflow, api: client}
}

func (s *bookingService) Submit(ctx context.Context, intent *domain.BookingIntent) booking.Outcome {
	return s.workflow.Submit(ctx, intent)
}

func (s *bookingService) ResumePending(ctx context.Context) (*booking.Outcome, error) {
	return s.workflow.Resume(ctx)
}

func (s *bookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.api.ListBookings(ctx)
}

func (s *bookingService) RecordPaymentMethod(ctx context.Context, carID, bookingID, method string) error {
	return s.api.RecordPaymentMethod(ctx, carID, bookingID, method)
}
