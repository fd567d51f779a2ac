package service

import (
	"context"
	"errors"

	"carbook/internal/domain"
	"carbook/internal/geocode"
	"carbook/internal/logger"
	"carbook/internal/store"
)

type locationService struct {
	resolver *geocode.Resolver
	store    store.Store
}

func NewLocationService(resolver *geocode.Resolver, st store.Store) LocationService {
	return &locationService{resolver: resolver, store: st}
}

// ResolveDropoff names a map click and remembers it as the last-used drop-off.
// The returned location is temporary until the backend persists it.
func (s *locationService) ResolveDropoff(ctx context.Context, lat, lng float64) (*domain.Location, error) {
	name := s.resolver.Resolve(ctx, lat, lng)
	location := &domain.Location{
		Name:      name,
		Lat:       lat,
		Lng:       lng,
		Active:    true,
		Temporary: true,
	}
	if err := store.SetJSON(s.store, store.KeyDropoffLocation, location); err != nil {
		logger.Warn("failed to persist last drop-off location", "error", err)
	}
	return location, nil
}

// LastDropoff returns the most recently used drop-off location, or nil.
func (s *locationService) LastDropoff() (*domain.Location, error) {
	var location domain.Location
	err := store.GetJSON(s.store, store.KeyDropoffLocation, &location)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}
