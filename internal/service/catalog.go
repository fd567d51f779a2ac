package service

import (
	"context"
	"sync"

	"carbook/internal/api"
	"carbook/internal/domain"
	"carbook/internal/utils"
)

type catalogService struct {
	api *api.Client
}

func NewCatalogService(client *api.Client) CatalogService {
	return &catalogService{api: client}
}

// LoadHome fetches the car page and the filter metadata concurrently and
// waits for both to settle. The filter sidebar is never rendered from partial
// data, so either failure fails the page load.
func (s *catalogService) LoadHome(ctx context.Context, filter api.CarFilter, page int) (*HomePage, error) {
	var (
		wg         sync.WaitGroup
		cars       []domain.CarOffering
		pagination domain.Pagination
		filters    *domain.FilterInfo
		listErr    error
		filterErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cars, pagination, listErr = s.api.ListCars(ctx, filter, page)
	}()
	go func() {
		defer wg.Done()
		filters, filterErr = s.api.FilterInfo(ctx)
	}()
	wg.Wait()

	if listErr != nil {
		return nil, listErr
	}
	if filterErr != nil {
		return nil, filterErr
	}

	return &HomePage{Cars: cars, Pagination: pagination, Filters: filters}, nil
}

func (s *catalogService) CarDetail(ctx context.Context, id string) (*domain.CarOffering, error) {
	return s.api.CarDetail(ctx, id)
}

// Quote estimates the payable total for a car with the selected extras.
func (s *catalogService) Quote(ctx context.Context, carID string, extras []string) (utils.Quote, error) {
	car, err := s.api.CarDetail(ctx, carID)
	if err != nil {
		return utils.Quote{}, err
	}
	return utils.ComputeQuote(car.DailyPrice, extras, domain.ExtrasCatalog, domain.BookingTax), nil
}
