package services

import (
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/repositories"
	"context"
)

var (
	wardRules = rules{
		repositories.ErrHasDependents: "Cannot delete ward with assigned beds",
		repositories.ErrConflict:      "A ward with this name already exists",
	}
	bedRules = rules{
		repositories.ErrHasDependents:     "Cannot delete bed that is currently occupied",
		repositories.ErrConflict:          "Bed number already exists in this ward",
		repositories.ErrInvalidTransition: "Bed occupancy changes through bed assignments",
		repositories.ErrInvalidReference:  "Selected ward does not exist",
	}
)

type WardService struct {
	store    WardStore
	notifier notify.Notifier
}

func NewWardService(store WardStore, notifier notify.Notifier) *WardService {
	return &WardService{store: store, notifier: notifier}
}

func (s *WardService) List(ctx context.Context, filter models.WardFilter) ([]models.Ward, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch wards", rows, err)
}

func (s *WardService) Get(ctx context.Context, id string) (*models.Ward, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch ward details", row, err)
}

func (s *WardService) Create(ctx context.Context, in models.WardInput) (*models.Ward, error) {
	ward := in.Model()
	if err := s.store.Create(ctx, ward); err != nil {
		return nil, wardRules.explain(err)
	}
	return ward, nil
}

func (s *WardService) Update(ctx context.Context, id string, cols models.Columns) (*models.Ward, error) {
	ward, err := s.store.Update(ctx, id, cols)
	return ward, wardRules.explain(err)
}

// Delete fails while the ward owns beds.
func (s *WardService) Delete(ctx context.Context, id string) error {
	return wardRules.explain(s.store.Delete(ctx, id))
}

type BedService struct {
	store    BedStore
	notifier notify.Notifier
}

func NewBedService(store BedStore, notifier notify.Notifier) *BedService {
	return &BedService{store: store, notifier: notifier}
}

func (s *BedService) List(ctx context.Context, filter models.BedFilter) ([]models.Bed, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch beds", rows, err)
}

func (s *BedService) Get(ctx context.Context, id string) (*models.Bed, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch bed details", row, err)
}

func (s *BedService) Create(ctx context.Context, in models.BedInput) (*models.Bed, error) {
	bed, err := s.store.Create(ctx, in.Model())
	return bed, bedRules.explain(err)
}

func (s *BedService) Update(ctx context.Context, id string, cols models.Columns) (*models.Bed, error) {
	bed, err := s.store.Update(ctx, id, cols)
	return bed, bedRules.explain(err)
}

func (s *BedService) Delete(ctx context.Context, id string) error {
	return bedRules.explain(s.store.Delete(ctx, id))
}
