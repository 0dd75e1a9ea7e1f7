package services

import (
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/repositories"
	"context"
)

var staffRules = rules{
	repositories.ErrConflict: "A staff member with this email already exists",
}

type StaffService struct {
	store    StaffStore
	notifier notify.Notifier
}

func NewStaffService(store StaffStore, notifier notify.Notifier) *StaffService {
	return &StaffService{store: store, notifier: notifier}
}

func (s *StaffService) List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch staff information", rows, err)
}

func (s *StaffService) Get(ctx context.Context, id string) (*models.Staff, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch staff details", row, err)
}

func (s *StaffService) Create(ctx context.Context, in models.StaffInput) (*models.Staff, error) {
	member := in.Model()
	if err := s.store.Create(ctx, member); err != nil {
		return nil, staffRules.explain(err)
	}
	return member, nil
}

func (s *StaffService) Update(ctx context.Context, id string, cols models.Columns) (*models.Staff, error) {
	member, err := s.store.Update(ctx, id, cols)
	return member, staffRules.explain(err)
}

func (s *StaffService) Delete(ctx context.Context, id string) error {
	return staffRules.explain(s.store.Delete(ctx, id))
}
