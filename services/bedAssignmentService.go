package services

import (
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/repositories"
	"context"
	"time"
)

var assignmentRules = rules{
	repositories.ErrBedUnavailable:    "Selected bed is not available",
	repositories.ErrConflict:          "Patient is already assigned to a bed",
	repositories.ErrInvalidReference:  "Selected bed or patient does not exist",
	repositories.ErrInvalidTransition: "Patient has already been discharged",
}

// BedAssignmentService admits, moves and discharges patients. Each call is
// one atomic operation on bed occupancy and the assignment record.
type BedAssignmentService struct {
	store    BedAssignmentStore
	notifier notify.Notifier
	now      func() time.Time
}

func NewBedAssignmentService(store BedAssignmentStore, notifier notify.Notifier) *BedAssignmentService {
	return &BedAssignmentService{store: store, notifier: notifier, now: time.Now}
}

func (s *BedAssignmentService) List(ctx context.Context, filter models.BedAssignmentFilter) ([]models.BedAssignment, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch bed assignments", rows, err)
}

func (s *BedAssignmentService) Get(ctx context.Context, id string) (*models.BedAssignment, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch bed assignment details", row, err)
}

// Create admits the patient to the bed.
func (s *BedAssignmentService) Create(ctx context.Context, in models.BedAssignmentInput) (*models.BedAssignment, error) {
	assignment, err := s.store.Admit(ctx, in.Model())
	return assignment, assignmentRules.explain(err)
}

// Update changes assignment details; a new bed_id transfers the patient.
func (s *BedAssignmentService) Update(ctx context.Context, id string, cols models.Columns) (*models.BedAssignment, error) {
	assignment, err := s.store.Update(ctx, id, cols)
	return assignment, assignmentRules.explain(err)
}

func (s *BedAssignmentService) Transfer(ctx context.Context, id, bedID string) (*models.BedAssignment, error) {
	assignment, err := s.store.Transfer(ctx, id, bedID)
	return assignment, assignmentRules.explain(err)
}

// Discharge closes the assignment now and frees the bed.
func (s *BedAssignmentService) Discharge(ctx context.Context, id string) (*models.BedAssignment, error) {
	assignment, err := s.store.Discharge(ctx, id, s.now().UTC())
	return assignment, assignmentRules.explain(err)
}

// Delete removes the assignment, freeing the bed if it was active.
func (s *BedAssignmentService) Delete(ctx context.Context, id string) error {
	return assignmentRules.explain(s.store.Delete(ctx, id))
}
