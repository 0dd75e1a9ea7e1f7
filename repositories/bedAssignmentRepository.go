package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"
	"maps"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Locker serializes work on a key across service instances.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// BedAssignmentRepository keeps bed occupancy and assignment rows in step.
// Every write flips bed status and touches the assignment in one transaction
// with the affected beds locked.
type BedAssignmentRepository struct {
	table[models.BedAssignment]
	locker Locker
}

// NewBedAssignmentRepository builds the repository. locker may be nil, in
// which case only row locks guard the beds.
func NewBedAssignmentRepository(db *gorm.DB, locker Locker) *BedAssignmentRepository {
	return &BedAssignmentRepository{
		table:  table[models.BedAssignment]{db: db, preloads: []string{"Patient", "Bed", "Bed.Ward"}},
		locker: locker,
	}
}

func (r *BedAssignmentRepository) List(ctx context.Context, filter models.BedAssignmentFilter) ([]models.BedAssignment, error) {
	assignments := []models.BedAssignment{}
	err := r.session(ctx).
		Scopes(
			eq("status", filter.Status),
			eqID("bed_id", filter.BedID),
			eqID("patient_id", filter.PatientID),
		).
		Order("admission_date DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bed assignments: %w", classify(err))
	}
	return assignments, nil
}

func (r *BedAssignmentRepository) Get(ctx context.Context, id string) (*models.BedAssignment, error) {
	return r.get(ctx, id)
}

// Admit creates an active assignment and marks its bed occupied. The bed
// must be available and the patient must not hold another active bed.
func (r *BedAssignmentRepository) Admit(ctx context.Context, assignment *models.BedAssignment) (*models.BedAssignment, error) {
	if !validID(assignment.BedID) {
		return nil, fmt.Errorf("%w: bed %q", ErrInvalidReference, assignment.BedID)
	}
	if !validID(assignment.PatientID) {
		return nil, fmt.Errorf("%w: patient %q", ErrInvalidReference, assignment.PatientID)
	}
	assignment.Status = models.AssignmentActive
	assignment.ActualDischargeDate = nil
	err := r.withBeds(ctx, []string{assignment.BedID}, func(tx *gorm.DB) error {
		bed, err := lockBed(tx, assignment.BedID)
		if err != nil {
			if err == ErrNotFound {
				return fmt.Errorf("%w: bed %s", ErrInvalidReference, assignment.BedID)
			}
			return err
		}
		if bed.Status != models.BedAvailable {
			return fmt.Errorf("%w: bed %s is %s", ErrBedUnavailable, bed.BedNumber, bed.Status)
		}
		if err := ensureNotAdmitted(tx, assignment.PatientID, ""); err != nil {
			return err
		}
		if err := tx.Create(assignment).Error; err != nil {
			return classify(err)
		}
		return setBedStatus(tx, bed.ID, models.BedOccupied)
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, assignment.ID)
}

// Update writes the given columns of an assignment. Changing bed_id moves an
// active patient: the old bed is freed and the new one, which must be
// available, becomes occupied. Status is changed only through Discharge.
func (r *BedAssignmentRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.BedAssignment, error) {
	current, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	cols = maps.Clone(cols)
	delete(cols, "status")
	delete(cols, "actual_discharge_date")
	if admitted, ok := cols["admission_date"].(*time.Time); ok && admitted == nil {
		delete(cols, "admission_date")
	}
	if patient, ok := cols["patient_id"].(string); ok && !validID(patient) {
		return nil, fmt.Errorf("%w: patient %q", ErrInvalidReference, patient)
	}

	newBed, _ := cols["bed_id"].(string)
	if newBed == current.BedID {
		newBed = ""
		delete(cols, "bed_id")
	}
	beds := []string{current.BedID}
	if newBed != "" {
		if !validID(newBed) {
			return nil, fmt.Errorf("%w: bed %q", ErrInvalidReference, newBed)
		}
		beds = append(beds, newBed)
	}

	err = r.withBeds(ctx, beds, func(tx *gorm.DB) error {
		locked, err := r.lockAssignment(tx, id, current.BedID)
		if err != nil {
			return err
		}
		if patient, ok := cols["patient_id"].(string); ok && patient != locked.PatientID && locked.Status == models.AssignmentActive {
			if err := ensureNotAdmitted(tx, patient, id); err != nil {
				return err
			}
		}
		if newBed != "" {
			if locked.Status != models.AssignmentActive {
				return fmt.Errorf("%w: discharged assignments cannot change bed", ErrInvalidTransition)
			}
			if err := transfer(tx, locked.BedID, newBed); err != nil {
				return err
			}
		}
		if len(cols) == 0 {
			return nil
		}
		return classify(tx.Model(&models.BedAssignment{}).Where("id = ?", id).Updates(map[string]interface{}(cols)).Error)
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

// Transfer moves an active assignment to another bed.
func (r *BedAssignmentRepository) Transfer(ctx context.Context, id, bedID string) (*models.BedAssignment, error) {
	return r.Update(ctx, id, models.Columns{"bed_id": bedID})
}

// Discharge closes an active assignment at the given time and frees its bed.
func (r *BedAssignmentRepository) Discharge(ctx context.Context, id string, at time.Time) (*models.BedAssignment, error) {
	current, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.withBeds(ctx, []string{current.BedID}, func(tx *gorm.DB) error {
		locked, err := r.lockAssignment(tx, id, current.BedID)
		if err != nil {
			return err
		}
		if locked.Status != models.AssignmentActive {
			return fmt.Errorf("%w: assignment already discharged", ErrInvalidTransition)
		}
		err = tx.Model(&models.BedAssignment{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":                models.AssignmentDischarged,
			"actual_discharge_date": at,
		}).Error
		if err != nil {
			return classify(err)
		}
		return setBedStatus(tx, locked.BedID, models.BedAvailable)
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

// Delete removes an assignment, freeing its bed when it was still active.
func (r *BedAssignmentRepository) Delete(ctx context.Context, id string) error {
	current, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	return r.withBeds(ctx, []string{current.BedID}, func(tx *gorm.DB) error {
		locked, err := r.lockAssignment(tx, id, current.BedID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.BedAssignment{}, "id = ?", id).Error; err != nil {
			return classifyDelete(err)
		}
		if locked.Status == models.AssignmentActive {
			return setBedStatus(tx, locked.BedID, models.BedAvailable)
		}
		return nil
	})
}

// withBeds runs fn in a transaction after taking the distributed lock of
// every bed, in id order so concurrent transfers cannot deadlock. Row locks
// taken inside fn are held, in the same order, until commit.
func (r *BedAssignmentRepository) withBeds(ctx context.Context, bedIDs []string, fn func(tx *gorm.DB) error) error {
	ids := append([]string(nil), bedIDs...)
	sort.Strings(ids)

	run := func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, id := range ids {
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&models.Bed{}, "id = ?", id).Error; err != nil {
					if classify(err) == ErrNotFound {
						return fmt.Errorf("%w: bed %s", ErrInvalidReference, id)
					}
					return classify(err)
				}
			}
			return fn(tx)
		})
	}
	if r.locker == nil {
		return run(ctx)
	}
	for i := len(ids) - 1; i >= 0; i-- {
		key, next := "bed_lock:"+ids[i], run
		run = func(ctx context.Context) error {
			return r.locker.WithLock(ctx, key, next)
		}
	}
	return run(ctx)
}

// lockAssignment re-reads the assignment under a row lock. The bed it was
// locked for must still be its bed.
func (r *BedAssignmentRepository) lockAssignment(tx *gorm.DB, id, bedID string) (*models.BedAssignment, error) {
	var assignment models.BedAssignment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&assignment, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	if assignment.BedID != bedID {
		return nil, fmt.Errorf("%w: assignment changed bed concurrently", ErrConflict)
	}
	return &assignment, nil
}

func transfer(tx *gorm.DB, fromBed, toBed string) error {
	target, err := lockBed(tx, toBed)
	if err != nil {
		return err
	}
	if target.Status != models.BedAvailable {
		return fmt.Errorf("%w: bed %s is %s", ErrBedUnavailable, target.BedNumber, target.Status)
	}
	if err := setBedStatus(tx, fromBed, models.BedAvailable); err != nil {
		return err
	}
	return setBedStatus(tx, toBed, models.BedOccupied)
}

// ensureNotAdmitted fails when the patient holds an active assignment other
// than except.
func ensureNotAdmitted(tx *gorm.DB, patientID, except string) error {
	q := tx.Model(&models.BedAssignment{}).Where("patient_id = ? AND status = ?", patientID, models.AssignmentActive)
	if except != "" {
		q = q.Where("id <> ?", except)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return classify(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: patient already occupies a bed", ErrConflict)
	}
	return nil
}
