package repositories_test

import (
	"HospitalAdmin/database"
	"HospitalAdmin/models"
	"HospitalAdmin/repositories"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../.env")
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	migrateOnce.Do(func() { migrateErr = database.RunMigrations(db) })
	require.NoError(t, migrateErr)
	return db
}

func unique(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

func newWard(t *testing.T, repo *repositories.WardRepository) *models.Ward {
	t.Helper()
	ward := &models.Ward{Name: unique("Ward"), Capacity: 4}
	require.NoError(t, repo.Create(context.Background(), ward))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), ward.ID) })
	return ward
}

func newPatient(t *testing.T, repo *repositories.PatientRepository) *models.Patient {
	t.Helper()
	patient := models.PatientInput{FirstName: unique("Ada"), LastName: "Lovelace"}.Model()
	require.NoError(t, repo.Create(context.Background(), patient))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), patient.ID) })
	return patient
}

func newBed(t *testing.T, repo *repositories.BedRepository, wardID string) *models.Bed {
	t.Helper()
	bed, err := repo.Create(context.Background(), &models.Bed{WardID: wardID, BedNumber: unique("B"), Status: models.BedAvailable})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), bed.ID) })
	return bed
}

func TestWardRoundTrip(t *testing.T) {
	db := setup(t)
	repo := repositories.NewWardRepository(db)
	ctx := context.Background()
	name := unique("Cardiology Ward")

	ward := models.WardInput{Name: name, Capacity: 10}.Model()
	require.NoError(t, repo.Create(ctx, ward))
	t.Cleanup(func() { _ = repo.Delete(ctx, ward.ID) })
	assert.NotEmpty(t, ward.ID)

	wards, err := repo.List(ctx, models.WardFilter{Search: name})
	require.NoError(t, err)
	require.Len(t, wards, 1)
	assert.Equal(t, ward.ID, wards[0].ID)
	assert.Equal(t, name, wards[0].Name)
	assert.Equal(t, 10, wards[0].Capacity)
}

func TestDeleteTwiceFailsDistinctly(t *testing.T) {
	db := setup(t)
	repo := repositories.NewLabTestRepository(db)
	ctx := context.Background()

	test := models.LabTestInput{Name: unique("CBC"), Price: models.NewOptionalNumber(12)}.Model()
	require.NoError(t, repo.Create(ctx, test))

	require.NoError(t, repo.Delete(ctx, test.ID))
	assert.ErrorIs(t, repo.Delete(ctx, test.ID), repositories.ErrNotFound)
}

func TestGetMissingAndMalformedIDs(t *testing.T) {
	db := setup(t)
	repo := repositories.NewPatientRepository(db)

	_, err := repo.Get(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPatientSearchIsCaseInsensitive(t *testing.T) {
	db := setup(t)
	repo := repositories.NewPatientRepository(db)
	patient := newPatient(t, repo)

	found, err := repo.List(context.Background(), models.PatientFilter{Search: strings.ToUpper(patient.FirstName[4:])})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, patient.ID, found[0].ID)

	none, err := repo.List(context.Background(), models.PatientFilter{Search: uuid.New().String()})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestLastWriteWins(t *testing.T) {
	db := setup(t)
	repo := repositories.NewPatientRepository(db)
	patient := newPatient(t, repo)
	ctx := context.Background()

	_, err := repo.Update(ctx, patient.ID, models.Columns{"last_name": "FromA"})
	require.NoError(t, err)
	updated, err := repo.Update(ctx, patient.ID, models.Columns{"last_name": "FromB"})
	require.NoError(t, err)
	assert.Equal(t, "FromB", updated.LastName)

	stored, err := repo.Get(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "FromB", stored.LastName)
	assert.Equal(t, patient.FirstName, stored.FirstName)
}

func TestWardWithOccupiedBedCannotBeDeleted(t *testing.T) {
	db := setup(t)
	wards := repositories.NewWardRepository(db)
	beds := repositories.NewBedRepository(db)
	patients := repositories.NewPatientRepository(db)
	assignments := repositories.NewBedAssignmentRepository(db, nil)
	ctx := context.Background()

	ward := newWard(t, wards)
	bed := newBed(t, beds, ward.ID)
	patient := newPatient(t, patients)

	admitted, err := assignments.Admit(ctx, &models.BedAssignment{BedID: bed.ID, PatientID: patient.ID, AdmissionDate: time.Now()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = assignments.Delete(ctx, admitted.ID) })

	err = wards.Delete(ctx, ward.ID)
	assert.ErrorIs(t, err, repositories.ErrHasDependents)

	listed, err := wards.List(ctx, models.WardFilter{Search: ward.Name})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.EqualValues(t, 1, listed[0].BedCount)
	assert.EqualValues(t, 1, listed[0].OccupiedCount)

	assert.ErrorIs(t, beds.Delete(ctx, bed.ID), repositories.ErrHasDependents)
}

func TestAdmitTransferDischarge(t *testing.T) {
	db := setup(t)
	wards := repositories.NewWardRepository(db)
	beds := repositories.NewBedRepository(db)
	patients := repositories.NewPatientRepository(db)
	assignments := repositories.NewBedAssignmentRepository(db, nil)
	ctx := context.Background()

	ward := newWard(t, wards)
	first := newBed(t, beds, ward.ID)
	second := newBed(t, beds, ward.ID)
	patient := newPatient(t, patients)

	admitted, err := assignments.Admit(ctx, &models.BedAssignment{BedID: first.ID, PatientID: patient.ID, AdmissionDate: time.Now()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = assignments.Delete(ctx, admitted.ID) })
	assert.Equal(t, models.AssignmentActive, admitted.Status)
	assertBedStatus(t, beds, first.ID, models.BedOccupied)

	// the same bed cannot be admitted twice
	other := newPatient(t, patients)
	_, err = assignments.Admit(ctx, &models.BedAssignment{BedID: first.ID, PatientID: other.ID, AdmissionDate: time.Now()})
	assert.ErrorIs(t, err, repositories.ErrBedUnavailable)

	// occupancy follows assignments only
	_, err = beds.Update(ctx, first.ID, models.Columns{"status": models.BedAvailable})
	assert.ErrorIs(t, err, repositories.ErrInvalidTransition)

	moved, err := assignments.Transfer(ctx, admitted.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, moved.BedID)
	assertBedStatus(t, beds, first.ID, models.BedAvailable)
	assertBedStatus(t, beds, second.ID, models.BedOccupied)

	discharged, err := assignments.Discharge(ctx, admitted.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentDischarged, discharged.Status)
	assert.NotNil(t, discharged.ActualDischargeDate)
	assertBedStatus(t, beds, second.ID, models.BedAvailable)

	_, err = assignments.Discharge(ctx, admitted.ID, time.Now())
	assert.ErrorIs(t, err, repositories.ErrInvalidTransition)
}

func TestAdmitRollsBackOnFailure(t *testing.T) {
	db := setup(t)
	wards := repositories.NewWardRepository(db)
	beds := repositories.NewBedRepository(db)
	assignments := repositories.NewBedAssignmentRepository(db, nil)
	ctx := context.Background()

	ward := newWard(t, wards)
	bed := newBed(t, beds, ward.ID)

	// the patient does not exist, so inserting the assignment fails after
	// the bed was locked
	_, err := assignments.Admit(ctx, &models.BedAssignment{BedID: bed.ID, PatientID: uuid.New().String(), AdmissionDate: time.Now()})
	assert.ErrorIs(t, err, repositories.ErrInvalidReference)
	assertBedStatus(t, beds, bed.ID, models.BedAvailable)
}

func TestDeleteActiveAssignmentFreesBed(t *testing.T) {
	db := setup(t)
	wards := repositories.NewWardRepository(db)
	beds := repositories.NewBedRepository(db)
	patients := repositories.NewPatientRepository(db)
	assignments := repositories.NewBedAssignmentRepository(db, nil)
	ctx := context.Background()

	ward := newWard(t, wards)
	bed := newBed(t, beds, ward.ID)
	patient := newPatient(t, patients)

	admitted, err := assignments.Admit(ctx, &models.BedAssignment{BedID: bed.ID, PatientID: patient.ID, AdmissionDate: time.Now()})
	require.NoError(t, err)

	require.NoError(t, assignments.Delete(ctx, admitted.ID))
	assertBedStatus(t, beds, bed.ID, models.BedAvailable)
	assert.ErrorIs(t, assignments.Delete(ctx, admitted.ID), repositories.ErrNotFound)
}

func assertBedStatus(t *testing.T, repo *repositories.BedRepository, id, want string) {
	t.Helper()
	bed, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, want, bed.Status)
}
