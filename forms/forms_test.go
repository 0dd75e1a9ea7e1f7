package forms

import (
	"HospitalAdmin/models"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentRequiresPatient(t *testing.T) {
	f := New(ValidateAppointment)
	require.NoError(t, f.Apply([]byte(`{"appointment_date":"2026-03-02T09:30","status":"scheduled"}`)))

	_, errs := f.Submit()
	require.NotNil(t, errs)
	assert.Equal(t, "Patient is required", errs["patient_id"])
	assert.Len(t, errs, 1)
}

func TestEnumerationsRejectUnknownValues(t *testing.T) {
	cases := []struct {
		name  string
		errs  FieldErrors
		field string
	}{
		{"appointment status", toFieldErrors(ValidateAppointment(models.AppointmentInput{
			PatientID: uuid.New().String(), AppointmentDate: "2026-03-02T09:30", Status: "postponed",
		})), "status"},
		{"bed status", toFieldErrors(ValidateBed(models.BedInput{
			BedNumber: "A1", WardID: uuid.New().String(), Status: "broken",
		})), "status"},
		{"staff status", toFieldErrors(ValidateStaff(models.StaffInput{
			Name: "Meredith", Department: "Surgery", Designation: "Doctor", Email: "m@example.test",
			JoiningDate: "2020-01-01", Status: "Retired",
		})), "status"},
		{"gender", toFieldErrors(ValidatePatient(models.PatientInput{
			FirstName: "Ada", LastName: "Lovelace", Gender: "Unknown",
		})), "gender"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotNil(t, tc.errs)
			assert.Contains(t, tc.errs[tc.field], "must be one of")
		})
	}

	assert.Nil(t, toFieldErrors(ValidateBed(models.BedInput{
		BedNumber: "A1", WardID: uuid.New().String(), Status: models.BedMaintenance,
	})))
}

func TestWardNumericCoercion(t *testing.T) {
	f := New(ValidateWard)
	require.NoError(t, f.Apply([]byte(`{"name":"Cardiology Ward","capacity":"abc"}`)))
	assert.Equal(t, models.Number(0), f.Draft().Capacity)

	_, errs := f.Submit()
	assert.Equal(t, "Capacity must be at least 1", errs["capacity"])

	require.NoError(t, f.Apply([]byte(`{"capacity":-4}`)))
	_, errs = f.Submit()
	assert.Equal(t, "Capacity must be at least 1", errs["capacity"])

	require.NoError(t, f.Apply([]byte(`{"capacity":"10"}`)))
	in, errs := f.Submit()
	require.Nil(t, errs)
	assert.Equal(t, "Cardiology Ward", in.Name)
	assert.Equal(t, 10, in.Capacity.Int())
}

func TestWardNameRequired(t *testing.T) {
	f := New(ValidateWard)
	require.NoError(t, f.Apply([]byte(`{"capacity":3}`)))
	_, errs := f.Submit()
	assert.Equal(t, "Ward name is required", errs["name"])
}

func TestPriceMustNotBeNegative(t *testing.T) {
	f := New(ValidateMedication)
	require.NoError(t, f.Apply([]byte(`{"name":"Paracetamol","price":-1}`)))
	_, errs := f.Submit()
	assert.Equal(t, "Price cannot be negative", errs["price"])

	require.NoError(t, f.Apply([]byte(`{"price":"not a number"}`)))
	in, errs := f.Submit()
	require.Nil(t, errs)
	assert.False(t, in.Price.Set)
}

func TestPriceIsOptional(t *testing.T) {
	f := New(ValidateLabTest)
	require.NoError(t, f.Apply([]byte(`{"name":"CBC"}`)))
	in, errs := f.Submit()
	require.Nil(t, errs)
	assert.Nil(t, in.Columns()["price"])
	assert.Nil(t, in.Model().Price)

	require.NoError(t, f.Apply([]byte(`{"price":""}`)))
	in, _ = f.Submit()
	assert.Nil(t, in.Model().Price)

	require.NoError(t, f.Apply([]byte(`{"price":"12.5"}`)))
	in, errs = f.Submit()
	require.Nil(t, errs)
	require.NotNil(t, in.Model().Price)
	assert.Equal(t, 12.5, *in.Model().Price)

	require.NoError(t, f.Apply([]byte(`{"price":null}`)))
	in, _ = f.Submit()
	assert.Nil(t, in.Columns()["price"])
}

func TestNonFiniteNumbersBecomeZero(t *testing.T) {
	for _, raw := range []string{`"Infinity"`, `"-inf"`, `"NaN"`, `1e20`, `"1e300"`} {
		t.Run(raw, func(t *testing.T) {
			f := New(ValidateLabTest)
			require.NoError(t, f.Apply([]byte(`{"name":"CBC","price":`+raw+`}`)))
			in, errs := f.Submit()
			require.Nil(t, errs)
			assert.Nil(t, in.Model().Price)

			stored := in.Model()
			_, err := json.Marshal(stored)
			assert.NoError(t, err)
		})
	}
}

func TestOversizedCapacityIsRejected(t *testing.T) {
	f := New(ValidateWard)
	require.NoError(t, f.Apply([]byte(`{"name":"Cardiology Ward","capacity":1e20}`)))
	assert.Equal(t, models.Number(0), f.Draft().Capacity)

	_, errs := f.Submit()
	assert.Equal(t, "Capacity must be at least 1", errs["capacity"])
	assert.Equal(t, 0, f.Draft().Columns()["capacity"])
	assert.Equal(t, 0, models.Number(1e20).Int())
}

func TestLoadAndReset(t *testing.T) {
	f := New(ValidatePatient)
	current := models.PatientInput{FirstName: "Ada", LastName: "Lovelace", Gender: models.GenderFemale}
	f.Load("p-1", current)

	assert.True(t, f.Editing())
	assert.Equal(t, "p-1", f.ID())
	assert.Equal(t, current, f.Draft())

	f.Reset()
	assert.False(t, f.Editing())
	assert.Empty(t, f.ID())
	assert.Equal(t, models.PatientInput{}, f.Draft())
}

func TestApplyMergesProvidedFields(t *testing.T) {
	f := New(ValidatePatient)
	f.Load("p-1", models.PatientInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.test"})

	require.NoError(t, f.Apply([]byte(`{"last_name":"Byron"}`)))
	assert.Equal(t, "Ada", f.Draft().FirstName)
	assert.Equal(t, "Byron", f.Draft().LastName)
	assert.Equal(t, "ada@example.test", f.Draft().Email)
}

func TestApplyRejectsWrongTypes(t *testing.T) {
	f := New(ValidatePatient)
	f.Load("p-1", models.PatientInput{FirstName: "Ada"})

	err := f.Apply([]byte(`{"first_name":42}`))
	var errs FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Invalid value", errs["first_name"])
	assert.Equal(t, "Ada", f.Draft().FirstName)

	assert.ErrorIs(t, f.Apply([]byte(`{not json`)), ErrMalformedBody)
	assert.ErrorIs(t, f.Apply([]byte(`{"first_name":"Grace",`)), ErrMalformedBody)
	assert.ErrorIs(t, f.Apply([]byte(`[1,2]`)), ErrMalformedBody)
	assert.Equal(t, "Ada", f.Draft().FirstName)
}

func TestChangesOnlyDirtyColumns(t *testing.T) {
	f := New(ValidatePatient)
	assert.Len(t, f.Changes(), 8, "adding writes every column")

	f.Load("p-1", models.PatientInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.test"})
	assert.Empty(t, f.Changes())

	require.NoError(t, f.Apply([]byte(`{"last_name":"Byron","email":""}`)))
	changes := f.Changes()
	assert.Len(t, changes, 2)
	assert.Equal(t, "Byron", changes["last_name"])
	assert.Nil(t, changes["email"])
	assert.Contains(t, changes.Names(), "email")
}

func TestFieldErrorsMessage(t *testing.T) {
	errs := FieldErrors{"name": "Ward name is required", "capacity": "Capacity must be at least 1"}
	assert.Equal(t, "capacity: Capacity must be at least 1; name: Ward name is required", errs.Error())
}
