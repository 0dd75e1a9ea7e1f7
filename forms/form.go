package forms

import (
	"HospitalAdmin/models"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Input is a draft the form can turn into columns for a write.
type Input interface {
	Columns() models.Columns
}

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e[name]
	}
	return strings.Join(parts, "; ")
}

// Schema validates a draft, returning validation.Errors on failure.
type Schema[I Input] func(in I) error

// Form holds the draft values of one entity instance.
type Form[I Input] struct {
	schema   Schema[I]
	draft    I
	original *I
	id       string
}

func New[I Input](schema Schema[I]) *Form[I] {
	return &Form[I]{schema: schema}
}

// Reset clears the draft back to empty defaults and forgets the edit target.
func (f *Form[I]) Reset() {
	var zero I
	f.draft = zero
	f.original = nil
	f.id = ""
}

// Load starts editing the entity id from its current values.
func (f *Form[I]) Load(id string, current I) {
	f.draft = current
	f.original = &current
	f.id = id
}

// ID is the entity being edited, empty when adding.
func (f *Form[I]) ID() string {
	return f.id
}

func (f *Form[I]) Editing() bool {
	return f.original != nil
}

func (f *Form[I]) Draft() I {
	return f.draft
}

// ErrMalformedBody is returned by Apply for input that is not a JSON object.
var ErrMalformedBody = errors.New("request body is not valid JSON")

// Apply merges the fields present in data into the draft. Fields absent
// from data keep their values.
func (f *Form[I]) Apply(data []byte) error {
	next := f.draft
	if err := json.Unmarshal(data, &next); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return FieldErrors{typeErr.Field: "Invalid value"}
		}
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	f.draft = next
	return nil
}

// Validate checks the draft against the schema.
func (f *Form[I]) Validate() FieldErrors {
	return toFieldErrors(f.schema(f.draft))
}

// Submit hands back the validated draft, or the field errors blocking it.
func (f *Form[I]) Submit() (I, FieldErrors) {
	if errs := f.Validate(); errs != nil {
		var zero I
		return zero, errs
	}
	return f.draft, nil
}

// Changes returns the columns an update must write: those differing from
// the loaded entity, or every column when adding.
func (f *Form[I]) Changes() models.Columns {
	cols := f.draft.Columns()
	if f.original == nil {
		return cols
	}
	before := (*f.original).Columns()
	for name, v := range cols {
		if reflect.DeepEqual(v, before[name]) {
			delete(cols, name)
		}
	}
	return cols
}

func toFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		out := FieldErrors{}
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return FieldErrors{"form": err.Error()}
}
