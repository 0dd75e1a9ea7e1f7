package workflow

import (
	"HospitalAdmin/forms"
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"context"
	"errors"
	"sync"
)

type State string

const (
	Idle              State = "idle"
	AddOpen           State = "add-open"
	EditOpen          State = "edit-open"
	DeleteConfirmOpen State = "delete-confirm-open"
	Submitting        State = "submitting"
)

var (
	ErrDialogBusy = errors.New("another dialog is already open")
	ErrNotOpen    = errors.New("no dialog is open for this action")
	ErrSubmitting = errors.New("a submission is in progress")
)

// Actions are the facade calls a dialog drives.
type Actions[T any, I forms.Input] struct {
	Create func(ctx context.Context, in I) (*T, error)
	Update func(ctx context.Context, id string, cols models.Columns) (*T, error)
	Delete func(ctx context.Context, id string) error
}

// Messages are the notification texts of one screen.
type Messages struct {
	Created      string
	Updated      string
	Deleted      string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

// Invalidator drops cached listings of an entity. querystate.Client
// implements it.
type Invalidator interface {
	Invalidate(ctx context.Context, entity string) error
}

// Config describes one screen's dialog.
type Config[T any, I forms.Input] struct {
	Schema   forms.Schema[I]
	Actions  Actions[T, I]
	Messages Messages
	// Refetch names the listings refreshed after a successful mutation.
	Refetch  []string
	Cache    Invalidator
	Notifier notify.Notifier
	// Describe returns the message for business-rule failures. Other
	// failures use the operation's generic message.
	Describe func(err error) (string, bool)
}

// Controls reports which dialog buttons are enabled.
type Controls struct {
	ConfirmDisabled bool `json:"confirm_disabled"`
	CancelDisabled  bool `json:"cancel_disabled"`
}

// View is the state a client renders.
type View[I forms.Input] struct {
	State    State    `json:"state"`
	TargetID string   `json:"target_id,omitempty"`
	Draft    I        `json:"draft"`
	Controls Controls `json:"controls"`
}

// Dialog sequences open, submit, refetch and close for one screen. It is
// safe for concurrent use; the facade call runs without the lock held so
// the submitting state stays observable.
type Dialog[T any, I forms.Input] struct {
	cfg Config[T, I]

	mu     sync.Mutex
	state  State
	form   *forms.Form[I]
	target string
}

func NewDialog[T any, I forms.Input](cfg Config[T, I]) *Dialog[T, I] {
	return &Dialog[T, I]{cfg: cfg, state: Idle, form: forms.New(cfg.Schema)}
}

func (d *Dialog[T, I]) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dialog[T, I]) View() View[I] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return View[I]{State: d.state, TargetID: d.target, Draft: d.form.Draft(), Controls: d.controls()}
}

func (d *Dialog[T, I]) Controls() Controls {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.controls()
}

func (d *Dialog[T, I]) controls() Controls {
	busy := d.state == Submitting
	return Controls{ConfirmDisabled: busy, CancelDisabled: busy}
}

// OpenAdd opens the dialog with an empty form.
func (d *Dialog[T, I]) OpenAdd() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.idle(); err != nil {
		return err
	}
	d.form.Reset()
	d.target = ""
	d.state = AddOpen
	return nil
}

// OpenEdit opens the dialog on the entity id, initialised from current.
func (d *Dialog[T, I]) OpenEdit(id string, current I) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.idle(); err != nil {
		return err
	}
	d.form.Load(id, current)
	d.target = id
	d.state = EditOpen
	return nil
}

// OpenDelete asks for confirmation before deleting id.
func (d *Dialog[T, I]) OpenDelete(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.idle(); err != nil {
		return err
	}
	d.form.Reset()
	d.target = id
	d.state = DeleteConfirmOpen
	return nil
}

func (d *Dialog[T, I]) idle() error {
	switch d.state {
	case Idle:
		return nil
	case Submitting:
		return ErrSubmitting
	}
	return ErrDialogBusy
}

// Apply merges field values into the open form.
func (d *Dialog[T, I]) Apply(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.formOpen(); err != nil {
		return err
	}
	return d.form.Apply(data)
}

func (d *Dialog[T, I]) formOpen() error {
	switch d.state {
	case AddOpen, EditOpen:
		return nil
	case Submitting:
		return ErrSubmitting
	}
	return ErrNotOpen
}

// Submit validates the form and creates or updates the entity. Invalid
// drafts return forms.FieldErrors without calling the facade. A failed call
// leaves the dialog open with the draft intact.
func (d *Dialog[T, I]) Submit(ctx context.Context) (*T, error) {
	d.mu.Lock()
	if err := d.formOpen(); err != nil {
		d.mu.Unlock()
		return nil, err
	}
	in, errs := d.form.Submit()
	if errs != nil {
		d.mu.Unlock()
		return nil, errs
	}
	opened, id := d.state, d.target
	changes := d.form.Changes()
	d.state = Submitting
	d.mu.Unlock()

	var (
		result *T
		err    error
	)
	if opened == AddOpen {
		result, err = d.cfg.Actions.Create(ctx, in)
	} else {
		result, err = d.cfg.Actions.Update(ctx, id, changes)
	}

	if err != nil {
		d.reopen(opened)
		failed := d.cfg.Messages.UpdateFailed
		if opened == AddOpen {
			failed = d.cfg.Messages.CreateFailed
		}
		d.fail(ctx, err, failed)
		return nil, err
	}

	d.close()
	success := d.cfg.Messages.Updated
	if opened == AddOpen {
		success = d.cfg.Messages.Created
	}
	d.succeed(ctx, success)
	return result, nil
}

// Confirm deletes the entity awaiting confirmation.
func (d *Dialog[T, I]) Confirm(ctx context.Context) error {
	d.mu.Lock()
	switch d.state {
	case DeleteConfirmOpen:
	case Submitting:
		d.mu.Unlock()
		return ErrSubmitting
	default:
		d.mu.Unlock()
		return ErrNotOpen
	}
	id := d.target
	d.state = Submitting
	d.mu.Unlock()

	if err := d.cfg.Actions.Delete(ctx, id); err != nil {
		d.reopen(DeleteConfirmOpen)
		d.fail(ctx, err, d.cfg.Messages.DeleteFailed)
		return err
	}
	d.close()
	d.succeed(ctx, d.cfg.Messages.Deleted)
	return nil
}

// Cancel closes the dialog without side effects.
func (d *Dialog[T, I]) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Submitting {
		return ErrSubmitting
	}
	d.state = Idle
	d.target = ""
	d.form.Reset()
	return nil
}

func (d *Dialog[T, I]) reopen(state State) {
	d.mu.Lock()
	d.state = state
	d.mu.Unlock()
}

func (d *Dialog[T, I]) close() {
	d.mu.Lock()
	d.state = Idle
	d.target = ""
	d.form.Reset()
	d.mu.Unlock()
}

func (d *Dialog[T, I]) effects() Effects {
	return Effects{Refetch: d.cfg.Refetch, Cache: d.cfg.Cache, Notifier: d.cfg.Notifier, Describe: d.cfg.Describe}
}

func (d *Dialog[T, I]) succeed(ctx context.Context, message string) {
	d.effects().succeed(ctx, message)
}

func (d *Dialog[T, I]) fail(ctx context.Context, err error, generic string) {
	d.effects().fail(ctx, err, generic)
}
