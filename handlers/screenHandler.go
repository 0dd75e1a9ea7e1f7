package handlers

import (
	"HospitalAdmin/forms"
	"HospitalAdmin/middlewares"
	"HospitalAdmin/notify"
	"HospitalAdmin/querystate"
	"HospitalAdmin/services"
	"HospitalAdmin/session"
	"HospitalAdmin/workflow"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Filter is the query of a listing.
type Filter interface {
	Values() map[string]string
}

// ScreenConfig describes one entity-management screen.
type ScreenConfig[T any, I forms.Input, F Filter] struct {
	// Entity names the listing in the query cache.
	Entity string
	// Noun is used in fallback error messages, such as "ward".
	Noun   string
	List   func(ctx context.Context, filter F) ([]T, error)
	Get    func(ctx context.Context, id string) (*T, error)
	Input  func(row T) I
	Dialog workflow.Config[T, I]
}

// ScreenHandler serves the listing, detail, REST mutations and interactive
// dialog of one screen. Every mutation runs through a workflow dialog.
type ScreenHandler[T any, I forms.Input, F Filter] struct {
	cfg     ScreenConfig[T, I, F]
	query   *querystate.Client
	dialogs *workflow.Registry[T, I]
}

// NewScreenHandler wires cfg to the query cache. Dialogs refetch the
// screen's own listing unless cfg names others.
func NewScreenHandler[T any, I forms.Input, F Filter](cfg ScreenConfig[T, I, F], query *querystate.Client, dialogIdle time.Duration) *ScreenHandler[T, I, F] {
	if len(cfg.Dialog.Refetch) == 0 {
		cfg.Dialog.Refetch = []string{cfg.Entity}
	}
	if cfg.Dialog.Cache == nil && query != nil {
		cfg.Dialog.Cache = query
	}
	return &ScreenHandler[T, I, F]{
		cfg:     cfg,
		query:   query,
		dialogs: workflow.NewRegistry(cfg.Dialog, dialogIdle),
	}
}

func (h *ScreenHandler[T, I, F]) Entity() string {
	return h.cfg.Entity
}

// List renders the filtered listing. A failed fetch still answers 200 with
// an empty list, and the user has been notified once.
func (h *ScreenHandler[T, I, F]) List(c *gin.Context) {
	var filter F
	if err := c.ShouldBindQuery(&filter); err != nil {
		middlewares.HttpError(c, "Invalid filter", err)
		return
	}
	key := querystate.NewKey(h.cfg.Entity, filter.Values())
	result := fetchListing(c, h.query, h.cfg.Dialog.Notifier, key, func(ctx context.Context) ([]T, error) {
		return h.cfg.List(ctx, filter)
	})
	if result.Data == nil {
		result.Data = []T{}
	}
	if result.Error != nil {
		_ = c.Error(result.Error)
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}

// fetchListing serves key through the query cache, refetching it when the
// client sends refresh=true. The facade notifies the caller that ran the
// fetch; callers who shared its failure are notified here.
func fetchListing[T any](c *gin.Context, query *querystate.Client, n notify.Notifier, key querystate.Key, fn querystate.Fetcher[T]) querystate.Result[T] {
	ctx := c.Request.Context()
	var result querystate.Result[T]
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		result = querystate.Refetch(ctx, query, key, fn)
	} else {
		result = querystate.Fetch(ctx, query, key, fn)
	}
	if result.Error != nil && result.Shared && n != nil {
		if message, ok := services.ReadFailure(result.Error); ok {
			n.Notify(ctx, notify.Failure(message))
		}
	}
	return result
}

func (h *ScreenHandler[T, I, F]) Get(c *gin.Context) {
	row, err := h.cfg.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch "+h.cfg.Noun+" details", err)
		return
	}
	middlewares.RespondJSON(c, row, http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) Create(c *gin.Context) {
	d := h.dialogs.New()
	if err := d.OpenAdd(); err != nil {
		middlewares.HttpError(c, h.cfg.Dialog.Messages.CreateFailed, err)
		return
	}
	if !h.applyBody(c, d, h.cfg.Dialog.Messages.CreateFailed) {
		return
	}
	row, err := d.Submit(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, h.cfg.Dialog.Messages.CreateFailed, err)
		return
	}
	middlewares.RespondJSON(c, row, http.StatusCreated)
}

// Update writes only the fields that differ from the stored entity.
func (h *ScreenHandler[T, I, F]) Update(c *gin.Context) {
	id := c.Param("id")
	d := h.dialogs.New()
	if !h.openEdit(c, d, id) {
		return
	}
	if !h.applyBody(c, d, h.cfg.Dialog.Messages.UpdateFailed) {
		return
	}
	row, err := d.Submit(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, h.cfg.Dialog.Messages.UpdateFailed, err)
		return
	}
	middlewares.RespondJSON(c, row, http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) Delete(c *gin.Context) {
	d := h.dialogs.New()
	if err := d.OpenDelete(c.Param("id")); err != nil {
		middlewares.HttpError(c, h.cfg.Dialog.Messages.DeleteFailed, err)
		return
	}
	if err := d.Confirm(c.Request.Context()); err != nil {
		middlewares.HttpError(c, h.cfg.Dialog.Messages.DeleteFailed, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScreenHandler[T, I, F]) openEdit(c *gin.Context, d *workflow.Dialog[T, I], id string) bool {
	current, err := h.cfg.Get(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch "+h.cfg.Noun+" details", err)
		return false
	}
	if err := d.OpenEdit(id, h.cfg.Input(*current)); err != nil {
		middlewares.HttpError(c, h.cfg.Dialog.Messages.UpdateFailed, err)
		return false
	}
	return true
}

func (h *ScreenHandler[T, I, F]) applyBody(c *gin.Context, d *workflow.Dialog[T, I], fallback string) bool {
	body, err := c.GetRawData()
	if err != nil {
		middlewares.HttpError(c, fallback, err)
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := d.Apply(body); err != nil {
		middlewares.HttpError(c, fallback, err)
		return false
	}
	return true
}

// The dialog endpoints keep one dialog per session, so a client can open
// it, edit the draft over several requests and submit.

func (h *ScreenHandler[T, I, F]) dialog(c *gin.Context) *workflow.Dialog[T, I] {
	return h.dialogs.For(session.Recipient(c.Request.Context()))
}

func (h *ScreenHandler[T, I, F]) DialogView(c *gin.Context) {
	middlewares.RespondJSON(c, h.dialog(c).View(), http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) DialogOpenAdd(c *gin.Context) {
	d := h.dialog(c)
	if err := d.OpenAdd(); err != nil {
		middlewares.HttpError(c, "Failed to open dialog", err)
		return
	}
	middlewares.RespondJSON(c, d.View(), http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) DialogOpenEdit(c *gin.Context) {
	d := h.dialog(c)
	if !h.openEdit(c, d, c.Param("id")) {
		return
	}
	middlewares.RespondJSON(c, d.View(), http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) DialogOpenDelete(c *gin.Context) {
	d := h.dialog(c)
	if err := d.OpenDelete(c.Param("id")); err != nil {
		middlewares.HttpError(c, "Failed to open dialog", err)
		return
	}
	middlewares.RespondJSON(c, d.View(), http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) DialogDraft(c *gin.Context) {
	d := h.dialog(c)
	if !h.applyBody(c, d, "Failed to update draft") {
		return
	}
	middlewares.RespondJSON(c, d.View(), http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) DialogSubmit(c *gin.Context) {
	d := h.dialog(c)
	adding := d.State() == workflow.AddOpen
	row, err := d.Submit(c.Request.Context())
	if err != nil {
		fallback := h.cfg.Dialog.Messages.UpdateFailed
		if adding {
			fallback = h.cfg.Dialog.Messages.CreateFailed
		}
		middlewares.HttpError(c, fallback, err)
		return
	}
	status := http.StatusOK
	if adding {
		status = http.StatusCreated
	}
	middlewares.RespondJSON(c, gin.H{"data": row, "dialog": d.View()}, status)
}

func (h *ScreenHandler[T, I, F]) DialogConfirm(c *gin.Context) {
	d := h.dialog(c)
	if err := d.Confirm(c.Request.Context()); err != nil {
		middlewares.HttpError(c, h.cfg.Dialog.Messages.DeleteFailed, err)
		return
	}
	middlewares.RespondJSON(c, d.View(), http.StatusOK)
}

func (h *ScreenHandler[T, I, F]) DialogCancel(c *gin.Context) {
	d := h.dialog(c)
	if err := d.Cancel(); err != nil {
		middlewares.HttpError(c, "Failed to close dialog", err)
		return
	}
	middlewares.RespondJSON(c, d.View(), http.StatusOK)
}
