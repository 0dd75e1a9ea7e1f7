package handlers

import (
	"HospitalAdmin/forms"
	"HospitalAdmin/middlewares"
	"HospitalAdmin/models"
	"HospitalAdmin/services"
	"HospitalAdmin/workflow"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BedAssignmentHandler serves the assignment actions that have no form.
type BedAssignmentHandler struct {
	service *services.BedAssignmentService
	effects workflow.Effects
}

func NewBedAssignmentHandler(service *services.BedAssignmentService, effects workflow.Effects) *BedAssignmentHandler {
	return &BedAssignmentHandler{service: service, effects: effects}
}

// Discharge closes the assignment and frees its bed.
func (h *BedAssignmentHandler) Discharge(c *gin.Context) {
	id := c.Param("id")
	row, err := workflow.Perform(c.Request.Context(), h.effects,
		"Patient discharged successfully", "Failed to discharge patient",
		func(ctx context.Context) (*models.BedAssignment, error) {
			return h.service.Discharge(ctx, id)
		})
	if err != nil {
		middlewares.HttpError(c, "Failed to discharge patient", err)
		return
	}
	middlewares.RespondJSON(c, row, http.StatusOK)
}

type transferRequest struct {
	BedID string `json:"bed_id" binding:"required"`
}

// Transfer moves the patient to another available bed.
func (h *BedAssignmentHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			middlewares.HttpError(c, "Failed to transfer patient", fmt.Errorf("%w: %v", forms.ErrMalformedBody, err))
			return
		}
		middlewares.AbortWithError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"Please correct the highlighted fields", gin.H{"bed_id": "Bed is required"})
		return
	}
	id := c.Param("id")
	row, err := workflow.Perform(c.Request.Context(), h.effects,
		"Patient transferred successfully", "Failed to transfer patient",
		func(ctx context.Context) (*models.BedAssignment, error) {
			return h.service.Transfer(ctx, id, req.BedID)
		})
	if err != nil {
		middlewares.HttpError(c, "Failed to transfer patient", err)
		return
	}
	middlewares.RespondJSON(c, row, http.StatusOK)
}
