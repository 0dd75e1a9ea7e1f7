package handlers

import (
	"HospitalAdmin/middlewares"
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/querystate"
	"HospitalAdmin/services"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardEntity names the dashboard figures in the query cache.
const DashboardEntity = "dashboard"

type DashboardHandler struct {
	service  *services.DashboardService
	query    *querystate.Client
	notifier notify.Notifier
}

func NewDashboardHandler(service *services.DashboardService, query *querystate.Client, notifier notify.Notifier) *DashboardHandler {
	return &DashboardHandler{service: service, query: query, notifier: notifier}
}

// Metrics renders the dashboard figures. Failures render no figures.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	result := fetchListing(c, h.query, h.notifier, querystate.NewKey(DashboardEntity, nil),
		func(ctx context.Context) ([]models.Metric, error) {
			return h.service.Metrics(ctx)
		})
	if result.Data == nil {
		result.Data = []models.Metric{}
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}
