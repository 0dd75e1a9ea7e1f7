package controllers

import (
	"HospitalAdmin/forms"
	"HospitalAdmin/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterScreen mounts the REST routes of a screen under /<entity> and its
// interactive dialog under /dialogs/<entity>.
func RegisterScreen[T any, I forms.Input, F handlers.Filter](router gin.IRouter, h *handlers.ScreenHandler[T, I, F]) {
	entity := "/" + h.Entity()

	rest := router.Group(entity)
	rest.GET("", h.List)
	rest.GET("/:id", h.Get)
	rest.POST("", h.Create)
	rest.PUT("/:id", h.Update)
	rest.DELETE("/:id", h.Delete)

	dialog := router.Group("/dialogs" + entity)
	dialog.GET("", h.DialogView)
	dialog.POST("/add", h.DialogOpenAdd)
	dialog.POST("/edit/:id", h.DialogOpenEdit)
	dialog.POST("/delete/:id", h.DialogOpenDelete)
	dialog.PATCH("/draft", h.DialogDraft)
	dialog.POST("/submit", h.DialogSubmit)
	dialog.POST("/confirm", h.DialogConfirm)
	dialog.POST("/cancel", h.DialogCancel)
}

// SetupScreenRoutes registers every entity screen.
func SetupScreenRoutes(router gin.IRouter, screens *handlers.Screens, assignments *handlers.BedAssignmentHandler) {
	RegisterScreen(router, screens.Patients)
	RegisterScreen(router, screens.Appointments)
	RegisterScreen(router, screens.Staff)
	RegisterScreen(router, screens.Wards)
	RegisterScreen(router, screens.Beds)
	RegisterScreen(router, screens.BedAssignments)
	RegisterScreen(router, screens.LabTests)
	RegisterScreen(router, screens.Medications)

	router.POST("/bed-assignments/:id/discharge", assignments.Discharge)
	router.POST("/bed-assignments/:id/transfer", assignments.Transfer)
}
