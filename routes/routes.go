package routes

import (
	"HospitalAdmin/cache"
	"HospitalAdmin/config"
	"HospitalAdmin/controllers"
	"HospitalAdmin/database"
	"HospitalAdmin/handlers"
	"HospitalAdmin/middlewares"
	"HospitalAdmin/notify"
	"HospitalAdmin/querystate"
	"HospitalAdmin/repositories"
	"HospitalAdmin/services"
	"HospitalAdmin/session"
	"HospitalAdmin/workflow"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// dialogIdle is how long an unused interactive dialog is kept.
const dialogIdle = 30 * time.Minute

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cfg *config.AppConfig, db *gorm.DB, redisClient *redis.Client) (http.Handler, error) {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := cache.NewCache(redisClient)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize cache")
	}
	manager, err := session.NewManager(cfg.SymmetricKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize sessions")
	}

	query := querystate.NewClient(store, cfg.QueryCacheTTL)
	center := notify.NewCenter(store, cfg.NotificationTTL)
	mailer := notify.NewMailer(cfg.SMTPConfig)
	locker := database.NewLocker(redisClient)

	facades := handlers.Facades{
		Patients:       services.NewPatientService(repositories.NewPatientRepository(db), center),
		Appointments:   services.NewAppointmentService(repositories.NewAppointmentRepository(db), center, mailer),
		Staff:          services.NewStaffService(repositories.NewStaffRepository(db), center),
		Wards:          services.NewWardService(repositories.NewWardRepository(db), center),
		Beds:           services.NewBedService(repositories.NewBedRepository(db), center),
		BedAssignments: services.NewBedAssignmentService(repositories.NewBedAssignmentRepository(db, locker), center),
		LabTests:       services.NewLabTestService(repositories.NewLabTestRepository(db), center),
		Medications:    services.NewMedicationService(repositories.NewMedicationRepository(db), center),
	}
	dashboard := services.NewDashboardService(repositories.NewDashboardRepository(db), center)

	screens := handlers.NewScreens(facades, query, center, dialogIdle)
	assignments := handlers.NewBedAssignmentHandler(facades.BedAssignments, workflow.Effects{
		Refetch:  handlers.OccupancyRefetch,
		Cache:    query,
		Notifier: center,
		Describe: services.Describe,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CorsMiddleware(middlewares.NewCorsConfig(cfg.CORSOrigins)))
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	router.Use(middlewares.SessionResolver(manager))

	shell := handlers.NewShellHandler(center)
	controllers.SetupPublicRoutes(router, shell, handlers.NewAuthHandler(manager, !cfg.IsDev()))

	protected := router.Group("/", middlewares.RequireSession())
	controllers.SetupShellRoutes(protected, shell, handlers.NewDashboardHandler(dashboard, query, center))
	controllers.SetupScreenRoutes(protected, screens, assignments)

	return router, nil
}
