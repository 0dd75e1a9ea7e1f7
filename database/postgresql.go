package database

import (
	"HospitalAdmin/config"
	"HospitalAdmin/models"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the database connection and configures it.
func InitDB(ctx context.Context, cfg *config.AppConfig) (*gorm.DB, error) {
	// Configure logging level based on environment
	logMode := logger.Silent
	if cfg.IsDev() {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		PrepareStmt:                              true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := configureConnectionPool(db, cfg); err != nil {
		return nil, err
	}

	if err := testDatabaseConnection(ctx, db); err != nil {
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := RunMigrations(db); err != nil {
			return nil, err
		}
	}

	log.Info().Msg("database initialized")
	return db, nil
}

func configureConnectionPool(db *gorm.DB, cfg *config.AppConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func testDatabaseConnection(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// RunMigrations creates or updates the tables of every entity. Parents come
// before children so foreign keys resolve.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Patient{},
		&models.Staff{},
		&models.Appointment{},
		&models.Ward{},
		&models.Bed{},
		&models.BedAssignment{},
		&models.LabTest{},
		&models.Medication{},
	)
	return errors.Wrap(err, "failed to run migrations")
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("closing database pool")
	}
}
