package config

import (
	"context"
	"fmt"
	"time"

	"github.com/fitgear/fitgear-api/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Pool serves raw queries (health checks, login events).
	Pool *pgxpool.Pool
	// DB is the GORM handle used by services.
	DB *gorm.DB
)

func InitDB(cfg AppConfig) error {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "fitgear"),
		)
		Logger.Warn("⚠️ DATABASE_URL not set, using local default")
	}

	if err := initPgx(dsn); err != nil {
		return err
	}
	return initGORM(dsn, cfg.IsProduction())
}

func initPgx(dsn string) error {
	var err error
	Pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		return fmt.Errorf("unable to create database pool: %w", err)
	}

	ctx, cancel := WithTimeout()
	defer cancel()
	if err = Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	Logger.Info("✅ database connected (pgx)")
	return nil
}

func initGORM(dsn string, production bool) error {
	gormLogger := logger.Default.LogMode(logger.Info)
	if production {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("failed to connect with GORM: %w", err)
	}
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	Logger.Info("✅ database connected (GORM)")
	return nil
}

// Migrate creates or updates every table the API owns.
func Migrate() error {
	return DB.AutoMigrate(
		&models.Product{},
		&models.Review{},
		&models.User{},
		&models.Address{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.LoginEvent{},
	)
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		Logger.Info("✅ database connection closed (pgx)")
	}
	if DB != nil {
		if sqlDB, _ := DB.DB(); sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				Logger.Warn("⚠️ closing GORM connection", zap.Error(err))
				return
			}
			Logger.Info("✅ database connection closed (GORM)")
		}
	}
}
