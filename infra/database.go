// Package infra provides the gorm-backed implementations of the
// repository contracts.
package infra

import (
	"errors"
	"strings"
	"time"

	"github.com/unknownhumanoid/pelicoin/pkg/config"
	adminmodel "github.com/unknownhumanoid/pelicoin/infra/repository/admin"
	txmodel "github.com/unknownhumanoid/pelicoin/infra/repository/transaction"
	usermodel "github.com/unknownhumanoid/pelicoin/infra/repository/user"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the database named by the config. A postgres
// URL selects the postgres driver; anything else is treated as a sqlite
// file path (the embedded default).
func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	databaseUrl := cnf.Url
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(databaseUrl, "postgres://") ||
		strings.HasPrefix(databaseUrl, "postgresql://") {
		dialector = postgres.Open(databaseUrl)
	} else {
		dialector = sqlite.Open(databaseUrl)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usermodel.User{},
		&usermodel.Balance{},
		&adminmodel.Admin{},
		&txmodel.Transaction{},
	)
}
