package storage

import (
	"errors"

	"github.com/julianstephens/excusedex/internal/models"
)

// ErrNotFound is returned when an excuse with the requested id does not exist.
var ErrNotFound = errors.New("excuse not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Preferences
	GetPreferences() (models.Preferences, error)
	SavePreferences(models.Preferences) error

	// Excuses
	// AddExcuse stores a new record and returns its assigned id. Any id on the
	// argument is ignored.
	AddExcuse(models.Excuse) (int64, error)
	GetExcuse(id int64) (models.Excuse, error)
	// GetAllExcuses returns every record, newest date first and newest id first
	// within a date.
	GetAllExcuses() ([]models.Excuse, error)
	GetExcusesByDate(date string) ([]models.Excuse, error)
	UpdateExcuse(models.Excuse) error
	DeleteExcuse(id int64) error
	// DeleteAllExcuses removes every record and returns how many were removed.
	DeleteAllExcuses() (int64, error)
	CountExcuses() (int, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores backed by a versioned SQL schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}
