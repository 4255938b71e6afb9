package repo

import (
	"errors"
	"strings"

	"DocPortal/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the database and migrates the three entity collections.
// Container name uniqueness lives in the schema (uniqueIndex), not in
// application pre-checks, so concurrent creates lose cleanly.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.Container{}, &model.Requirement{}, &model.File{}); err != nil {
		return nil, err
	}
	return db, nil
}

// IsDuplicate reports whether err is a unique-constraint violation. The
// postgres dialector translates these to gorm.ErrDuplicatedKey; the modernc
// sqlite driver used in tests does not, so the message is matched as well.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
