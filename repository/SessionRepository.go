package repository

import (
	"errors"

	"book-wishlist/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("key not found")

// SessionRepository is the persistent key-value storage behind the session
type SessionRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	// Delete is a no-op for missing keys
	Delete(key string) error
}

type pgSessionRepo struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &pgSessionRepo{db: db}
}

func (r *pgSessionRepo) Get(key string) (string, error) {
	var e model.SessionEntry
	if err := r.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return e.Value, nil
}

func (r *pgSessionRepo) Set(key, value string) error {
	entry := &model.SessionEntry{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
}

func (r *pgSessionRepo) Delete(key string) error {
	return r.db.Delete(&model.SessionEntry{}, "key = ?", key).Error
}
