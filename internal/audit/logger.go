package audit

import (
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(userID *uint, action, entity string, entityID *uint) error {
	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}

	return l.db.Create(&entry).Error
}
