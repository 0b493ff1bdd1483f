package business

import (
	"context"

	"shoguntrade/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// RecordSystemLog appends an audit entry. Failures are logged and swallowed
// so that auditing never undoes a committed operation.
func RecordSystemLog(ctx context.Context, db *gorm.DB, entry models.SystemLog) {
	if entry.Level == "" {
		entry.Level = LogLevelInfo
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.WithFields(log.Fields{
			"module":  entry.Module,
			"message": entry.Message,
		}).Errorf("Failed to write system log: %v", err)
	}
}
