package audit

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// StartRetentionJob prunes audit entries older than retentionDays every
// night. Returns the scheduler so the caller can Stop it on shutdown.
func StartRetentionJob(db *gorm.DB, retentionDays int) *cron.Cron {
	if retentionDays <= 0 {
		retentionDays = 90
	}

	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		res := db.
			Where("created_at < ?", cutoff).
			Delete(&models.AuditLog{})

		if res.Error != nil {
			log.Println("audit retention error:", res.Error)
			return
		}

		if res.RowsAffected > 0 {
			log.Printf("audit retention: pruned %d entries older than %s",
				res.RowsAffected, cutoff.Format("2006-01-02"))
		}
	})

	c.Start()
	return c
}
