package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeCleanupScheduler starts the daily maintenance job. It is the only
// background task in the system and touches nothing a live request depends on.
func InitializeCleanupScheduler() *cron.Cron {
	c := cron.New()

	// Run daily at 03:00 server time
	c.AddFunc("0 3 * * *", func() {
		log.Println("[CLEANUP] Running daily maintenance...")
		PurgeDeletedCourses(30)
		PurgeOldLoginRecords(90)
	})

	c.Start()
	log.Println("[CLEANUP] Maintenance scheduler started - runs daily at 03:00")
	return c
}

// PurgeDeletedCourses permanently removes courses that were soft-deleted more
// than retentionDays ago, along with their modules and lessons.
func PurgeDeletedCourses(retentionDays int) {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	var stale []courseModels.Course
	if err := db.Unscoped().
		Where("is_deleted = ? AND updated_at < ?", true, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("[CLEANUP] Error fetching stale courses: %v", err)
		return
	}

	for _, course := range stale {
		tx := db.Begin()

		var moduleIDs []uint
		if err := tx.Model(&courseModels.Module{}).
			Where("course_id = ?", course.ID).
			Pluck("id", &moduleIDs).Error; err != nil {
			tx.Rollback()
			log.Printf("[CLEANUP] Error collecting modules for course %d: %v", course.ID, err)
			continue
		}

		if len(moduleIDs) > 0 {
			if err := tx.Unscoped().Where("module_id IN ?", moduleIDs).
				Delete(&courseModels.Lesson{}).Error; err != nil {
				tx.Rollback()
				log.Printf("[CLEANUP] Error purging lessons for course %d: %v", course.ID, err)
				continue
			}
		}

		if err := tx.Unscoped().Where("course_id = ?", course.ID).
			Delete(&courseModels.Module{}).Error; err != nil {
			tx.Rollback()
			log.Printf("[CLEANUP] Error purging modules for course %d: %v", course.ID, err)
			continue
		}

		if err := tx.Unscoped().Delete(&course).Error; err != nil {
			tx.Rollback()
			log.Printf("[CLEANUP] Error purging course %d: %v", course.ID, err)
			continue
		}

		tx.Commit()
	}

	if len(stale) > 0 {
		log.Printf("[CLEANUP] Purged %d soft-deleted courses", len(stale))
	}
}

// PurgeOldLoginRecords removes login history older than retentionDays
func PurgeOldLoginRecords(retentionDays int) {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result := db.Unscoped().
		Where("timestamp < ?", cutoff).
		Delete(&models.LoginRecord{})
	if result.Error != nil {
		log.Printf("[CLEANUP] Error purging login records: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP] Purged %d old login records", result.RowsAffected)
	}
}
