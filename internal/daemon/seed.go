package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/auth"
	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
	"github.com/Dagefoerde/collaborativefolders/internal/task"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data if user table is empty

	var count int64
	db.Model(&models.User{}).Count(&count)

	if count > 0 {
		return
	}

	admin := models.User{
		Username: "admin",
		Password: models.HashPassword("changeme"),
		Email:    "admin@localhost",
		Active:   true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}

	authService := auth.NewService(db)

	// site-wide capabilities for the admin account
	if err := authService.GrantCapability(admin.ID, 0, auth.CapabilityView); err != nil {
		log.Error().Err(err).Msg("failed to grant view capability")
	}

	if err := authService.GrantCapability(admin.ID, 0, auth.CapabilityAddInstance); err != nil {
		log.Error().Err(err).Msg("failed to grant addinstance capability")
	}

	// a small demo course so a fresh install has something to click on
	course := models.Course{ID: 1, FullName: "Demo course"}
	if err := db.Create(&course).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed course")
		return
	}

	activity := models.Activity{
		ID:             1,
		CMID:           1,
		CourseID:       course.ID,
		Name:           "Shared folders",
		TeacherAllowed: true,
	}

	if err := db.Create(&activity).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed activity")
		return
	}

	if err := task.EnqueueCreateFolders(db, activity.CMID); err != nil {
		log.Error().Err(err).Msg("failed to enqueue folder creation")
	}

	log.Info().Msg("seeded admin account and demo course")
}
