package task

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/course"
	"github.com/Dagefoerde/collaborativefolders/internal/db/controller/activity"
	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

// FolderMaker creates directories in the technical account's remote space.
type FolderMaker interface {
	CreateFolder(ctx context.Context, path string) error
}

// Worker drains pending folder-creation jobs. For each job it creates the
// activity's instance folder and, in group mode, one subfolder per
// participating group, then deletes the job row.
type Worker struct {
	db       *gorm.DB
	storage  FolderMaker
	courses  *course.Service
	interval time.Duration
}

// NewWorker creates a worker polling at the given interval.
func NewWorker(db *gorm.DB, storage FolderMaker, interval time.Duration) *Worker {
	return &Worker{
		db:       db,
		storage:  storage,
		courses:  course.NewService(db),
		interval: interval,
	}
}

// Run polls for pending jobs until ctx is cancelled. One pass runs
// immediately at startup.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("task worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce processes every pending folder-creation job once. Failed jobs stay
// queued and are picked up again on the next pass.
func (w *Worker) RunOnce(ctx context.Context) {
	var tasks []models.PendingTask

	err := w.db.Where("type = ?", TypeCreateFolders).Find(&tasks).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to load pending tasks")
		return
	}

	for i := range tasks {
		if err := w.process(ctx, &tasks[i]); err != nil {
			log.Warn().Err(err).
				Str("task_id", tasks[i].ID).
				Msg("folder creation failed, leaving task queued")
			continue
		}

		if err := w.db.Delete(&tasks[i]).Error; err != nil {
			log.Error().Err(err).
				Str("task_id", tasks[i].ID).
				Msg("failed to complete task")
		}
	}
}

func (w *Worker) process(ctx context.Context, t *models.PendingTask) error {
	var payload CreateFoldersPayload
	if err := json.Unmarshal(t.Payload, &payload); err != nil {
		return err
	}

	act, err := activity.GetByCMID(w.db, payload.CMID)
	if err != nil {
		return err
	}

	root := "/" + strconv.FormatUint(act.ID, 10)
	if err := w.storage.CreateFolder(ctx, root); err != nil {
		return err
	}

	if !act.GroupMode {
		log.Info().Uint64("activity_id", act.ID).Msg("created instance folder")
		return nil
	}

	groups, err := w.courses.AllGroups(act)
	if err != nil {
		return err
	}

	for i := range groups {
		path := root + "/" + strconv.FormatUint(groups[i].ID, 10)
		if err := w.storage.CreateFolder(ctx, path); err != nil {
			return err
		}
	}

	log.Info().
		Uint64("activity_id", act.ID).
		Int("groups", len(groups)).
		Msg("created instance and group folders")

	return nil
}
