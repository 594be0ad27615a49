// Package event records user-facing platform events for later inspection.
package event

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

// Event names emitted by the activity page.
const (
	// LinkGenerated is emitted once per successful link generation.
	LinkGenerated = "link_generated"
	// ActivityViewed is emitted when a user views an activity page.
	ActivityViewed = "activity_viewed"
)

var eventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "collaborativefolders_events_total",
	Help: "Platform events by name.",
}, []string{"name"})

// Sink persists events.
type Sink struct {
	db *gorm.DB
}

// NewSink creates an event sink over the database.
func NewSink(db *gorm.DB) *Sink {
	return &Sink{db: db}
}

// Emit records an event. ObjectID references the entity the event is about,
// e.g. the activity instance id.
func (s *Sink) Emit(name string, userID, objectID uint64) error {
	e := models.Event{
		ID:       uuid.NewString(),
		Name:     name,
		UserID:   userID,
		ObjectID: objectID,
	}

	if err := s.db.Create(&e).Error; err != nil {
		return fmt.Errorf("failed to record event %s: %w", name, err)
	}

	log.Debug().
		Str("event", name).
		Uint64("user_id", userID).
		Uint64("object_id", objectID).
		Msg("event recorded")
	eventsEmitted.WithLabelValues(name).Inc()

	return nil
}
