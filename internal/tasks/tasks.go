package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
)

// SongResolver resolves song IDs to catalog entries, skipping unknown IDs.
type SongResolver interface {
	GetMany(ids []string) ([]*models.Song, error)
}

// Exporter exports stored partitions. Safe for concurrent use if the store is.
type Exporter struct {
	store  repositories.Store
	songs  SongResolver
	logger *log.Logger
}

// NewExporter creates an [Exporter] reading partitions from store.
func NewExporter(store repositories.Store, songs SongResolver, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{store: store, songs: songs, logger: shared.WithLogger(logger, "component", "tasks")}
}

func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		e.logger.Debug("dropped progress update", "phase", update.Phase, "step", update.Step)
	}
}
