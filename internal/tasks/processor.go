package tasks

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"

	"plantdefender/internal/ids"
	"plantdefender/internal/media/payload"
	"plantdefender/internal/queue"
	"plantdefender/internal/repository"
	"plantdefender/internal/storage"
)

// Archive is the object storage the worker writes scan images to.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error
	RemoveOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type Processor struct {
	scans     repository.ScanRepository
	archive   Archive
	retention time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewProcessor(scans repository.ScanRepository, archive Archive, retention time.Duration, logger zerolog.Logger) *Processor {
	return &Processor{
		scans:     scans,
		archive:   archive,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

func (p *Processor) Handle(ctx context.Context, task queue.Task) error {
	switch task.Type {
	case queue.TaskScanCreated:
		return p.handleScanCreated(ctx, task)
	case queue.TaskCleanup:
		return p.handleCleanup(ctx)
	default:
		p.logger.Warn().Str("type", task.Type).Msg("unknown task type")
		return nil
	}
}

func (p *Processor) handleScanCreated(ctx context.Context, task queue.Task) error {
	if task.ScanID == "" || task.UserID == "" {
		p.logger.Warn().Str("message_id", task.ID).Msg("scan task without ids")
		return nil
	}

	scan, err := p.scans.FindByOwner(ctx, task.UserID, task.ScanID)
	if err != nil {
		if errors.Is(err, repository.ErrScanNotFound) {
			p.logger.Warn().Str("scan_id", task.ScanID).Msg("scan vanished before archiving")
			return nil
		}
		return fmt.Errorf("load scan: %w", err)
	}

	img, err := payload.Decode(scan.ImageBase64)
	if err != nil {
		p.logger.Warn().Err(err).Str("scan_id", scan.ID).Msg("stored image not archivable")
		return nil
	}

	key := ArchiveKey(scan.CreatedAt, scan.ID, img.Media.Extension())
	metadata := map[string]string{
		"scan-id":  scan.ID,
		"user-id":  scan.UserID,
		"disease":  scan.DiseaseDetected,
		"severity": scan.Severity,
	}
	if err := p.archive.Put(ctx, key, img.Data, img.Media.MIME, metadata); err != nil {
		return fmt.Errorf("archive scan %s: %w", scan.ID, err)
	}

	p.logger.Info().Str("scan_id", scan.ID).Str("key", key).Msg("scan image archived")
	return nil
}

func (p *Processor) handleCleanup(ctx context.Context) error {
	if p.retention <= 0 {
		p.logger.Debug().Msg("archive retention disabled")
		return nil
	}

	cutoff := p.now().Add(-p.retention)
	removed, err := p.archive.RemoveOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cleanup archive: %w", err)
	}

	p.logger.Info().Int("removed", removed).Time("cutoff", cutoff).Msg("archive cleanup finished")
	return nil
}

// ArchiveKey lays archived images out by creation day; the KSUID keeps keys
// within a day in time order.
func ArchiveKey(createdAt time.Time, scanID string, ext string) string {
	createdAt = createdAt.UTC()
	return path.Join(
		storage.ArchivePrefix,
		createdAt.Format("2006/01/02"),
		fmt.Sprintf("%s-%s.%s", ids.Sortable(createdAt), scanID, ext),
	)
}
