package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"plantdefender/internal/apperr"
	"plantdefender/internal/diagnosis"
	"plantdefender/internal/ids"
	"plantdefender/internal/llm"
	"plantdefender/internal/media/payload"
	"plantdefender/internal/models"
	"plantdefender/internal/repository"
)

const (
	scanSystemInstruction = "You are an expert agricultural AI assistant specializing in tomato plant disease detection. " +
		"Analyze the provided image and identify any diseases, their severity, and provide treatment recommendations."

	scanPrompt = `Analyze this tomato plant image and provide a detailed diagnosis in the following JSON format:
{
  "disease_detected": "Name of disease or 'Healthy'",
  "confidence": "High/Medium/Low",
  "severity": "None/Mild/Moderate/Severe",
  "symptoms_observed": ["symptom1", "symptom2"],
  "treatment": "Detailed treatment description",
  "recommendations": ["recommendation1", "recommendation2", "recommendation3"]
}

Only return the JSON object, no additional text.`

	// rawExcerptLimit caps how much of a bad model answer is logged.
	rawExcerptLimit = 512

	analyzeFailedMessage = "Failed to analyze image"
)

// ScanEvents receives persisted scans. Delivery is best-effort.
type ScanEvents interface {
	ScanCreated(ctx context.Context, scan models.Scan) error
}

type ScanService struct {
	scans   repository.ScanRepository
	model   llm.Client
	events  ScanEvents
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

func NewScanService(scans repository.ScanRepository, model llm.Client, events ScanEvents, timeout time.Duration, log zerolog.Logger) *ScanService {
	return &ScanService{
		scans:   scans,
		model:   model,
		events:  events,
		timeout: timeout,
		log:     log,
		now:     time.Now,
	}
}

// Create runs one image through the model and stores the diagnosis. Nothing
// is persisted unless the model answer parses.
func (s *ScanService) Create(ctx context.Context, userID string, imageBase64 string) (models.Scan, error) {
	img, err := payload.Decode(imageBase64)
	if err != nil {
		return models.Scan{}, apperr.Wrap(apperr.KindValidation, "Invalid image", err)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.model.Send(callCtx, llm.Request{
		System:   scanSystemInstruction,
		Prompt:   scanPrompt,
		Image:    img.Data,
		MIMEType: img.Media.MIME,
	})
	if err != nil {
		appErr := apperr.Wrap(apperr.KindUpstreamCall, analyzeFailedMessage, err)
		s.logUpstream(userID, appErr, "")
		return models.Scan{}, appErr
	}

	result, err := diagnosis.Parse(raw)
	if err != nil {
		appErr := apperr.Wrap(apperr.KindUpstreamFormat, analyzeFailedMessage, err)
		s.logUpstream(userID, appErr, raw)
		return models.Scan{}, appErr
	}

	scan := models.Scan{
		ID:          ids.New(),
		UserID:      userID,
		ImageBase64: img.Base64,
		Diagnosis:   result,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.scans.Create(ctx, scan); err != nil {
		return models.Scan{}, err
	}

	if s.events != nil {
		if err := s.events.ScanCreated(ctx, scan); err != nil {
			s.log.Warn().Err(err).Str("scan_id", scan.ID).Msg("publish scan event failed")
		}
	}

	s.log.Info().
		Str("user_id", userID).
		Str("scan_id", scan.ID).
		Str("disease", scan.DiseaseDetected).
		Msg("scan created")
	return scan, nil
}

func (s *ScanService) List(ctx context.Context, userID string) ([]models.Scan, error) {
	scans, err := s.scans.ListByUser(ctx, userID, repository.MaxScanPage)
	if err != nil {
		return nil, err
	}
	if scans == nil {
		scans = []models.Scan{}
	}
	return scans, nil
}

func (s *ScanService) Get(ctx context.Context, userID string, scanID string) (models.Scan, error) {
	scan, err := s.scans.FindByOwner(ctx, userID, scanID)
	if err != nil {
		if errors.Is(err, repository.ErrScanNotFound) {
			return models.Scan{}, apperr.Wrap(apperr.KindNotFound, "Scan not found", err)
		}
		return models.Scan{}, err
	}
	return scan, nil
}

func (s *ScanService) logUpstream(userID string, err *apperr.Error, raw string) {
	event := s.log.Error().
		Err(err.Err).
		Str("user_id", userID).
		Str("kind", string(err.Kind))
	if raw != "" {
		if len(raw) > rawExcerptLimit {
			raw = raw[:rawExcerptLimit]
		}
		event = event.Str("raw", raw)
	}
	event.Msg("scan analysis failed")
}
