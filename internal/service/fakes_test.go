package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"plantdefender/internal/llm"
	"plantdefender/internal/models"
	"plantdefender/internal/repository"
)

var (
	pngImage    = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d}
	pngBase64   = base64.StdEncoding.EncodeToString(pngImage)
	discardLogs = zerolog.New(io.Discard)
)

const lateBlightAnswer = "```json\n" + `{
  "disease_detected": "Late Blight",
  "confidence": "High",
  "severity": "Severe",
  "symptoms_observed": ["Water-soaked spots"],
  "treatment": "Remove infected plants",
  "recommendations": ["Apply copper fungicide", "Avoid overhead watering"]
}` + "\n```"

type stubModel struct {
	mu       sync.Mutex
	answer   string
	err      error
	block    bool
	requests []llm.Request
}

func (m *stubModel) Send(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.answer, m.err
}

func (m *stubModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// countingScans records inserts on top of the in-memory repository.
type countingScans struct {
	*repository.MemoryScanRepository
	mu      sync.Mutex
	inserts int
	failOn  error
}

func newCountingScans() *countingScans {
	return &countingScans{MemoryScanRepository: repository.NewMemoryScanRepository()}
}

func (c *countingScans) Create(ctx context.Context, scan models.Scan) error {
	c.mu.Lock()
	c.inserts++
	c.mu.Unlock()
	if c.failOn != nil {
		return c.failOn
	}
	return c.MemoryScanRepository.Create(ctx, scan)
}

type recordingEvents struct {
	scans []models.Scan
	err   error
}

func (e *recordingEvents) ScanCreated(_ context.Context, scan models.Scan) error {
	e.scans = append(e.scans, scan)
	return e.err
}

var errBoom = errors.New("boom")
