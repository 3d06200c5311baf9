// Package diagnosis turns the model's free-form answer into a
// models.Diagnosis. It tolerates markdown code fences around the JSON object
// and nothing else.
package diagnosis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"plantdefender/internal/models"
)

const (
	DefaultDisease    = "Unknown"
	DefaultConfidence = "Unknown"
	DefaultSeverity   = "Unknown"
	DefaultTreatment  = "No treatment information available"
)

var ErrUnparsable = errors.New("model response is not a JSON object")

// response mirrors the object the model is asked to return. Fields are raw
// so a wrongly typed value can fall back to its default.
type response struct {
	DiseaseDetected  json.RawMessage `json:"disease_detected"`
	Confidence       json.RawMessage `json:"confidence"`
	Severity         json.RawMessage `json:"severity"`
	SymptomsObserved json.RawMessage `json:"symptoms_observed"`
	Treatment        json.RawMessage `json:"treatment"`
	Recommendations  json.RawMessage `json:"recommendations"`
}

// Parse is deterministic: equal input yields an equal Diagnosis.
func Parse(raw string) (models.Diagnosis, error) {
	body := StripFences(raw)
	if body == "" {
		return models.Diagnosis{}, fmt.Errorf("%w: empty response", ErrUnparsable)
	}

	var resp response
	if err := decodeObject(body, &resp); err != nil {
		return models.Diagnosis{}, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	return models.Diagnosis{
		DiseaseDetected: stringOr(resp.DiseaseDetected, DefaultDisease),
		Confidence:      stringOr(resp.Confidence, DefaultConfidence),
		Severity:        stringOr(resp.Severity, DefaultSeverity),
		Treatment:       stringOr(resp.Treatment, DefaultTreatment),
		Recommendations: stringsOr(resp.Recommendations),
	}, nil
}

// StripFences trims whitespace and removes one leading "```json" or "```"
// marker and one trailing "```" marker.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func decodeObject(body string, out *response) error {
	if !strings.HasPrefix(body, "{") {
		return errors.New("top-level value is not an object")
	}

	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(out); err != nil {
		return err
	}
	// Exactly one value: trailing prose is not tolerated.
	if rest := strings.TrimSpace(body[dec.InputOffset():]); rest != "" {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

func stringOr(raw json.RawMessage, fallback string) string {
	if isAbsent(raw) {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}

func stringsOr(raw json.RawMessage) []string {
	out := []string{}
	if isAbsent(raw) {
		return out
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	return append(out, items...)
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
