package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantdefender/internal/models"
)

const lateBlight = `{"disease_detected":"Late Blight","confidence":"High","severity":"Severe","treatment":"Remove plants","recommendations":["Use fungicide"]}`

func TestParseFullObject(t *testing.T) {
	t.Parallel()

	got, err := Parse(lateBlight)
	require.NoError(t, err)
	assert.Equal(t, models.Diagnosis{
		DiseaseDetected: "Late Blight",
		Confidence:      "High",
		Severity:        "Severe",
		Treatment:       "Remove plants",
		Recommendations: []string{"Use fungicide"},
	}, got)
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Parse("```json\n" + lateBlight + "\n```")
	require.NoError(t, err)
	second, err := Parse("```json\n" + lateBlight + "\n```")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseStripsFences(t *testing.T) {
	t.Parallel()

	healthy := `{"disease_detected":"Healthy","confidence":"High","severity":"None","treatment":"None needed","recommendations":["Keep watering at the base"]}`
	bare, err := Parse(healthy)
	require.NoError(t, err)

	inputs := []string{
		"```json\n" + healthy + "\n```",
		"```\n" + healthy + "\n```",
		"  \n```json" + healthy + "```\n\t",
		healthy + "\n```",
		"```" + healthy,
	}
	for _, in := range inputs {
		got, err := Parse(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, bare, got, "input %q", in)
	}
}

func TestParseDefaultsMissingFields(t *testing.T) {
	t.Parallel()

	got, err := Parse(`{"disease_detected":"Early Blight"}`)
	require.NoError(t, err)
	assert.Equal(t, "Early Blight", got.DiseaseDetected)
	assert.Equal(t, "Unknown", got.Confidence)
	assert.Equal(t, "Unknown", got.Severity)
	assert.Equal(t, DefaultTreatment, got.Treatment)
	require.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Recommendations)
}

func TestParseEmptyObject(t *testing.T) {
	t.Parallel()

	got, err := Parse(`{}`)
	require.NoError(t, err)
	assert.Equal(t, models.Diagnosis{
		DiseaseDetected: DefaultDisease,
		Confidence:      DefaultConfidence,
		Severity:        DefaultSeverity,
		Treatment:       DefaultTreatment,
		Recommendations: []string{},
	}, got)
}

func TestParseNullAndWrongTypesFallBack(t *testing.T) {
	t.Parallel()

	got, err := Parse(`{"disease_detected":null,"confidence":0.9,"severity":["Mild"],"treatment":{"text":"x"},"recommendations":"spray"}`)
	require.NoError(t, err)
	assert.Equal(t, DefaultDisease, got.DiseaseDetected)
	assert.Equal(t, DefaultConfidence, got.Confidence)
	assert.Equal(t, DefaultSeverity, got.Severity)
	assert.Equal(t, DefaultTreatment, got.Treatment)
	assert.Equal(t, []string{}, got.Recommendations)
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	got, err := Parse(`{"disease_detected":"Leaf Mold","symptoms_observed":["yellow spots"],"model":"x","score":3}`)
	require.NoError(t, err)
	assert.Equal(t, "Leaf Mold", got.DiseaseDetected)
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"```json\n```",
		`{"disease_detected":"Late Blight","confidence":`,
		"not json at all",
		`["Late Blight"]`,
		`null`,
		`"Healthy"`,
		"Here is the diagnosis: " + lateBlight,
		lateBlight + " Let me know if you need more help.",
		"```json\n" + lateBlight + "\n```\nHope this helps!",
		lateBlight + lateBlight,
	}
	for _, in := range inputs {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnparsable, "input %q", in)
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(" {\"a\":1} "))
	assert.Equal(t, "", StripFences("```json```"))
}
