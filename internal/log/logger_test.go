package log

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestResolveLevel(t *testing.T) {
	cases := []struct {
		env   string
		level string
		want  zerolog.Level
	}{
		{"development", "", zerolog.DebugLevel},
		{"production", "", zerolog.InfoLevel},
		{"production", "debug", zerolog.DebugLevel},
		{"development", "WARN", zerolog.WarnLevel},
		{"development", " error ", zerolog.ErrorLevel},
		{"production", "bogus", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resolveLevel(tc.env, tc.level), "env=%s level=%q", tc.env, tc.level)
	}
}
