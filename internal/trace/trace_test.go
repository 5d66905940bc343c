package trace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemovePII(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfgPath := filepath.Join(home, ".bionicpro", "config")
	event := &sentry.Event{
		Message:   "failed to read " + cfgPath,
		Exception: []sentry.Exception{{Value: "open " + cfgPath + ": permission denied"}},
		Spans:     []*sentry.Span{{Name: "load " + cfgPath, Description: cfgPath}},
	}

	got := removePII(event, nil)

	assert.NotContains(t, got.Message, home)
	assert.Contains(t, got.Message, userHome)
	assert.NotContains(t, got.Exception[0].Value, home)
	assert.NotContains(t, got.Spans[0].Name, home)
	assert.NotContains(t, got.Spans[0].Description, home)
}

func TestDNT(t *testing.T) {
	t.Setenv(EnvDNT, "1")
	assert.True(t, DNT())
}

func TestSpanError_ReturnsSameError(t *testing.T) {
	_, span := NewSpan(t.Context(), "test")
	defer span.End()

	err := errors.New("boom")
	assert.Same(t, err, SpanError(span, err))
}
