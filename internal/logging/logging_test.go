package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    hclog.Level
		wantErr bool
	}{
		{"", DefaultLevel, false},
		{"trace", hclog.Trace, false},
		{"DEBUG", hclog.Debug, false},
		{"info", hclog.Info, false},
		{"warn", hclog.Warn, false},
		{"error", hclog.Error, false},
		{"off", hclog.Off, false},
		{"loud", hclog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Output: &buf})

	logger.Debug("hidden")
	logger.Info("shown", "k", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, Name)
	assert.Contains(t, out, "k=3")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Level: "debug", Output: &buf, JSON: true}).Debug("seeded", "attempts", 4)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "seeded", line["@message"])
	assert.Equal(t, float64(4), line["attempts"])
}

func TestNewInvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "bogus", Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().IsError())
}
