package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		wantErr bool
	}{
		{"defaults", Config{}, zapcore.WarnLevel, false},
		{"debug_json", Config{Level: "debug", Format: "json"}, zapcore.DebugLevel, false},
		{"info_console", Config{Level: "INFO", Format: "console"}, zapcore.InfoLevel, false},
		{"bad_level", Config{Level: "loud"}, 0, true},
		{"bad_format", Config{Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.enabled-1))
		})
	}
}
