package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			require.NoError(t, Init(tt.level, "text"))
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestInit_UnknownLevel(t *testing.T) {
	assert.Error(t, Init("verbose", "text"))
}

func TestInit_JSONFormat(t *testing.T) {
	require.NoError(t, Init("info", "json"))
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}
