package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitorCheck(t *testing.T) {
	m := NewHealthMonitor(map[string]Probe{
		"store": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	assert.True(t, m.Status().Healthy())

	status := m.Check(context.Background())
	assert.Equal(t, map[string]bool{"store": true, "redis": false}, status.Services)
	assert.False(t, status.Healthy())
	assert.Equal(t, status, m.Status())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("production", "debug")
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	logger, err = NewLogger("development", "bogus")
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
}
