package watcher

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyFallback_Format(t *testing.T) {
	var buf bytes.Buffer
	err := notifyFallback(&buf, Alert{
		Level:   "critical",
		Title:   "Neglected: Social",
		Message: "Weekly score is 0.5",
		Time:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "[critical] Neglected: Social: Weekly score is 0.5\n", buf.String())
}

func TestNotifyFallback_EmptyAlert(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, notifyFallback(&buf, Alert{}))
	assert.Equal(t, "[] : \n", buf.String())
}
