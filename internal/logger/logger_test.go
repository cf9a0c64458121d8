package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	msgs []string
}

func (a *recordingAlerter) SendAlert(msg string) error {
	a.msgs = append(a.msgs, msg)
	return nil
}

func TestTelegramHandler_OnlyErrorsAlert(t *testing.T) {
	var buf bytes.Buffer
	alerter := &recordingAlerter{}
	log := NewWithWriter(&buf, alerter).With("request_id", "req-1")

	log.Info("plans listed")
	log.Error("failed to activate", "error", errors.New("ydb timeout"), "plan_id", "p1")

	require.Len(t, alerter.msgs, 1)
	assert.Contains(t, alerter.msgs[0], "failed to activate")
	assert.Contains(t, alerter.msgs[0], "request_id: req-1")
	assert.Contains(t, alerter.msgs[0], "error: ydb timeout")
	assert.NotContains(t, alerter.msgs[0], "plan_id")
	assert.Contains(t, buf.String(), `"msg":"plans listed"`)
}

func TestFromContext_Default(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	l := NewWithWriter(&bytes.Buffer{}, nil)
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}
