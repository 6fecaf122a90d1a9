package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, env string) *bytes.Buffer {
	t.Helper()

	Setup("debug", env)
	buf := &bytes.Buffer{}
	logrus.SetOutput(buf)
	t.Cleanup(func() {
		environment.Store("")
	})
	return buf
}

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContext_AddsCorrelationID(t *testing.T) {
	buf := captureOutput(t, "production")
	ctx, id := WithCorrelationID(context.Background())

	ForContext(ctx).Info("teste")

	assert.Contains(t, buf.String(), "correlation_id="+id)
}

func TestWithFields_DevelopmentFilter(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		contains []string
		missing  []string
	}{
		{
			name:     "Desenvolvimento mantém apenas campos relevantes",
			env:      "development",
			contains: []string{"collaborator_id=c1", "collection=sales"},
			missing:  []string{"user_agent"},
		},
		{
			name:     "Produção mantém todos os campos",
			env:      "production",
			contains: []string{"collaborator_id=c1", "collection=sales", "user_agent=curl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t, tt.env)

			L.WithFields(Fields{
				"collaborator_id": "c1",
				"collection":      "sales",
				"user_agent":      "curl",
			}).Info("mensagem")

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	Setup("verboso", "production")
	t.Cleanup(func() { environment.Store("") })

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
