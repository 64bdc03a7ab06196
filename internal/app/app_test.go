package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/alexa"
	"github.com/randytsao24/wastewizard/internal/config"
	"github.com/randytsao24/wastewizard/internal/skill"
)

func launch(appID string) *alexa.RequestEnvelope {
	return &alexa.RequestEnvelope{
		Session: alexa.Session{SessionID: "s", Application: alexa.Application{ApplicationID: appID}},
		Request: alexa.Request{Type: alexa.LaunchRequest, RequestID: "r"},
	}
}

func TestDefaultConfigRejectsForeignApplication(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("SKILL_APPLICATION_ID", "")
	t.Setenv("SKILL_ACCEPT_ANY_APPLICATION", "")

	cfg := config.Load()
	require.Error(t, cfg.Validate())

	a := New(cfg, zap.NewNop(), nil)
	defer a.Close()

	_, err := a.Skill.Handle(context.Background(), launch("amzn1.ask.skill.attacker"))
	assert.ErrorIs(t, err, skill.ErrInvalidApplication)
}

func TestConfiguredApplicationID(t *testing.T) {
	cfg := config.Load()
	cfg.ApplicationID = "amzn1.ask.skill.wastewizard"
	cfg.AcceptAnyApplication = false

	a := New(cfg, zap.NewNop(), nil)
	defer a.Close()

	_, err := a.Skill.Handle(context.Background(), launch("amzn1.ask.skill.attacker"))
	assert.ErrorIs(t, err, skill.ErrInvalidApplication)

	resp, err := a.Skill.Handle(context.Background(), launch("amzn1.ask.skill.wastewizard"))
	require.NoError(t, err)
	assert.False(t, resp.Response.ShouldEndSession)
}

func TestAcceptAnyApplication(t *testing.T) {
	t.Setenv("ENV", "")
	cfg := config.Load()
	cfg.ApplicationID = ""
	cfg.AcceptAnyApplication = true
	require.NoError(t, cfg.Validate())

	a := New(cfg, zap.NewNop(), nil)
	defer a.Close()

	_, err := a.Skill.Handle(context.Background(), launch("amzn1.ask.skill.simulator"))
	assert.NoError(t, err)
}
