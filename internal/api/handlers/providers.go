package handlers

import (
	"context"

	"github.com/randytsao24/wastewizard/internal/alexa"
	"github.com/randytsao24/wastewizard/internal/disposal"
	"github.com/randytsao24/wastewizard/internal/skill"
)

// VoiceSkill answers voice platform requests.
type VoiceSkill interface {
	Handle(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error)
}

// ScheduleProvider looks up the next collection for a typed address.
type ScheduleProvider interface {
	LookupAddress(ctx context.Context, address string) skill.Result
}

// MaterialProvider looks up disposal instructions for a typed material.
type MaterialProvider interface {
	FindMaterial(ctx context.Context, raw string) (disposal.Match, error)
}
