// Package skill answers voice requests: the collection schedule lookup, the
// disposal lookup, and the built-in welcome, help and stop intents.
package skill

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/alexa"
	"github.com/randytsao24/wastewizard/internal/disposal"
	"github.com/randytsao24/wastewizard/internal/location"
	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

// Custom intents and slots of the interaction model
const (
	ScheduleIntent = "TWWScheduleIntent"
	MaterialIntent = "TWWMaterialIntent"
	MaterialSlot   = "WasteMaterial"
)

// AnyApplication as the application id turns the id check off.
const AnyApplication = "*"

// Requests that cannot be answered at all. No response is sent for these.
var (
	ErrInvalidApplication = errors.New("invalid application id")
	ErrUnknownIntent      = errors.New("unknown intent")
	ErrUnknownRequestType = errors.New("unknown request type")
)

// Skill dispatches voice requests
type Skill struct {
	applicationID string
	pipeline      *Pipeline
	finder        DisposalFinder
	logger        *zap.Logger
	metrics       *observability.Collector
}

// New creates a skill that only answers requests carrying applicationID. An
// empty applicationID rejects everything.
func New(applicationID string, pipeline *Pipeline, finder DisposalFinder, logger *zap.Logger, metrics *observability.Collector) *Skill {
	return &Skill{
		applicationID: applicationID,
		pipeline:      pipeline,
		finder:        finder,
		logger:        logger,
		metrics:       metrics,
	}
}

// Handle routes one request envelope to its response
func (s *Skill) Handle(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	if s.applicationID != AnyApplication && (s.applicationID == "" || env.ApplicationID() != s.applicationID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidApplication, env.ApplicationID())
	}

	logger := s.logger.With(
		zap.String("request_id", env.Request.RequestID),
		zap.String("session_id", env.Session.SessionID),
		zap.String("type", env.Request.Type),
	)
	if env.Session.New {
		logger.Info("session started")
	}
	s.metrics.ObserveRequest(env.Request.Type, env.Request.Intent.Name)

	switch env.Request.Type {
	case alexa.LaunchRequest:
		return Welcome(), nil
	case alexa.IntentRequest:
		return s.intent(ctx, logger, env)
	case alexa.SessionEndedRequest:
		logger.Info("session ended", zap.String("reason", env.Request.Reason))
		return alexa.Empty(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequestType, env.Request.Type)
	}
}

func (s *Skill) intent(ctx context.Context, logger *zap.Logger, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	intent := env.Request.Intent
	logger.Debug("intent", zap.String("intent", intent.Name))

	switch intent.Name {
	case ScheduleIntent:
		sys := env.Context.System
		return s.Schedule(ctx, location.Device{
			ID:          sys.Device.DeviceID,
			APIEndpoint: sys.APIEndpoint,
			AccessToken: sys.APIAccessToken,
		}), nil
	case MaterialIntent:
		return s.Material(ctx, intent.SlotValue(MaterialSlot)), nil
	case alexa.HelpIntent:
		return Welcome(), nil
	case alexa.CancelIntent, alexa.StopIntent:
		return Stop(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, intent.Name)
	}
}

// Schedule answers "what is collected next" for the device's address
func (s *Skill) Schedule(ctx context.Context, d location.Device) *alexa.ResponseEnvelope {
	res := s.pipeline.Run(ctx, d)
	s.recordSchedule(res)

	if !res.OK() && outcome.ReasonOf(res.Err) == outcome.PermissionDenied {
		return alexa.PermissionRequest(ScheduleText(res))
	}
	return alexa.PlainText(scheduleTitle, ScheduleText(res), "", true)
}

// LookupAddress runs the schedule lookup from a typed address
func (s *Skill) LookupAddress(ctx context.Context, address string) Result {
	res := s.pipeline.RunFromAddress(ctx, address)
	s.recordSchedule(res)
	return res
}

func (s *Skill) recordSchedule(res Result) {
	if res.OK() {
		s.metrics.ObserveOutcome("schedule", res.Reached.String(), "ok")
		s.logger.Info("collection found",
			zap.String("zone", res.Zone),
			zap.Time("date", res.Collection.Date),
			zap.Strings("items", res.Collection.Items()),
		)
		return
	}

	reason := outcome.ReasonOf(res.Err)
	s.metrics.ObserveOutcome("schedule", res.Reached.String(), reason.String())
	s.logger.Info("schedule lookup stopped",
		zap.Stringer("reached", res.Reached),
		zap.Stringer("reason", reason),
		zap.Error(res.Err),
	)
}

// Material answers "how do I dispose of X". raw is the slot value as heard.
func (s *Skill) Material(ctx context.Context, raw string) *alexa.ResponseEnvelope {
	term := disposal.NormalizeTerm(raw)
	if term == "" {
		s.metrics.ObserveOutcome("material", "start", "no_term")
		return alexa.PlainText(disposalTitle, materialNotUnderstood, "", false)
	}

	match, err := s.finder.Find(ctx, term)
	if err != nil {
		reason := outcome.ReasonOf(err)
		s.metrics.ObserveOutcome("material", "start", reason.String())
		s.logger.Info("disposal lookup failed", zap.String("term", term), zap.Error(err))

		if reason == outcome.NoMatch {
			return alexa.SSML(disposalTitle, materialNotFoundSSML(term), "", true)
		}
		return alexa.PlainText(disposalTitle, materialUnavailable(term), "", true)
	}

	s.metrics.ObserveOutcome("material", "done", "ok")
	return alexa.PlainText(disposalTitle, materialFound(match.Term, match.Instructions), "", true)
}

// FindMaterial runs the disposal lookup for a typed material name
func (s *Skill) FindMaterial(ctx context.Context, raw string) (disposal.Match, error) {
	return s.finder.Find(ctx, disposal.NormalizeTerm(raw))
}

// Welcome greets the user and keeps the session open. Help gives the same answer.
func Welcome() *alexa.ResponseEnvelope {
	return alexa.SSML(welcomeTitle, welcomeSSML, welcomeRepromptSSML, false)
}

// Stop ends the session
func Stop() *alexa.ResponseEnvelope {
	return alexa.PlainText(goodbyeTitle, goodbyeText, "", true)
}
