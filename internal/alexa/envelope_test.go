package alexa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const launchBody = `{
	"version": "1.0",
	"session": {
		"new": true,
		"sessionId": "amzn1.echo-api.session.1",
		"application": {"applicationId": "amzn1.ask.skill.test"},
		"user": {"userId": "amzn1.ask.account.1"}
	},
	"context": {
		"System": {
			"application": {"applicationId": "amzn1.ask.skill.test"},
			"device": {"deviceId": "amzn1.ask.device.1"},
			"apiEndpoint": "https://api.amazonalexa.com",
			"apiAccessToken": "token"
		}
	},
	"request": {
		"type": "IntentRequest",
		"requestId": "amzn1.echo-api.request.1",
		"locale": "en-CA",
		"intent": {
			"name": "TWWMaterialIntent",
			"slots": {"WasteMaterial": {"name": "WasteMaterial", "value": " Aluminum Foil "}}
		}
	}
}`

func TestDecodeRequestEnvelope(t *testing.T) {
	var env RequestEnvelope
	require.NoError(t, json.Unmarshal([]byte(launchBody), &env))

	assert.Equal(t, "amzn1.ask.skill.test", env.ApplicationID())
	assert.Equal(t, IntentRequest, env.Request.Type)
	assert.Equal(t, "TWWMaterialIntent", env.Request.Intent.Name)
	assert.Equal(t, "Aluminum Foil", env.Request.Intent.SlotValue("WasteMaterial"))
	assert.Equal(t, "", env.Request.Intent.SlotValue("Missing"))
	assert.Equal(t, "amzn1.ask.device.1", env.Context.System.Device.DeviceID)
	assert.Equal(t, "https://api.amazonalexa.com", env.Context.System.APIEndpoint)
	assert.Equal(t, "token", env.Context.System.APIAccessToken)
}

func TestApplicationIDFallsBackToContext(t *testing.T) {
	env := RequestEnvelope{Context: Context{System: System{Application: Application{ApplicationID: "from-context"}}}}
	assert.Equal(t, "from-context", env.ApplicationID())
}

func TestPlainText(t *testing.T) {
	got := PlainText("Waste Disposal", "Recycle it", "", true)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": "1.0",
		"sessionAttributes": {},
		"response": {
			"outputSpeech": {"type": "PlainText", "text": "Recycle it"},
			"card": {"type": "Simple", "title": "Waste Disposal", "content": "Recycle it"},
			"shouldEndSession": true
		}
	}`, string(body))
}

func TestSSMLCardHasNoMarkup(t *testing.T) {
	got := SSML("Welcome", "<speak><p>Hello. </p><p>Try <say-as interpret-as='digits'>311</say-as></p></speak>", "<speak>Again?</speak>", false)

	assert.Equal(t, SSMLSpeech, got.Response.OutputSpeech.Type)
	assert.Equal(t, "Hello. Try 311", got.Response.Card.Content)
	require.NotNil(t, got.Response.Reprompt)
	assert.Equal(t, "<speak>Again?</speak>", got.Response.Reprompt.OutputSpeech.SSML)
	assert.False(t, got.Response.ShouldEndSession)
}

func TestPermissionRequest(t *testing.T) {
	got := PermissionRequest("Please grant access")

	assert.Equal(t, PermissionConsentCard, got.Response.Card.Type)
	assert.Equal(t, []string{"read::alexa:device:all:address"}, got.Response.Card.Permissions)
	assert.Equal(t, "Please grant access", got.Response.OutputSpeech.Text)
	assert.True(t, got.Response.ShouldEndSession)
}

func TestEmpty(t *testing.T) {
	got := Empty()
	assert.Nil(t, got.Response.OutputSpeech)
	assert.Nil(t, got.Response.Card)
	assert.Equal(t, "1.0", got.Version)
}
