// Package alexa holds the voice platform's request and response envelopes.
package alexa

import (
	"strings"

	"golang.org/x/net/html"
)

// Request types
const (
	LaunchRequest       = "LaunchRequest"
	IntentRequest       = "IntentRequest"
	SessionEndedRequest = "SessionEndedRequest"
)

// Built-in intents
const (
	HelpIntent   = "AMAZON.HelpIntent"
	CancelIntent = "AMAZON.CancelIntent"
	StopIntent   = "AMAZON.StopIntent"
)

// AddressPermission is the consent scope for reading a device's street address
const AddressPermission = "read::alexa:device:all:address"

const responseVersion = "1.0"

// RequestEnvelope is the body the platform posts for every invocation
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Context Context `json:"context"`
	Request Request `json:"request"`
}

// ApplicationID returns the skill id the request was addressed to
func (e *RequestEnvelope) ApplicationID() string {
	if id := e.Session.Application.ApplicationID; id != "" {
		return id
	}
	return e.Context.System.Application.ApplicationID
}

type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application Application    `json:"application"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	User        User           `json:"user"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

type Context struct {
	System System `json:"System"`
}

// System carries what is needed to call platform APIs for the device
type System struct {
	Application    Application `json:"application"`
	Device         Device      `json:"device"`
	APIEndpoint    string      `json:"apiEndpoint"`
	APIAccessToken string      `json:"apiAccessToken"`
}

type Device struct {
	DeviceID string `json:"deviceId"`
}

type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Locale    string `json:"locale"`
	Intent    Intent `json:"intent"`
	Reason    string `json:"reason,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// SlotValue returns the trimmed value of a slot, or "" when it is absent
func (i Intent) SlotValue(name string) string {
	slot, ok := i.Slots[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(slot.Value)
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// ResponseEnvelope is returned for every handled request
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	Response          Response       `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// Speech types
const (
	PlainTextSpeech = "PlainText"
	SSMLSpeech      = "SSML"
)

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	SSML string `json:"ssml,omitempty"`
}

// Card types
const (
	SimpleCard            = "Simple"
	PermissionConsentCard = "AskForPermissionsConsent"
)

type Card struct {
	Type        string   `json:"type"`
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

func envelope(r Response) *ResponseEnvelope {
	return &ResponseEnvelope{
		Version:           responseVersion,
		SessionAttributes: map[string]any{},
		Response:          r,
	}
}

// PlainText speaks text and shows it on a simple card. An empty reprompt is
// omitted.
func PlainText(title, text, reprompt string, endSession bool) *ResponseEnvelope {
	r := Response{
		OutputSpeech:     &OutputSpeech{Type: PlainTextSpeech, Text: text},
		Card:             &Card{Type: SimpleCard, Title: title, Content: text},
		ShouldEndSession: endSession,
	}
	if reprompt != "" {
		r.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: PlainTextSpeech, Text: reprompt}}
	}
	return envelope(r)
}

// SSML speaks ssml and shows its text, without markup, on a simple card
func SSML(title, ssml, reprompt string, endSession bool) *ResponseEnvelope {
	r := Response{
		OutputSpeech:     &OutputSpeech{Type: SSMLSpeech, SSML: ssml},
		Card:             &Card{Type: SimpleCard, Title: title, Content: StripSSML(ssml)},
		ShouldEndSession: endSession,
	}
	if reprompt != "" {
		r.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: SSMLSpeech, SSML: reprompt}}
	}
	return envelope(r)
}

// PermissionRequest speaks text and sends a consent card asking for the
// device address permission. The session ends.
func PermissionRequest(text string) *ResponseEnvelope {
	return envelope(Response{
		OutputSpeech: &OutputSpeech{Type: PlainTextSpeech, Text: text},
		Card: &Card{
			Type:        PermissionConsentCard,
			Permissions: []string{AddressPermission},
		},
		ShouldEndSession: true,
	})
}

// Empty is the reply to requests that take no spoken response
func Empty() *ResponseEnvelope {
	return envelope(Response{})
}

// StripSSML removes every tag from ssml, keeping the text between them
func StripSSML(ssml string) string {
	z := html.NewTokenizer(strings.NewReader(ssml))

	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
