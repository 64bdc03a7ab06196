package skill

import (
	"html"

	"github.com/randytsao24/wastewizard/internal/collection"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

// Card titles
const (
	welcomeTitle  = "Welcome"
	goodbyeTitle  = "Session Ended"
	scheduleTitle = "Curbside Collection Schedule"
	disposalTitle = "Waste Disposal"
)

const welcomeSSML = "<speak>" +
	"<p>Welcome to the Toronto Waste Wizard! </p>" +
	"<p>You can find out about your collection schedule by asking </p>" +
	"<p>'Is it recycling this week?' </p>" +
	"<p>Or, you can ask about waste materials, for example, </p>" +
	"<p>'Look up aluminum foil' </p>" +
	"<p>Go ahead and give it a try!</p>" +
	"</speak>"

const welcomeRepromptSSML = "<speak>" +
	"<p>I'm sorry, I didn't understand. Why don't you try asking, </p>" +
	"<p>'Is it recycling this week?'</p>" +
	"</speak>"

const goodbyeText = "Thanks for being green!"

type failure struct {
	reached State
	reason  outcome.Reason
}

// scheduleFailures holds the sentence for each way the schedule lookup can
// stop, keyed by the last state reached and the reason the next stage gave.
var scheduleFailures = map[failure]string{
	{Start, outcome.NotInServiceArea}: "I'm sorry, I can only look up collection schedules for Toronto residents.",
	{Start, outcome.PermissionDenied}: "I'm sorry, I'll need access to your address to look up your collection schedule. " +
		"Please see your Alexa app to enable permission.",
	{Start, outcome.AddressNotFound}: "I'm sorry, I'm having trouble with your address. " +
		"I can only look up collection schedules for Toronto residents. " +
		"Please check the device location settings in your Alexa app.",
	{Start, outcome.TemporaryLookupFailure}: "I'm sorry, I'm having trouble looking up your address " +
		"to check your collection schedule. Please try again later.",

	{AddressResolved, outcome.RemoteUnavailable}: "I'm sorry, I am having trouble getting coordinates for your address " +
		"to look up your collection schedule. Please try again later.",
	{AddressResolved, outcome.AddressNotFound}: "I'm sorry, I am having trouble getting coordinates for your address " +
		"to look up your collection schedule. Please check your address in your Alexa app.",

	{GeoCoded, outcome.RemoteUnavailable}: "I'm sorry, I am having trouble accessing the City of Toronto website " +
		"to look up your collection area. Please try again later.",
	{GeoCoded, outcome.NoMatch}: "I'm sorry, I could not match your address to a collection area. " +
		"Please check your address in your Alexa app.",

	{ZoneResolved, outcome.RemoteUnavailable}: "I'm sorry, I am having trouble accessing the City of Toronto website " +
		"to look up your collection schedule. Please try again later.",
	{ZoneResolved, outcome.NoMatch}: "I'm sorry, I can't find the next collection date. Please try again later.",
}

// reasonFallbacks covers a reason arriving from a stage that does not
// normally produce it
var reasonFallbacks = map[outcome.Reason]string{
	outcome.NotInServiceArea:       scheduleFailures[failure{Start, outcome.NotInServiceArea}],
	outcome.PermissionDenied:       scheduleFailures[failure{Start, outcome.PermissionDenied}],
	outcome.AddressNotFound:        scheduleFailures[failure{AddressResolved, outcome.AddressNotFound}],
	outcome.RemoteUnavailable:      "I'm sorry, I am having trouble reaching the City of Toronto. Please try again later.",
	outcome.TemporaryLookupFailure: scheduleFailures[failure{Start, outcome.TemporaryLookupFailure}],
	outcome.NoMatch:                scheduleFailures[failure{ZoneResolved, outcome.NoMatch}],
}

const unknownFailure = "I'm sorry, I couldn't look up your collection schedule. Please try again later."

// ScheduleText is the spoken answer for a finished schedule lookup
func ScheduleText(res Result) string {
	if res.OK() {
		return "The next collection date is " +
			collection.LabelDate(res.Collection.Date, res.Query, res.Tomorrow) +
			" which includes " +
			collection.FormatItemList(res.Collection.Items()) + "."
	}

	reason := outcome.ReasonOf(res.Err)
	if msg, ok := scheduleFailures[failure{res.Reached, reason}]; ok {
		return msg
	}
	if msg, ok := reasonFallbacks[reason]; ok {
		return msg
	}
	return unknownFailure
}

const materialNotUnderstood = "I'm sorry, I didn't understand the material you are asking about. " +
	"Can you please repeat your request?"

func materialUnavailable(term string) string {
	return "I'm sorry, I am having trouble accessing the City of Toronto website to look up " + term +
		". Please try again later."
}

func materialNotFoundSSML(term string) string {
	return "<speak><p>I'm sorry, I couldn't find " + html.EscapeString(term) +
		" on the City of Toronto website. You can try calling " +
		"<say-as interpret-as='digits'>311</say-as> and ask the city</p></speak>"
}

func materialFound(keyword, instructions string) string {
	return "Here's what the City of Toronto says about " + keyword + ". " + instructions
}
