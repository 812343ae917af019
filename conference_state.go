package roommedia

import (
	"strconv"
)

// ConferenceState is the typed form of a raw conference-state payload.
type ConferenceState struct {
	ConferenceID          string
	Speaker               bool
	Locked                bool
	RecordingActive       bool
	ParticipantCount      int
	ScreenSharingEndpoint string
}

// DecodeConferenceState coerces a loosely typed conference-state payload into
// a ConferenceState. The server has sent boolean fields as true, "true" and 1
// over time, and counters as both numbers and strings, so every field goes
// through one coercion helper with a fixed default. Keys outside the known set
// are ignored.
func DecodeConferenceState(payload map[string]interface{}) ConferenceState {
	return ConferenceState{
		ConferenceID:          stringPayloadField(payload, "conferenceId", ""),
		Speaker:               boolPayloadField(payload, "speaker", false),
		Locked:                boolPayloadField(payload, "locked", false),
		RecordingActive:       boolPayloadField(payload, "recordingActive", false),
		ParticipantCount:      intPayloadField(payload, "participantCount", 0),
		ScreenSharingEndpoint: stringPayloadField(payload, "screenSharingEndpoint", ""),
	}
}

func boolPayloadField(payload map[string]interface{}, key string, defaultValue bool) bool {
	value, ok := payload[key]
	if !ok {
		return defaultValue
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	case float64:
		return v != 0
	default:
		return defaultValue
	}
}

func intPayloadField(payload map[string]interface{}, key string, defaultValue int) int {
	value, ok := payload[key]
	if !ok {
		return defaultValue
	}
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
		return defaultValue
	default:
		return defaultValue
	}
}

func stringPayloadField(payload map[string]interface{}, key string, defaultValue string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return defaultValue
}
