package roommedia

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MemberID is a participant identifier as sent by the signaling server. The
// server has used both JSON strings and bare numbers for it over time, so the
// decoder accepts either; the value is always kept in string form.
type MemberID string

func (id *MemberID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = MemberID(value)
		return nil
	}
	var value json.Number
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*id = MemberID(value.String())
	return nil
}

// RawParticipantLayout is one participant's sub-layout inside a raw canvas
// description. X, Y, Scale and Hscale are absolute units in the same unit
// space as the canvas scale. Fields the server sends that this client does not
// know end up in Extra and are forwarded untouched.
type RawParticipantLayout struct {
	MemberID MemberID `json:"memberId"`
	AudioPos float64  `json:"audioPos"`
	XPos     float64  `json:"xPos"`
	YPos     float64  `json:"yPos"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Scale    float64  `json:"scale"`
	Hscale   float64  `json:"hscale"`
	Overlap  int      `json:"overlap"`

	Extra map[string]json.RawMessage `json:"-"`
}

var rawParticipantLayoutFields = [...]string{
	"memberId", "audioPos", "xPos", "yPos", "x", "y", "scale", "hscale", "overlap",
}

func (layout *RawParticipantLayout) UnmarshalJSON(data []byte) error {
	type rawParticipantLayout RawParticipantLayout
	var decoded rawParticipantLayout
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := extraFields(data, rawParticipantLayoutFields[:])
	if err != nil {
		return err
	}
	decoded.Extra = extra
	*layout = RawParticipantLayout(decoded)
	return nil
}

// RawCanvasInfo is the canvas description as it arrives from the signaling
// server: absolute units plus one global scale that all per-participant
// values are relative to.
type RawCanvasInfo struct {
	CanvasID      string                 `json:"canvasId"`
	LayoutFloorID string                 `json:"layoutFloorId"`
	Scale         float64                `json:"scale"`
	CanvasLayouts []RawParticipantLayout `json:"canvasLayouts"`

	Extra map[string]json.RawMessage `json:"-"`
}

var rawCanvasInfoFields = [...]string{
	"canvasId", "layoutFloorId", "scale", "canvasLayouts",
}

func (canvas *RawCanvasInfo) UnmarshalJSON(data []byte) error {
	type rawCanvasInfo RawCanvasInfo
	var decoded rawCanvasInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := extraFields(data, rawCanvasInfoFields[:])
	if err != nil {
		return err
	}
	decoded.Extra = extra
	*canvas = RawCanvasInfo(decoded)
	return nil
}

// ParticipantLayout is the UI-ready form of a participant sub-layout:
// positions and sizes as percentage strings relative to the whole canvas.
type ParticipantLayout struct {
	StartX           string  `json:"startX"`
	StartY           string  `json:"startY"`
	PercentageWidth  string  `json:"percentageWidth"`
	PercentageHeight string  `json:"percentageHeight"`
	ParticipantID    string  `json:"participantId"`
	AudioPos         float64 `json:"audioPos"`
	XPos             float64 `json:"xPos"`
	YPos             float64 `json:"yPos"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (layout ParticipantLayout) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(layout.Extra)+8)
	for field, value := range layout.Extra {
		out[field] = value
	}
	out["startX"] = layout.StartX
	out["startY"] = layout.StartY
	out["percentageWidth"] = layout.PercentageWidth
	out["percentageHeight"] = layout.PercentageHeight
	out["participantId"] = layout.ParticipantID
	out["audioPos"] = layout.AudioPos
	out["xPos"] = layout.XPos
	out["yPos"] = layout.YPos
	return json.Marshal(out)
}

// CanvasInfo is the normalized canvas description. CanvasLayouts maps 1:1,
// order preserved, onto the raw canvas layouts it was built from.
type CanvasInfo struct {
	CanvasID      string              `json:"canvasId"`
	LayoutFloorID string              `json:"layoutFloorId"`
	Scale         float64             `json:"scale"`
	LayoutOverlap bool                `json:"layoutOverlap"`
	CanvasLayouts []ParticipantLayout `json:"canvasLayouts"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (canvas CanvasInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(canvas.Extra)+5)
	for field, value := range canvas.Extra {
		out[field] = value
	}
	out["canvasId"] = canvas.CanvasID
	out["layoutFloorId"] = canvas.LayoutFloorID
	out["scale"] = canvas.Scale
	out["layoutOverlap"] = canvas.LayoutOverlap
	out["canvasLayouts"] = canvas.CanvasLayouts
	return json.Marshal(out)
}

// NormalizeCanvasInfo converts a raw canvas description to the UI-ready
// percentage form. LayoutOverlap is set when at least one sub-layout reports
// overlap == 1. The input is never modified; all output values are fresh
// copies. Returns InvalidCanvasScaleError when the canvas scale is not a
// finite positive number.
func NormalizeCanvasInfo(canvas *RawCanvasInfo) (*CanvasInfo, error) {
	if math.IsNaN(canvas.Scale) || math.IsInf(canvas.Scale, 0) || canvas.Scale <= 0 {
		return nil, fmt.Errorf("%w, scale = %v", InvalidCanvasScaleError, canvas.Scale)
	}

	normalized := &CanvasInfo{
		CanvasID:      canvas.CanvasID,
		LayoutFloorID: canvas.LayoutFloorID,
		Scale:         canvas.Scale,
		CanvasLayouts: make([]ParticipantLayout, len(canvas.CanvasLayouts)),
		Extra:         copyExtraFields(canvas.Extra),
	}
	for i, layout := range canvas.CanvasLayouts {
		normalized.CanvasLayouts[i] = ParticipantLayout{
			StartX:           percentOf(layout.X, canvas.Scale),
			StartY:           percentOf(layout.Y, canvas.Scale),
			PercentageWidth:  percentOf(layout.Scale, canvas.Scale),
			PercentageHeight: percentOf(layout.Hscale, canvas.Scale),
			ParticipantID:    string(layout.MemberID),
			AudioPos:         layout.AudioPos,
			XPos:             layout.XPos,
			YPos:             layout.YPos,
			Extra:            copyExtraFields(layout.Extra),
		}
		if layout.Overlap == 1 {
			normalized.LayoutOverlap = true
		}
	}
	return normalized, nil
}

// percentOf converts an absolute canvas unit to a percentage string rounded to
// two decimal places, half away from zero: 50/200 -> "25%", 1/3 -> "33.33%".
func percentOf(value, scale float64) string {
	percentage := math.Round(value/scale*100*100) / 100
	return strconv.FormatFloat(percentage, 'f', -1, 64) + "%"
}

func extraFields(data []byte, knownFields []string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, field := range knownFields {
		delete(fields, field)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func copyExtraFields(fields map[string]json.RawMessage) map[string]json.RawMessage {
	if fields == nil {
		return nil
	}
	copied := make(map[string]json.RawMessage, len(fields))
	for field, value := range fields {
		copied[field] = value
	}
	return copied
}
