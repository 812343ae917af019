package roommedia

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type DeviceType uint

//goland:noinspection GoUnusedConst
const (
	DeviceTypeAudioIn DeviceType = iota
	DeviceTypeAudioOut
	DeviceTypeVideo
)

func (d DeviceType) String() string {
	return [...]string{
		"audioinput",
		"audiooutput",
		"videoinput",
	}[d]
}

// DeviceIDResolver maps a requested device id, with the device label as a
// fallback match, to the id of a device that is actually present. It returns
// an error when no matching device is found.
type DeviceIDResolver interface {
	Resolve(ctx context.Context, requestedID, label string, kind DeviceType) (string, error)
}

// DeviceIDConstraint narrows device selection: Exact must match, Ideal is a
// preference.
type DeviceIDConstraint struct {
	Exact string `json:"exact,omitempty"`
	Ideal string `json:"ideal,omitempty"`
}

// MediaTrackConstraints mirrors the per-track constraint object a
// getUserMedia-style acquisition primitive accepts.
type MediaTrackConstraints struct {
	DeviceID         *DeviceIDConstraint `json:"deviceId,omitempty"`
	Width            int                 `json:"width,omitempty"`
	Height           int                 `json:"height,omitempty"`
	FrameRate        int                 `json:"frameRate,omitempty"`
	EchoCancellation *bool               `json:"echoCancellation,omitempty"`
}

func (c *MediaTrackConstraints) clone() *MediaTrackConstraints {
	if c == nil {
		return nil
	}
	cloned := *c
	if c.DeviceID != nil {
		deviceID := *c.DeviceID
		cloned.DeviceID = &deviceID
	}
	if c.EchoCancellation != nil {
		echoCancellation := *c.EchoCancellation
		cloned.EchoCancellation = &echoCancellation
	}
	return &cloned
}

// TrackConstraint carries the wire union `boolean | MediaTrackConstraints`.
// A nil Track marshals as the plain boolean, a non-nil Track as the object.
type TrackConstraint struct {
	Enabled bool
	Track   *MediaTrackConstraints
}

func (c TrackConstraint) MarshalJSON() ([]byte, error) {
	if c.Track != nil {
		return json.Marshal(c.Track)
	}
	return json.Marshal(c.Enabled)
}

func (c *TrackConstraint) UnmarshalJSON(data []byte) error {
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err == nil {
		*c = TrackConstraint{Enabled: enabled}
		return nil
	}
	var track MediaTrackConstraints
	if err := json.Unmarshal(data, &track); err != nil {
		return err
	}
	*c = TrackConstraint{Enabled: true, Track: &track}
	return nil
}

func (c TrackConstraint) clone() TrackConstraint {
	return TrackConstraint{Enabled: c.Enabled, Track: c.Track.clone()}
}

// withExactDevice coerces a boolean constraint to an object and pins it to
// the resolved device.
func (c TrackConstraint) withExactDevice(deviceID string) TrackConstraint {
	track := c.Track.clone()
	if track == nil {
		track = &MediaTrackConstraints{}
	}
	track.DeviceID = &DeviceIDConstraint{Exact: deviceID}
	return TrackConstraint{Enabled: true, Track: track}
}

// MediaCallOptions is the caller's intent for a call: whether audio and video
// are wanted and, optionally, which devices to prefer. A nil Audio means
// "audio on", a nil Video means "video off".
type MediaCallOptions struct {
	Audio    *TrackConstraint
	MicID    string
	MicLabel string
	Video    *TrackConstraint
	CamID    string
	CamLabel string
}

// MediaStreamConstraints is ready to hand to a getUserMedia-style primitive.
type MediaStreamConstraints struct {
	Audio TrackConstraint `json:"audio"`
	Video TrackConstraint `json:"video"`
}

type MediaConstraintResolver struct {
	log     *logrus.Entry
	devices DeviceIDResolver
}

func NewMediaConstraintResolver(devices DeviceIDResolver) *MediaConstraintResolver {
	return &MediaConstraintResolver{
		log:     logrus.WithField("component", "mediaConstraintResolver"),
		devices: devices,
	}
}

// Resolve builds the constraints for device acquisition. A preferred mic or
// cam id is narrowed to the resolved device when the lookup succeeds; a failed
// lookup (or an empty resolved id) falls back to the unconstrained value
// instead of failing call setup. The two lookups carry no ordering dependency
// and run concurrently. Caller-supplied constraint objects are copied, never
// written to.
func (r *MediaConstraintResolver) Resolve(ctx context.Context, options MediaCallOptions) MediaStreamConstraints {
	audio := TrackConstraint{Enabled: true}
	if options.Audio != nil {
		audio = options.Audio.clone()
	}
	video := TrackConstraint{Enabled: false}
	if options.Video != nil {
		video = options.Video.clone()
	}

	var group errgroup.Group
	group.Go(func() error {
		if options.MicID == "" {
			return nil
		}
		deviceID, err := r.devices.Resolve(ctx, options.MicID, options.MicLabel, DeviceTypeAudioIn)
		if err != nil {
			r.log.WithError(err).Infof("cannot resolve microphone %q, falling back to default device", options.MicID)
			return nil
		}
		if deviceID == "" {
			return nil
		}
		audio = audio.withExactDevice(deviceID)
		return nil
	})
	group.Go(func() error {
		if options.CamID == "" {
			return nil
		}
		deviceID, err := r.devices.Resolve(ctx, options.CamID, options.CamLabel, DeviceTypeVideo)
		if err != nil {
			r.log.WithError(err).Infof("cannot resolve camera %q, falling back to default device", options.CamID)
			return nil
		}
		if deviceID == "" {
			return nil
		}
		video = video.withExactDevice(deviceID)
		return nil
	})
	// lookup failures are swallowed above, Wait never reports one
	_ = group.Wait()

	return MediaStreamConstraints{Audio: audio, Video: video}
}
