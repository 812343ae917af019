package roommedia

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeDeviceIDResolver struct {
	mu      sync.Mutex
	calls   map[DeviceType]string
	resolve func(requestedID, label string, kind DeviceType) (string, error)
}

func (f *fakeDeviceIDResolver) Resolve(_ context.Context, requestedID, label string, kind DeviceType) (string, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[DeviceType]string)
	}
	f.calls[kind] = requestedID
	f.mu.Unlock()
	return f.resolve(requestedID, label, kind)
}

func TestResolveDefaults(t *testing.T) {
	devices := &fakeDeviceIDResolver{resolve: func(string, string, DeviceType) (string, error) {
		t.Fatal("resolver must not be called without preferred device ids")
		return "", nil
	}}

	constraints := NewMediaConstraintResolver(devices).Resolve(context.Background(), MediaCallOptions{})
	require.Equal(t, TrackConstraint{Enabled: true}, constraints.Audio)
	require.Equal(t, TrackConstraint{Enabled: false}, constraints.Video)

	encoded, err := json.Marshal(constraints)
	require.NoError(t, err)
	require.JSONEq(t, `{"audio": true, "video": false}`, string(encoded))
}

func TestResolveFallbackOnLookupFailure(t *testing.T) {
	devices := &fakeDeviceIDResolver{resolve: func(string, string, DeviceType) (string, error) {
		return "", errors.New("no matching device")
	}}

	constraints := NewMediaConstraintResolver(devices).Resolve(context.Background(), MediaCallOptions{
		MicID: "bad-id",
		CamID: "bad-id",
		Video: &TrackConstraint{Enabled: true},
	})

	// lookup failure degrades to the unconstrained value, never an error
	require.Equal(t, TrackConstraint{Enabled: true}, constraints.Audio)
	require.Equal(t, TrackConstraint{Enabled: true}, constraints.Video)
}

func TestResolveNarrowsToResolvedDevices(t *testing.T) {
	devices := &fakeDeviceIDResolver{resolve: func(requestedID, _ string, kind DeviceType) (string, error) {
		return "resolved-" + kind.String(), nil
	}}

	constraints := NewMediaConstraintResolver(devices).Resolve(context.Background(), MediaCallOptions{
		MicID:    "mic-1",
		MicLabel: "Desk Mic",
		CamID:    "cam-1",
	})

	require.NotNil(t, constraints.Audio.Track)
	require.Equal(t, "resolved-audioinput", constraints.Audio.Track.DeviceID.Exact)
	require.True(t, constraints.Audio.Enabled)

	// a preferred cam turns the video-off default into a pinned constraint
	require.NotNil(t, constraints.Video.Track)
	require.Equal(t, "resolved-videoinput", constraints.Video.Track.DeviceID.Exact)
	require.True(t, constraints.Video.Enabled)

	require.Equal(t, "mic-1", devices.calls[DeviceTypeAudioIn])
	require.Equal(t, "cam-1", devices.calls[DeviceTypeVideo])
}

func TestResolveEmptyResolvedIDLeavesConstraintAlone(t *testing.T) {
	devices := &fakeDeviceIDResolver{resolve: func(string, string, DeviceType) (string, error) {
		return "", nil
	}}

	constraints := NewMediaConstraintResolver(devices).Resolve(context.Background(), MediaCallOptions{MicID: "mic-1"})
	require.Equal(t, TrackConstraint{Enabled: true}, constraints.Audio)
}

func TestResolveDoesNotMutateCallerOptions(t *testing.T) {
	devices := &fakeDeviceIDResolver{resolve: func(string, string, DeviceType) (string, error) {
		return "resolved", nil
	}}

	callerAudio := &TrackConstraint{Enabled: true, Track: &MediaTrackConstraints{Width: 1280}}
	constraints := NewMediaConstraintResolver(devices).Resolve(context.Background(), MediaCallOptions{
		Audio: callerAudio,
		MicID: "mic-1",
	})

	// caller fields survive on the output next to the narrowing
	require.Equal(t, 1280, constraints.Audio.Track.Width)
	require.Equal(t, "resolved", constraints.Audio.Track.DeviceID.Exact)

	// the caller's object is untouched
	require.Nil(t, callerAudio.Track.DeviceID)
	require.Equal(t, 1280, callerAudio.Track.Width)
}

func TestTrackConstraintJSONUnion(t *testing.T) {
	var boolean TrackConstraint
	require.NoError(t, json.Unmarshal([]byte(`true`), &boolean))
	require.Equal(t, TrackConstraint{Enabled: true}, boolean)

	var object TrackConstraint
	require.NoError(t, json.Unmarshal([]byte(`{"deviceId": {"exact": "dev-1"}}`), &object))
	require.True(t, object.Enabled)
	require.Equal(t, "dev-1", object.Track.DeviceID.Exact)

	encoded, err := json.Marshal(object)
	require.NoError(t, err)
	require.JSONEq(t, `{"deviceId": {"exact": "dev-1"}}`, string(encoded))

	encoded, err = json.Marshal(TrackConstraint{Enabled: false})
	require.NoError(t, err)
	require.Equal(t, `false`, string(encoded))
}
