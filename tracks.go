package roommedia

// TrackState describes one local media track as the UI sees it. Medium is
// "audio" or "video".
type TrackState struct {
	ID      string
	Medium  string
	Enabled bool
}

// SetTracksEnabled returns a copy of tracks with every track of the given
// medium toggled. The input slice is left untouched.
func SetTracksEnabled(tracks []TrackState, medium string, enabled bool) []TrackState {
	updated := make([]TrackState, len(tracks))
	copy(updated, tracks)
	for i := range updated {
		if updated[i].Medium == medium {
			updated[i].Enabled = enabled
		}
	}
	return updated
}

// EnabledTrackIDs lists the ids of enabled tracks of the given medium, in
// input order.
func EnabledTrackIDs(tracks []TrackState, medium string) []string {
	ids := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if track.Medium == medium && track.Enabled {
			ids = append(ids, track.ID)
		}
	}
	return ids
}
