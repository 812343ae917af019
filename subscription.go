package roommedia

const (
	subscriptionStatusSubscribed = "SUBSCRIBED"
	subscriptionStatusPending    = "PENDING"
	subscriptionStatusFailed     = "FAILED"
)

// SubscriptionAck is one per-channel entry of a channel-subscription
// acknowledgement payload.
type SubscriptionAck struct {
	ChannelID string `json:"channelId"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// SubscriptionResult groups acknowledged channels by outcome, input order
// preserved inside each bucket. Failures maps a failed channel id to the
// server's reason, or to the raw status when the status itself was unknown.
type SubscriptionResult struct {
	Subscribed []string
	Pending    []string
	Failed     []string
	Failures   map[string]string
}

// BucketSubscriptionAcks reshapes the flat acknowledgement list into
// per-outcome buckets. An unknown status counts as a failure.
func BucketSubscriptionAcks(acks []SubscriptionAck) SubscriptionResult {
	result := SubscriptionResult{
		Subscribed: []string{},
		Pending:    []string{},
		Failed:     []string{},
		Failures:   make(map[string]string),
	}
	for _, ack := range acks {
		switch ack.Status {
		case subscriptionStatusSubscribed:
			result.Subscribed = append(result.Subscribed, ack.ChannelID)
		case subscriptionStatusPending:
			result.Pending = append(result.Pending, ack.ChannelID)
		case subscriptionStatusFailed:
			result.Failed = append(result.Failed, ack.ChannelID)
			result.Failures[ack.ChannelID] = ack.Reason
		default:
			result.Failed = append(result.Failed, ack.ChannelID)
			result.Failures[ack.ChannelID] = ack.Status
		}
	}
	return result
}
