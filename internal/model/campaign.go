// internal/model/campaign.go
package model

import "time"

// Channel is a named outreach medium with its own content shape.
type Channel string

const (
    ChannelEmail  Channel = "email"
    ChannelSocial Channel = "social"
    ChannelSMS    Channel = "sms"
)

// ParseChannel maps a request string onto the channel enum.
func ParseChannel(s string) (Channel, bool) {
    switch Channel(s) {
    case ChannelEmail, ChannelSocial, ChannelSMS:
        return Channel(s), true
    }
    return "", false
}

// Campaign statuses.
const (
    CampaignStatusComplete = "complete"
    CampaignStatusPartial  = "partial"
)

// ContentBlock is the generated content for one channel. Subject is only set
// for channels that carry one (email); Body and CallToAction are always set.
type ContentBlock struct {
    Channel      Channel `json:"channel"`
    Subject      string  `json:"subject,omitempty"`
    Body         string  `json:"body"`
    CallToAction string  `json:"call_to_action"`
}

// Campaign aggregates per-channel generated content for one persona. Every
// successfully generated channel appears exactly once in Blocks; channels
// that failed are omitted and reported separately to the caller. Status is
// "complete" only when every requested channel succeeded.
type Campaign struct {
    ID             string         `json:"id,omitempty"`
    PersonaID      string         `json:"persona_id"`
    Blocks         []ContentBlock `json:"content_blocks"`
    Status         string         `json:"status"`
    DeliveryStatus string         `json:"delivery_status,omitempty"`
    CreatedAt      time.Time      `json:"created_at"`
}
