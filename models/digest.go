package models

// DefaultDigestHour is the local hour the daily digest is sent at when unset
const DefaultDigestHour = 8

// DefaultTimezone is used when the remote config names no timezone
const DefaultTimezone = "Asia/Seoul"

// DigestConfig is the remote JSON document that drives the daily digest
type DigestConfig struct {
	Webhook DigestWebhook `json:"webhook"`
	App     DigestApp     `json:"app"`
	Events  DigestEvents  `json:"events"`
}

type DigestWebhook struct {
	URL      string `json:"url"`
	Enabled  bool   `json:"enabled"`
	Hour     int    `json:"hour"`
	Preamble string `json:"preamble"`
}

type DigestApp struct {
	Timezone string `json:"timezone"`
	Name     string `json:"name"`
	Version  string `json:"version"`
}

type DigestEvents struct {
	URL string `json:"url"`
}

// SendHour returns the configured send hour, defaulting to DefaultDigestHour
func (c DigestConfig) SendHour() int {
	if c.Webhook.Hour == 0 {
		return DefaultDigestHour
	}
	return c.Webhook.Hour
}

// Event is one entry of the events document
type Event struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EventList is the events document
type EventList struct {
	Events []Event `json:"events"`
}
