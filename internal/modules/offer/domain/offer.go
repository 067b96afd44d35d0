package domain

import (
	"time"

	messageDomain "github.com/reshetovitsme/offer-listener/internal/modules/message/domain"
)

// Offer is the record submitted to the ingest endpoint. Only the tagged fields
// go over the wire.
type Offer struct {
	URL           string `json:"url"`
	RawText       string `json:"raw_text"`
	SourceChannel string `json:"source_channel"`
	ImageURL      string `json:"image_url,omitempty"`

	Key         messageDomain.Key `json:"-"`
	ChatID      string            `json:"-"`
	SubmittedAt time.Time         `json:"-"`
}

// Link is the first URL found in a message.
type Link struct {
	URL     string
	IsImage bool
}
