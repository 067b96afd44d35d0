package repository

import (
	"github.com/reshetovitsme/offer-listener/internal/modules/message/domain"
)

// SeenStore records which messages were already processed.
// Seen must check and record in one atomic step.
type SeenStore interface {
	Seen(key domain.Key) bool
	Len() int
}
