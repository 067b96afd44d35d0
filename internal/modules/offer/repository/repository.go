package repository

import (
	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
)

// Repository keeps the offers that were delivered recently
type Repository interface {
	SaveOffer(offer *domain.Offer) error
	GetOffers(limit int) ([]*domain.Offer, error)
}
