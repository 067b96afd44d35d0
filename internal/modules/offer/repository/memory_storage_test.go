package repository

import (
	"testing"

	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urls(offers []*domain.Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.URL)
	}
	return out
}

func TestGetOffersNewestFirst(t *testing.T) {
	repo := NewMemoryStorage(3)

	offers, err := repo.GetOffers(10)
	require.NoError(t, err)
	assert.Empty(t, offers)

	for _, url := range []string{"a", "b"} {
		require.NoError(t, repo.SaveOffer(&domain.Offer{URL: url}))
	}

	offers, err = repo.GetOffers(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, urls(offers))
}

func TestSaveOfferOverwritesOldest(t *testing.T) {
	repo := NewMemoryStorage(3)

	for _, url := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.SaveOffer(&domain.Offer{URL: url}))
	}

	offers, err := repo.GetOffers(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b"}, urls(offers))

	offers, err = repo.GetOffers(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, urls(offers))
}
