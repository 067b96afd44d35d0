package service

import (
	"fmt"
	"html"
	"time"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
	offerRepo "github.com/reshetovitsme/offer-listener/internal/modules/offer/repository"
	"github.com/reshetovitsme/offer-listener/internal/shared/text"
	"github.com/samber/oops"
)

const feedSize = 50

// Service handles RSS feed generation for recently delivered offers
type Service struct {
	offerRepo offerRepo.Repository
}

// New creates a new feed service
func New(offerRepo offerRepo.Repository) *Service {
	return &Service{
		offerRepo: offerRepo,
	}
}

// GenerateFeed builds the feed of the latest delivered offers
func (s *Service) GenerateFeed(baseURL string) (*feeds.Feed, error) {
	offers, err := s.offerRepo.GetOffers(feedSize)
	if err != nil {
		return nil, oops.With("context", "failed to get offers").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       "Offer listener - recent offers",
		Link:        &feeds.Link{Href: baseURL + "/offers.rss"},
		Description: "Offers forwarded from monitored Telegram channels",
		Created:     time.Now(),
	}
	if len(offers) > 0 {
		feed.Updated = offers[0].SubmittedAt
	}

	items := make([]*feeds.Item, 0, len(offers))
	for _, offer := range offers {
		items = append(items, s.offerToFeedItem(offer))
	}

	feed.Items = items
	return feed, nil
}

func (s *Service) offerToFeedItem(offer *domain.Offer) *feeds.Item {
	content := fmt.Sprintf("<p>%s</p>", html.EscapeString(offer.RawText))
	if offer.ImageURL != "" {
		content += fmt.Sprintf(`<p><img src="%s"/></p>`, html.EscapeString(offer.ImageURL))
	}

	return &feeds.Item{
		Title:       text.Truncate(offer.RawText, 100),
		Link:        &feeds.Link{Href: offer.URL},
		Description: offer.RawText,
		Content:     content,
		Author:      &feeds.Author{Name: offer.SourceChannel},
		Created:     offer.SubmittedAt,
		Id:          offer.Key.String(),
	}
}
