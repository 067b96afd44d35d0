package service

import (
	"regexp"

	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
)

var (
	// \s in RE2 is ASCII only, so Unicode separators and \v are excluded explicitly
	linkPattern  = regexp.MustCompile(`https?://[^\s\p{Z}\x{0085}\x{FEFF}\v]+`)
	imagePattern = regexp.MustCompile(`(?i)\.(jpe?g|gif|png)$`)
)

// ExtractLink returns the first http(s) URL in text.
func ExtractLink(text string) (domain.Link, bool) {
	url := linkPattern.FindString(text)
	if url == "" {
		return domain.Link{}, false
	}
	return domain.Link{URL: url, IsImage: IsImageURL(url)}, true
}

// IsImageURL reports whether url ends with a direct image extension.
func IsImageURL(url string) bool {
	return imagePattern.MatchString(url)
}
