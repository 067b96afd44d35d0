package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLink(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		isImage bool
		found   bool
	}{
		{name: "plain", text: "Big sale! http://shop.example/x", want: "http://shop.example/x", found: true},
		{name: "first of many", text: "a https://one.example/1 b http://two.example/2", want: "https://one.example/1", found: true},
		{name: "stops at whitespace", text: "https://shop.example/p?id=1\nnext line", want: "https://shop.example/p?id=1", found: true},
		{name: "stops at no-break space", text: "Oferta https://shop.example/x\u00a0agora", want: "https://shop.example/x", found: true},
		{name: "stops at em space", text: "Oferta https://shop.example/y\u2003agora", want: "https://shop.example/y", found: true},
		{name: "stops at vertical tab", text: "https://shop.example/z\vnext", want: "https://shop.example/z", found: true},
		{name: "stops at line separator", text: "https://shop.example/w\u2028next", want: "https://shop.example/w", found: true},
		{name: "image", text: "look https://cdn.example/promo.PNG", want: "https://cdn.example/promo.PNG", isImage: true, found: true},
		{name: "jpeg", text: "https://cdn.example/a.jpeg", want: "https://cdn.example/a.jpeg", isImage: true, found: true},
		{name: "image extension mid-path", text: "https://cdn.example/a.png/buy", want: "https://cdn.example/a.png/buy", found: true},
		{name: "no scheme", text: "visit shop.example today", found: false},
		{name: "ftp only", text: "ftp://files.example/x", found: false},
		{name: "empty", text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, ok := ExtractLink(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, link.URL)
			assert.Equal(t, tt.isImage, link.IsImage)
		})
	}
}

func TestIsImageURL(t *testing.T) {
	for _, url := range []string{"http://x/a.png", "http://x/a.jpg", "http://x/a.jpeg", "http://x/a.gif"} {
		assert.True(t, IsImageURL(url), url)
	}
	for _, url := range []string{"http://x/a.webp", "http://x/a", "http://x/a.png?w=10", "http://x/a.html"} {
		assert.False(t, IsImageURL(url), url)
	}
}
