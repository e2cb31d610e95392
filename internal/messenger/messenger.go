package messenger

import (
	"net/url"
	"strings"
)

// LinkBuilder constructs chat deep links that open a conversation with the
// store, pre-filled with the order message. The handoff is a client-side
// navigation: the storefront opens the link, no API call is made and no
// response is ever inspected.
type LinkBuilder struct {
	baseURL string
}

// NewLinkBuilder creates a LinkBuilder targeting the given channel base URL,
// e.g. https://m.me/oesterscafeandresto.
func NewLinkBuilder(baseURL string) *LinkBuilder {
	return &LinkBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

// DeepLink returns {base}?text={url-encoded message}. Spaces are encoded as
// %20 rather than + so chat clients render the prefilled text verbatim.
func (b *LinkBuilder) DeepLink(message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return b.baseURL + "?text=" + encoded
}
