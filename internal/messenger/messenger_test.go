package messenger

import (
	"net/url"
	"strings"
	"testing"
)

func TestDeepLinkEncodesMessage(t *testing.T) {
	b := NewLinkBuilder("https://m.me/oesterscafeandresto")
	link := b.DeepLink("Hello! I'd like to place an order:\n\nTOTAL AMOUNT: ₱218")

	if !strings.HasPrefix(link, "https://m.me/oesterscafeandresto?text=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	if strings.Contains(link, "+") {
		t.Errorf("spaces must be encoded as %%20, got %q", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	text := parsed.Query().Get("text")
	if !strings.Contains(text, "TOTAL AMOUNT: ₱218") {
		t.Errorf("round-tripped text lost content: %q", text)
	}
}

func TestNewLinkBuilderTrimsTrailingSlash(t *testing.T) {
	b := NewLinkBuilder("https://m.me/store/")
	link := b.DeepLink("hi")
	if link != "https://m.me/store?text=hi" {
		t.Errorf("unexpected link: %q", link)
	}
}
