package i18n

import "testing"

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("../../locales", "ko", []string{"ko", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := b.Resolve("ko;q=0.8, en;q=0.9")
	if got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestFallbackToKorean(t *testing.T) {
	b, err := Load("../../locales", "ko", []string{"ko", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Resolve("fr, de;q=0.9"); got != "ko" {
		t.Fatalf("expected ko fallback, got %s", got)
	}
	if got := b.T("de", "estimate.error.noitems"); got == "" || got == "estimate.error.noitems" {
		t.Fatalf("expected fallback translation, got %q", got)
	}
}
