package format

import (
	"testing"
	"time"
)

func TestKRWThousandSeparators(t *testing.T) {
	cases := map[int64]string{
		0:       "0원",
		900:     "900원",
		27900:   "27,900원",
		1234567: "1,234,567원",
		-5000:   "-5,000원",
	}
	for in, want := range cases {
		if got := KRW(in); got != want {
			t.Errorf("KRW(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFmtDateByLocale(t *testing.T) {
	ts := time.Date(2025, 11, 26, 18, 30, 12, 0, time.UTC)
	if got := FmtDate(ts, "ko"); got != "2025-11-26" {
		t.Fatalf("FmtDate ko = %q", got)
	}
	if got := FmtDate(ts, "en"); got != "Nov 26, 2025" {
		t.Fatalf("FmtDate en = %q", got)
	}
}

func TestOrderDate(t *testing.T) {
	ts := time.Date(2025, 11, 26, 18, 30, 12, 0, time.UTC)
	if got := OrderDate(ts); got != "25.11.26" {
		t.Fatalf("OrderDate = %q", got)
	}
	if got := OrderDate(time.Time{}); got != "" {
		t.Fatalf("zero time should render empty, got %q", got)
	}
}
