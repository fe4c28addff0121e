package prompt

import (
	"strings"
	"testing"

	"fogcast/internal/weather"
)

func testSnapshot() weather.Snapshot {
	return weather.Snapshot{
		Location: weather.Location{Name: "Boston", State: "MA"},
		Forecast: []weather.ForecastPeriod{
			{Name: "Today", DetailedForecast: "Patchy fog before 9am."},
			{Name: "Tonight", DetailedForecast: "Mostly clear."},
		},
	}
}

func TestCompose(t *testing.T) {
	c := NewComposer()
	got := c.Compose(testSnapshot(), "2026-08-23 07:15:00")

	wantLines := []string{
		"Below is the weather forecast for Boston, MA:",
		" - Today: Patchy fog before 9am.",
		" - Tonight: Mostly clear.",
		"Current local time: 2026-08-23 07:15:00",
	}
	last := -1
	for _, line := range wantLines {
		idx := strings.Index(got, line)
		if idx < 0 {
			t.Fatalf("prompt missing %q:\n%s", line, got)
		}
		if idx < last {
			t.Fatalf("prompt lines out of order at %q:\n%s", line, got)
		}
		last = idx
	}

	// The style block comes last.
	if !strings.HasSuffix(strings.TrimSpace(got), strings.TrimSpace(defaultStyle)) {
		t.Fatalf("prompt does not end with the style block:\n%s", got)
	}
}

func TestComposeDeterministic(t *testing.T) {
	c := NewComposer()
	snap := testSnapshot()

	a := c.Compose(snap, "2026-08-23 07:15:00")
	b := c.Compose(snap, "2026-08-23 07:15:00")
	if a != b {
		t.Fatal("Compose is not deterministic for identical input")
	}
}

func TestComposeCustomStyle(t *testing.T) {
	c := NewComposerWithStyle("Keep it to one sentence.")
	got := c.Compose(testSnapshot(), "2026-08-23 07:15:00")

	if !strings.HasSuffix(got, "Keep it to one sentence.") {
		t.Fatalf("prompt does not end with custom style:\n%s", got)
	}
	if strings.Contains(got, "classical radio station") {
		t.Fatal("embedded style leaked into prompt with custom style set")
	}
}
