package bot

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCurrentPeriod(t *testing.T) {
	cases := []struct {
		name     string
		now      time.Time
		startDay int
		want     string
	}{
		{
			name:     "on start day",
			now:      time.Date(2025, time.May, 6, 10, 0, 0, 0, time.UTC),
			startDay: 6,
			want:     "mayo",
		},
		{
			name:     "after start day",
			now:      time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC),
			startDay: 6,
			want:     "mayo",
		},
		{
			name:     "before start day belongs to previous month",
			now:      time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC),
			startDay: 6,
			want:     "abril",
		},
		{
			name:     "early january wraps to december",
			now:      time.Date(2025, time.January, 3, 10, 0, 0, 0, time.UTC),
			startDay: 6,
			want:     "diciembre",
		},
		{
			name:     "start day one never shifts",
			now:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			startDay: 1,
			want:     "enero",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := currentPeriod(c.now, c.startDay); got != c.want {
				t.Errorf("currentPeriod(%v, %d) = %q, want %q", c.now, c.startDay, got, c.want)
			}
		})
	}
}

func TestElapsedScoringDays(t *testing.T) {
	// 2025 is not a leap year: enero runs Jan 6 - Feb 6 (31 days),
	// febrero Feb 6 - Mar 6 (28 days), marzo is clamped at now.
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	total, perMonth := elapsedScoringDays(now, 6)

	want := map[string]int{"enero": 31, "febrero": 28, "marzo": 4}
	if diff := cmp.Diff(want, perMonth); diff != "" {
		t.Errorf("perMonth mismatch (-want +got):\n%s", diff)
	}
	if total != 63 {
		t.Errorf("total = %d, want 63", total)
	}
}

func TestElapsedScoringDaysBeforeFirstPeriod(t *testing.T) {
	now := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)
	total, perMonth := elapsedScoringDays(now, 6)

	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if len(perMonth) != 0 {
		t.Errorf("perMonth = %v, want empty", perMonth)
	}
}

func TestElapsedScoringDaysFullYear(t *testing.T) {
	now := time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)
	total, perMonth := elapsedScoringDays(now, 6)

	if len(perMonth) != 12 {
		t.Fatalf("perMonth has %d months, want 12", len(perMonth))
	}
	if perMonth["enero"] != 31 || perMonth["febrero"] != 28 {
		t.Errorf("perMonth[enero]=%d perMonth[febrero]=%d, want 31 and 28",
			perMonth["enero"], perMonth["febrero"])
	}
	// diciembre is clamped at now: Dec 6 00:00 to Dec 31 23:00 is 25 full days
	if perMonth["diciembre"] != 25 {
		t.Errorf("perMonth[diciembre] = %d, want 25", perMonth["diciembre"])
	}
	if total != 359 {
		t.Errorf("total = %d, want 359", total)
	}
}
