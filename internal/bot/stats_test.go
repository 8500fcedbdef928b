package bot

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/puntosbot/pkg/models"
)

func TestTextBar(t *testing.T) {
	cases := []struct {
		count, maxCount int
		want            string
	}{
		{0, 10, "⬜"},
		{3, 5, "⬛⬛⬛"},
		{5, 10, "⬛⬛⬛⬛"},
		{10, 10, "⬛⬛⬛⬛⬛⬛⬛⬛"},
		{1, 100, "⬛"},
	}
	for _, c := range cases {
		if got := textBar(c.count, c.maxCount); got != c.want {
			t.Errorf("textBar(%d, %d) = %q, want %q", c.count, c.maxCount, got, c.want)
		}
	}
}

func TestStdDeviation(t *testing.T) {
	if got := stdDeviation(nil); got != 0 {
		t.Errorf("stdDeviation(nil) = %v, want 0", got)
	}
	if got := stdDeviation([]int{5, 5, 5}); got != 0 {
		t.Errorf("stdDeviation of constant scores = %v, want 0", got)
	}
	if got := stdDeviation([]int{2, 4}); math.Abs(got-1) > 1e-9 {
		t.Errorf("stdDeviation([2 4]) = %v, want 1", got)
	}
}

func TestStabilityLabel(t *testing.T) {
	if got := stabilityLabel(5); got != "has mantenido una consistencia notable en tus puntuaciones." {
		t.Errorf("stabilityLabel(5) = %q", got)
	}
	if got := stabilityLabel(15); got != "tus puntuaciones han mostrado una buena estabilidad a lo largo del año." {
		t.Errorf("stabilityLabel(15) = %q", got)
	}
	if got := stabilityLabel(25); got != "tus puntuaciones han variado significativamente a lo largo del año." {
		t.Errorf("stabilityLabel(25) = %q", got)
	}
}

func TestHourBands(t *testing.T) {
	hours := map[string]int{
		"h5":  2, // night
		"h6":  3, // morning
		"h12": 1, // morning
		"h13": 4, // afternoon
		"h19": 1, // afternoon
		"h20": 5, // night
		"h23": 1, // night
	}
	morning, afternoon, night := hourBands(hours)
	if morning != 4 || afternoon != 5 || night != 8 {
		t.Errorf("hourBands = (%d, %d, %d), want (4, 5, 8)", morning, afternoon, night)
	}
}

func TestStarHour(t *testing.T) {
	if got := starHour(map[string]int{}); got != "00:00" {
		t.Errorf("starHour of empty histogram = %q, want 00:00", got)
	}
	hours := map[string]int{"h9": 3, "h17": 7, "h22": 7}
	if got := starHour(hours); got != "17:00" {
		t.Errorf("starHour = %q, want 17:00 (earliest hour wins ties)", got)
	}
}

func TestRewindMonths(t *testing.T) {
	scores := map[string]int{
		"marzo":     10,
		"enero":     5,
		"diciembre": 99,
		"bogus":     1,
	}
	want := []string{"enero", "marzo"}
	if diff := cmp.Diff(want, rewindMonths(scores)); diff != "" {
		t.Errorf("rewindMonths mismatch (-want +got):\n%s", diff)
	}
}

func TestClosestRival(t *testing.T) {
	user := models.NewUser("1")
	user.DisplayName = "Ana"
	user.MonthlyScores = map[string]int{"enero": 10, "febrero": 20}

	near := models.NewUser("2")
	near.DisplayName = "Berto"
	near.MonthlyScores = map[string]int{"enero": 12, "febrero": 19}

	far := models.NewUser("3")
	far.DisplayName = "Carla"
	far.MonthlyScores = map[string]int{"enero": 40, "febrero": 0}

	months := []string{"enero", "febrero"}
	name, distance := closestRival(user, []*models.User{user, far, near}, months)
	if name != "Berto" {
		t.Errorf("closestRival = %q, want Berto", name)
	}
	// |10-12| + |20-19| = 3 over 2 months
	if math.Abs(distance-1.5) > 1e-9 {
		t.Errorf("distance = %v, want 1.5", distance)
	}
}

func TestClosestRivalNoCandidates(t *testing.T) {
	user := models.NewUser("1")
	name, distance := closestRival(user, []*models.User{user}, []string{"enero"})
	if name != "N/A" || distance != 0 {
		t.Errorf("closestRival with no rivals = (%q, %v), want (N/A, 0)", name, distance)
	}
}

func TestClosestRivalTieKeepsFirst(t *testing.T) {
	user := models.NewUser("1")
	user.MonthlyScores = map[string]int{"enero": 10}

	first := models.NewUser("2")
	first.DisplayName = "Primero"
	first.MonthlyScores = map[string]int{"enero": 12}

	second := models.NewUser("3")
	second.DisplayName = "Segundo"
	second.MonthlyScores = map[string]int{"enero": 8}

	name, _ := closestRival(user, []*models.User{first, second}, []string{"enero"})
	if name != "Primero" {
		t.Errorf("closestRival tie = %q, want Primero", name)
	}
}
