package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMonthName(t *testing.T) {
	if got := MonthName(time.January); got != "enero" {
		t.Errorf("MonthName(January) = %q, want %q", got, "enero")
	}
	if got := MonthName(time.December); got != "diciembre" {
		t.Errorf("MonthName(December) = %q, want %q", got, "diciembre")
	}
}

func TestMonthIndex(t *testing.T) {
	if got := MonthIndex("enero"); got != 0 {
		t.Errorf("MonthIndex(enero) = %d, want 0", got)
	}
	if got := MonthIndex("diciembre"); got != 11 {
		t.Errorf("MonthIndex(diciembre) = %d, want 11", got)
	}
	if got := MonthIndex("unknown"); got != -1 {
		t.Errorf("MonthIndex(unknown) = %d, want -1", got)
	}
}

func TestWeekdayName(t *testing.T) {
	cases := []struct {
		day  time.Weekday
		want string
	}{
		{time.Monday, "lunes"},
		{time.Sunday, "domingo"},
		{time.Saturday, "sábado"},
	}
	for _, c := range cases {
		if got := WeekdayName(c.day); got != c.want {
			t.Errorf("WeekdayName(%v) = %q, want %q", c.day, got, c.want)
		}
	}
}

func TestHourKey(t *testing.T) {
	if got := HourKey(0); got != "h0" {
		t.Errorf("HourKey(0) = %q, want h0", got)
	}
	if got := HourKey(23); got != "h23" {
		t.Errorf("HourKey(23) = %q, want h23", got)
	}
}

func TestName(t *testing.T) {
	u := NewUser("12345")
	if got := u.Name(); got != "12345" {
		t.Errorf("Name() with default display name = %q, want the ID", got)
	}
	u.DisplayName = "Ana"
	if got := u.Name(); got != "Ana" {
		t.Errorf("Name() = %q, want Ana", got)
	}
}

func TestAddPoint(t *testing.T) {
	u := NewUser("1")
	u.AddPoint("mayo", 14, time.Wednesday)
	u.AddPoint("mayo", 14, time.Wednesday)
	u.AddPoint("junio", 9, time.Monday)

	wantMonths := map[string]int{"mayo": 2, "junio": 1}
	if diff := cmp.Diff(wantMonths, u.MonthlyScores); diff != "" {
		t.Errorf("MonthlyScores mismatch (-want +got):\n%s", diff)
	}
	wantHours := map[string]int{"h14": 2, "h9": 1}
	if diff := cmp.Diff(wantHours, u.Hours); diff != "" {
		t.Errorf("Hours mismatch (-want +got):\n%s", diff)
	}
	wantWeek := map[string]int{"miércoles": 2, "lunes": 1}
	if diff := cmp.Diff(wantWeek, u.Week); diff != "" {
		t.Errorf("Week mismatch (-want +got):\n%s", diff)
	}
	if u.TotalScore != 3 {
		t.Errorf("TotalScore = %d, want 3", u.TotalScore)
	}
}

func TestRemovePointAtZero(t *testing.T) {
	u := NewUser("1")
	if u.RemovePoint("mayo", 10, time.Friday) {
		t.Error("RemovePoint on empty month reported success")
	}
	if u.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", u.TotalScore)
	}
}

func TestRemovePointFloorsHistograms(t *testing.T) {
	u := NewUser("1")
	u.AddPoint("mayo", 10, time.Friday)

	// Remove at a different hour and weekday than the addition
	if !u.RemovePoint("mayo", 22, time.Sunday) {
		t.Fatal("RemovePoint reported failure with a point available")
	}
	if u.MonthlyScores["mayo"] != 0 {
		t.Errorf("MonthlyScores[mayo] = %d, want 0", u.MonthlyScores["mayo"])
	}
	if u.Hours["h22"] != 0 {
		t.Errorf("Hours[h22] = %d, want 0 (must not go negative)", u.Hours["h22"])
	}
	if u.Hours["h10"] != 1 {
		t.Errorf("Hours[h10] = %d, want 1", u.Hours["h10"])
	}
	if u.Week["domingo"] != 0 {
		t.Errorf("Week[domingo] = %d, want 0 (must not go negative)", u.Week["domingo"])
	}
}

func TestSetMonthlyScoreKeepsHistograms(t *testing.T) {
	u := NewUser("1")
	u.AddPoint("mayo", 10, time.Friday)
	u.SetMonthlyScore("mayo", 40)

	if u.MonthlyScores["mayo"] != 40 {
		t.Errorf("MonthlyScores[mayo] = %d, want 40", u.MonthlyScores["mayo"])
	}
	if u.TotalScore != 40 {
		t.Errorf("TotalScore = %d, want 40", u.TotalScore)
	}
	if u.Hours["h10"] != 1 || u.Week["viernes"] != 1 {
		t.Error("SetMonthlyScore must leave the histograms untouched")
	}
}

func TestMilestone(t *testing.T) {
	u := NewUser("1")
	u.SetMonthlyScore("mayo", 49)
	if _, ok := u.Milestone(); ok {
		t.Error("Milestone fired at 49")
	}

	u.AddPoint("mayo", 12, time.Monday)
	score, ok := u.Milestone()
	if !ok || score != 50 {
		t.Errorf("Milestone at 50 = (%d, %v), want (50, true)", score, ok)
	}
	if u.LastCongratulated != 50 {
		t.Errorf("LastCongratulated = %d, want 50", u.LastCongratulated)
	}

	// The same multiple never fires twice
	if _, ok := u.Milestone(); ok {
		t.Error("Milestone fired twice for the same total")
	}

	// An absolute set that jumps straight onto a multiple fires once
	u.SetMonthlyScore("junio", 50)
	score, ok = u.Milestone()
	if !ok || score != 100 {
		t.Errorf("Milestone at 100 = (%d, %v), want (100, true)", score, ok)
	}
}

func TestMilestoneSkipsNonMultiples(t *testing.T) {
	u := NewUser("1")
	u.SetMonthlyScore("mayo", 60)
	if _, ok := u.Milestone(); ok {
		t.Error("Milestone fired at 60, which is not a multiple of the step")
	}
}
