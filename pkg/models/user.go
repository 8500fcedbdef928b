package models

import (
	"strconv"
	"time"
)

// DefaultDisplayName is the placeholder stored before a real name has
// been observed for a sender.
const DefaultDisplayName = "Usuario"

// MilestoneStep is the score interval between congratulation broadcasts.
const MilestoneStep = 50

// Months holds the twelve month names, lowercase Spanish, in calendar
// order. These are the only keys ever used in User.MonthlyScores.
var Months = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Weekdays holds the seven weekday names, lowercase Spanish, Monday
// first. These are the only keys ever used in User.Week.
var Weekdays = []string{
	"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo",
}

// MonthName returns the Spanish name for a calendar month.
func MonthName(m time.Month) string {
	return Months[int(m)-1]
}

// MonthIndex returns the 0-based calendar position of a Spanish month
// name, or -1 if the name is unknown.
func MonthIndex(name string) int {
	for i, m := range Months {
		if m == name {
			return i
		}
	}
	return -1
}

// WeekdayName returns the Spanish name for a weekday. time.Weekday
// starts at Sunday; the week map starts at lunes.
func WeekdayName(d time.Weekday) string {
	return Weekdays[(int(d)+6)%7]
}

// HourKey returns the hour bucket key ("h0".."h23") for an hour of day.
func HourKey(hour int) string {
	return "h" + strconv.Itoa(hour)
}

// User is the per-sender score record. The key is the sender identifier
// of the messaging platform, kept as a string.
type User struct {
	ID                string         `db:"id"`
	DisplayName       string         `db:"display_name"`
	TotalScore        int            `db:"total_score"`
	LastCongratulated int            `db:"last_congratulated"`
	MonthlyScores     map[string]int `db:"-"`
	Hours             map[string]int `db:"-"`
	Week              map[string]int `db:"-"`
}

// NewUser returns a fresh record for a sender with empty score maps.
func NewUser(id string) *User {
	return &User{
		ID:            id,
		DisplayName:   DefaultDisplayName,
		MonthlyScores: make(map[string]int),
		Hours:         make(map[string]int),
		Week:          make(map[string]int),
	}
}

// Name returns the display name, falling back to the raw identifier
// when no human name has been observed.
func (u *User) Name() string {
	if u.DisplayName != "" && u.DisplayName != DefaultDisplayName {
		return u.DisplayName
	}
	return u.ID
}

// RecomputeTotal derives TotalScore from the monthly map. TotalScore is
// never stored independently of this derivation.
func (u *User) RecomputeTotal() {
	total := 0
	for _, score := range u.MonthlyScores {
		total += score
	}
	u.TotalScore = total
}

// AddPoint adds one point to the given scoring period and records the
// event in the hour and weekday histograms.
func (u *User) AddPoint(month string, hour int, weekday time.Weekday) {
	u.MonthlyScores[month]++
	u.Hours[HourKey(hour)]++
	u.Week[WeekdayName(weekday)]++
	u.RecomputeTotal()
}

// RemovePoint subtracts one point from the given scoring period and
// decrements the matching histogram buckets, flooring them at zero. It
// reports false, without mutating anything, when the period is already
// at zero.
func (u *User) RemovePoint(month string, hour int, weekday time.Weekday) bool {
	if u.MonthlyScores[month] <= 0 {
		return false
	}
	u.MonthlyScores[month]--
	if key := HourKey(hour); u.Hours[key] > 0 {
		u.Hours[key]--
	}
	if day := WeekdayName(weekday); u.Week[day] > 0 {
		u.Week[day]--
	}
	u.RecomputeTotal()
	return true
}

// SetMonthlyScore overwrites the score of a period with an absolute
// value. The hour and weekday histograms are not touched on this path.
func (u *User) SetMonthlyScore(month string, score int) {
	u.MonthlyScores[month] = score
	u.RecomputeTotal()
}

// Milestone reports whether the total score has crossed the next
// multiple of MilestoneStep since the last congratulation, advancing
// LastCongratulated when it has. It fires at most once per crossed
// multiple, whichever mutation path caused the crossing.
func (u *User) Milestone() (int, bool) {
	if u.TotalScore >= u.LastCongratulated+MilestoneStep && u.TotalScore%MilestoneStep == 0 {
		u.LastCongratulated = u.TotalScore
		return u.TotalScore, true
	}
	return 0, false
}
