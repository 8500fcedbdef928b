package bot

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/example/puntosbot/pkg/models"
)

// maxBarWidth caps the text histograms at 8 block characters; larger
// buckets are scaled down linearly.
const maxBarWidth = 8

// textBar renders one histogram bucket as a block bar.
func textBar(count, maxCount int) string {
	scale := 1.0
	if maxCount > maxBarWidth {
		scale = float64(maxBarWidth) / float64(maxCount)
	}

	width := int(math.Ceil(float64(count) * scale))
	if width > maxBarWidth {
		width = maxBarWidth
	}
	if width == 0 {
		return "⬜"
	}
	return strings.Repeat("⬛", width)
}

// senderRecord loads the caller's record, answering the no-data reply
// when none exists.
func (b *Bot) senderRecord(req *request) (*models.User, error) {
	user, err := b.users.GetByID(req.senderID)
	if err == sql.ErrNoRows {
		b.reply(req.msg, "No tienes datos registrados aún.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (b *Bot) cmdHours(req *request, _ []string) error {
	user, err := b.senderRecord(req)
	if user == nil || err != nil {
		return err
	}

	maxCount := 0
	for hour := 0; hour < 24; hour++ {
		if count := user.Hours[models.HourKey(hour)]; count > maxCount {
			maxCount = count
		}
	}

	name := req.displayName
	if name == "" {
		name = user.Name()
	}

	var reply strings.Builder
	reply.WriteString(fmt.Sprintf("*🕒 Registro de Horas para %s:*\n", name))
	for hour := 0; hour < 24; hour++ {
		count := user.Hours[models.HourKey(hour)]
		reply.WriteString(fmt.Sprintf("%02d:00 | %s (%d)\n", hour, textBar(count, maxCount), count))
	}

	b.replyMarkdown(req.msg, reply.String())
	return nil
}

func (b *Bot) cmdWeek(req *request, _ []string) error {
	user, err := b.senderRecord(req)
	if user == nil || err != nil {
		return err
	}

	maxCount := 0
	for _, day := range models.Weekdays {
		if count := user.Week[day]; count > maxCount {
			maxCount = count
		}
	}

	name := req.displayName
	if name == "" {
		name = user.Name()
	}

	var reply strings.Builder
	reply.WriteString(fmt.Sprintf("*📅 Registro de Días para %s:*\n", name))
	for _, day := range models.Weekdays {
		count := user.Week[day]
		reply.WriteString(fmt.Sprintf("%s | %s (%d)\n", capitalize(day), textBar(count, maxCount), count))
	}

	b.replyMarkdown(req.msg, reply.String())
	return nil
}

// stdDeviation returns the population standard deviation.
func stdDeviation(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	mean := float64(sum) / float64(len(scores))

	variance := 0.0
	for _, s := range scores {
		diff := float64(s) - mean
		variance += diff * diff
	}
	variance /= float64(len(scores))

	return math.Sqrt(variance)
}

// stabilityLabel maps a monthly-score deviation to its qualitative tier.
func stabilityLabel(std float64) string {
	switch {
	case std < 10:
		return "has mantenido una consistencia notable en tus puntuaciones."
	case std < 20:
		return "tus puntuaciones han mostrado una buena estabilidad a lo largo del año."
	default:
		return "tus puntuaciones han variado significativamente a lo largo del año."
	}
}

// hourBands splits the hour histogram into morning (6-12), afternoon
// (13-19) and night (the rest) totals.
func hourBands(hours map[string]int) (morning, afternoon, night int) {
	for hour := 0; hour < 24; hour++ {
		points := hours[models.HourKey(hour)]
		switch {
		case hour >= 6 && hour < 13:
			morning += points
		case hour >= 13 && hour < 20:
			afternoon += points
		default:
			night += points
		}
	}
	return
}

// starHour returns the clock label of the hour bucket with the most
// points; the earliest hour wins ties.
func starHour(hours map[string]int) string {
	best := "00:00"
	maxPoints := math.MinInt32
	for hour := 0; hour < 24; hour++ {
		if points := hours[models.HourKey(hour)]; points > maxPoints {
			maxPoints = points
			best = fmt.Sprintf("%02d:00", hour)
		}
	}
	return best
}

// rewindMonths filters a monthly map down to the valid month names
// used by the year-end statistics, excluding the in-progress December.
func rewindMonths(scores map[string]int) []string {
	var months []string
	for _, name := range models.Months[:11] {
		if _, ok := scores[name]; ok {
			months = append(months, name)
		}
	}
	return months
}

// closestRival finds the other user minimizing the total absolute
// monthly-score difference over the given months. Ties break toward the
// first candidate encountered. Returns "N/A" when there is no rival.
func closestRival(user *models.User, others []*models.User, months []string) (string, float64) {
	rivalName := "N/A"
	smallest := math.Inf(1)
	avgDistance := 0.0

	for _, other := range others {
		if other.ID == user.ID {
			continue
		}

		total := 0
		for _, month := range months {
			diff := user.MonthlyScores[month] - other.MonthlyScores[month]
			if diff < 0 {
				diff = -diff
			}
			total += diff
		}

		if float64(total) < smallest {
			smallest = float64(total)
			rivalName = other.Name()
			if len(months) > 0 {
				avgDistance = float64(total) / float64(len(months))
			}
		}
	}

	return rivalName, avgDistance
}

func (b *Bot) cmdRewind(req *request, _ []string) error {
	now := time.Now().In(b.cfg.Location)
	currentYear := now.Year()

	// Only available during the last two weeks of the year.
	startRewind := time.Date(currentYear, time.December, 18, 0, 0, 0, 0, b.cfg.Location)
	endRewind := time.Date(currentYear, time.December, 31, 23, 59, 59, 0, b.cfg.Location)

	if now.Before(startRewind) || now.After(endRewind) {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, b.cfg.Location)
		daysRemaining := int(startRewind.Sub(today).Hours() / 24)
		plural := "s"
		if daysRemaining == 1 {
			plural = ""
		}
		b.reply(req.msg, fmt.Sprintf("Este comando solo puede usarse durante las dos últimas semanas del año. Faltan %d día%s.", daysRemaining, plural))
		b.debugf("/rewind requested outside the allowed window, %d days remaining", daysRemaining)
		return nil
	}

	user, err := b.senderRecord(req)
	if user == nil || err != nil {
		return err
	}

	allUsers, err := b.users.TopByTotal(0)
	if err != nil {
		return err
	}

	rank := 0
	for i, candidate := range allUsers {
		if candidate.ID == user.ID {
			rank = i + 1
			break
		}
	}
	totalUsers := len(allUsers)

	var rankMessage string
	switch {
	case rank == 1:
		rankMessage = "¡Felicidades por quedar en *primer* puesto! 🥇"
	case rank == 2:
		rankMessage = "🥈"
	case rank == 3:
		rankMessage = "🥉"
	case rank == totalUsers:
		rankMessage = "¡Felicidades por quedar en *última* posición!"
	default:
		rankMessage = fmt.Sprintf("Has quedado en la posición *%d* de %d. ¡Sigue así!", rank, totalUsers)
	}

	months := rewindMonths(user.MonthlyScores)
	if len(months) == 0 {
		b.reply(req.msg, "No tienes suficientes datos mensuales para generar estadísticas.")
		b.debugf("/rewind: user %s has no valid monthly data", req.senderID)
		return nil
	}

	bestMonth, worstMonth := "", ""
	maxScore, minScore := math.MinInt32, math.MaxInt32
	var scores []int
	for _, month := range months {
		score := user.MonthlyScores[month]
		scores = append(scores, score)
		if score > maxScore {
			maxScore = score
			bestMonth = month
		}
		if score < minScore {
			minScore = score
			worstMonth = month
		}
	}

	stability := stabilityLabel(stdDeviation(scores))

	morning, afternoon, night := hourBands(user.Hours)
	totalWithHours := morning + afternoon + night
	var morningPct, afternoonPct, nightPct float64
	if totalWithHours > 0 {
		morningPct = float64(morning) / float64(totalWithHours) * 100
		afternoonPct = float64(afternoon) / float64(totalWithHours) * 100
		nightPct = float64(night) / float64(totalWithHours) * 100
	}

	// Pace estimate over 16 waking hours per day elapsed this year.
	const activeHoursPerDay = 24 - 8
	totalActiveHours := float64(activeHoursPerDay * now.YearDay())
	averageHoursPerPoint := 0.0
	if user.TotalScore > 0 {
		averageHoursPerPoint = totalActiveHours / float64(user.TotalScore)
	}
	avgHours := int(averageHoursPerPoint)
	avgMinutes := int((averageHoursPerPoint - float64(avgHours)) * 60)

	rivalName, avgDistance := closestRival(user, allUsers, months)

	displayName := req.displayName
	if displayName == "" {
		displayName = user.Name()
	}

	var reply strings.Builder
	reply.WriteString(fmt.Sprintf("Hola %s, este año has quedado top %d %s\n\n", displayName, rank, rankMessage))
	reply.WriteString(fmt.Sprintf("Aquí te van algunos datos sobre tus puntuaciones en %d:\n\n", currentYear))
	reply.WriteString(fmt.Sprintf("- Cada mes sueles sumar entre %d y %d puntos. Siendo *%s* el mes que mejor te ha ido y siendo *%s* el mes que peor te fue.\n\n", minScore, maxScore, bestMonth, worstMonth))
	reply.WriteString(fmt.Sprintf("- Tu rival más cercano ha sido *%s*, con quien en promedio has estado a %.2f puntos de distancia medios cada mes.\n\n", rivalName, avgDistance))
	reply.WriteString(fmt.Sprintf("- Has sumado el %.2f%% por la mañana, el %.2f%% por la tarde y el %.2f%% por la noche, siendo las *%s* tu hora estrella.\n\n", morningPct, afternoonPct, nightPct, starHour(user.Hours)))
	reply.WriteString(fmt.Sprintf("- En promedio sumas un punto cada %d horas y %d minutos.\n\n", avgHours, avgMinutes))
	reply.WriteString(fmt.Sprintf("- Tus puntuaciones %s\n\n", stability))
	reply.WriteString("¡Gracias por participar y que el próximo año sea aún mejor! 🎉")

	b.replyMarkdown(req.msg, reply.String())
	b.debugf("/rewind served for %s (%s)", displayName, req.senderID)
	return nil
}
