package bot

import (
	"fmt"
	"time"

	"github.com/example/puntosbot/internal/charts"
	"github.com/example/puntosbot/pkg/models"
)

const (
	barFill   = "rgba(75, 192, 192, 0.6)"
	barBorder = "rgba(75, 192, 192, 1)"
	lineColor = "rgba(255, 99, 132, 1)"
)

func (b *Bot) cmdHoursChart(req *request, _ []string) error {
	user, err := b.senderRecord(req)
	if user == nil || err != nil {
		return err
	}

	name := req.displayName
	if name == "" {
		name = user.Name()
	}

	labels := make([]string, 24)
	counts := make([]int, 24)
	for hour := 0; hour < 24; hour++ {
		labels[hour] = fmt.Sprintf("%d:00", hour)
		counts[hour] = user.Hours[models.HourKey(hour)]
	}

	cfg := charts.Config{
		Type: "bar",
		Data: charts.Data{
			Labels: labels,
			Datasets: []charts.Dataset{{
				Label:           "Puntos por Hora",
				Data:            charts.Values(counts),
				BackgroundColor: barFill,
				BorderColor:     barBorder,
				BorderWidth:     1,
			}},
		},
		Options: &charts.Options{
			Plugins: &charts.Plugins{
				Title: &charts.Title{Display: true, Text: fmt.Sprintf("Registro de Horas para %s", name)},
			},
			Scales: map[string]charts.Scale{"y": {BeginAtZero: true}},
		},
	}

	image, err := b.charts.Render(cfg)
	if err != nil {
		return err
	}

	return b.sendPhoto(req.msg.Chat.ID, "hourschart.png", image,
		fmt.Sprintf("📊 *Registro de Horas para %s:*", name))
}

func (b *Bot) cmdWeekChart(req *request, _ []string) error {
	user, err := b.senderRecord(req)
	if user == nil || err != nil {
		return err
	}

	name := req.displayName
	if name == "" {
		name = user.Name()
	}

	b.debugf("Generating week chart for %s (%s)", name, req.senderID)

	labels := make([]string, len(models.Weekdays))
	counts := make([]int, len(models.Weekdays))
	for i, day := range models.Weekdays {
		labels[i] = capitalize(day)
		counts[i] = user.Week[day]
	}

	cfg := charts.Config{
		Type: "bar",
		Data: charts.Data{
			Labels: labels,
			Datasets: []charts.Dataset{{
				Label:           "Puntos por Día",
				Data:            charts.Values(counts),
				BackgroundColor: barFill,
				BorderColor:     barBorder,
				BorderWidth:     1,
			}},
		},
		Options: &charts.Options{
			Plugins: &charts.Plugins{
				Title: &charts.Title{Display: true, Text: fmt.Sprintf("Registro de Días para %s", name)},
			},
			Scales: map[string]charts.Scale{"y": {BeginAtZero: true}},
		},
	}

	image, err := b.charts.Render(cfg)
	if err != nil {
		return err
	}

	return b.sendPhoto(req.msg.Chat.ID, "weekchart.png", image,
		fmt.Sprintf("📊 *Registro de Días para %s:*", name))
}

func (b *Bot) cmdRewindChart(req *request, _ []string) error {
	now := time.Now().In(b.cfg.Location)

	// The annual chart unlocks shortly before year end.
	unlock := time.Date(now.Year(), time.December, 21, 20, 30, 0, 0, b.cfg.Location)
	if now.Before(unlock) {
		remaining := unlock.Sub(now)
		days := int(remaining.Hours()) / 24
		hours := int(remaining.Hours()) % 24
		minutes := int(remaining.Minutes()) % 60
		b.reply(req.msg, fmt.Sprintf(
			"El comando /rewindchart estará disponible en %d día%s, %d hora%s y %d minuto%s.",
			days, pluralSuffix(days), hours, pluralSuffix(hours), minutes, pluralSuffix(minutes)))
		return nil
	}

	user, err := b.senderRecord(req)
	if user == nil || err != nil {
		return err
	}

	name := req.displayName
	if name == "" {
		name = user.Name()
	}

	labels := make([]string, len(models.Months))
	counts := make([]int, len(models.Months))
	for i, month := range models.Months {
		labels[i] = capitalize(month)
		counts[i] = user.MonthlyScores[month]
	}

	cfg := charts.Config{
		Type: "bar",
		Data: charts.Data{
			Labels: labels,
			Datasets: []charts.Dataset{
				{
					Type:            "bar",
					Label:           "Puntos por Mes",
					Data:            charts.Values(counts),
					BackgroundColor: barFill,
					BorderColor:     barBorder,
					BorderWidth:     1,
				},
				{
					Type:        "line",
					Label:       "Tendencia",
					Data:        charts.Values(counts),
					BorderColor: lineColor,
					Fill:        charts.Bool(false),
				},
			},
		},
		Options: &charts.Options{
			Responsive: true,
			Plugins: &charts.Plugins{
				Title: &charts.Title{Display: true, Text: fmt.Sprintf("Estadísticas Anuales de %s", name)},
			},
			Scales: map[string]charts.Scale{"y": {BeginAtZero: true}},
		},
	}

	image, err := b.charts.Render(cfg)
	if err != nil {
		return err
	}

	return b.sendPhoto(req.msg.Chat.ID, "rewindchart.png", image,
		fmt.Sprintf("📊 *Gráfica Anual para %s:*", name))
}

func (b *Bot) cmdProgress(req *request, _ []string) error {
	now := time.Now().In(b.cfg.Location)
	currentMonthIndex := int(now.Month()) - 1
	currentYear := now.Year()

	// At least two months of the year must have concluded.
	if currentMonthIndex < 2 {
		b.reply(req.msg, "No es posible generar la gráfica hasta que hayan finalizado al menos dos meses del año.")
		return nil
	}

	allUsers, err := b.users.GetAll()
	if err != nil {
		return err
	}

	labels := make([]string, len(models.Months))
	for i, month := range models.Months {
		labels[i] = capitalize(month)
	}

	var datasets []charts.Dataset
	for _, user := range allUsers {
		// Concluded months carry their score; the current month and
		// later ones stay empty.
		data := make([]*int, len(models.Months))
		for i, month := range models.Months {
			if i < currentMonthIndex {
				score := user.MonthlyScores[month]
				data[i] = &score
			}
		}

		datasets = append(datasets, charts.Dataset{
			Label:       user.Name(),
			Data:        data,
			Fill:        charts.Bool(false),
			BorderWidth: 2,
		})
	}

	cfg := charts.Config{
		Type: "line",
		Data: charts.Data{Labels: labels, Datasets: datasets},
		Options: &charts.Options{
			Responsive: true,
			Plugins: &charts.Plugins{
				Title: &charts.Title{Display: true, Text: fmt.Sprintf("Evolución de Puntos - Año %d", currentYear)},
			},
			Scales: map[string]charts.Scale{"y": {BeginAtZero: true}},
		},
	}

	image, err := b.charts.Render(cfg)
	if err != nil {
		return err
	}

	return b.sendPhoto(req.msg.Chat.ID, "progress_chart.png", image,
		fmt.Sprintf("📊 *Progreso actual - %d*", currentYear))
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
