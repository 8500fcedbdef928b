package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/puntosbot/internal/weather"
	"github.com/example/puntosbot/pkg/models"
)

// formatForecastDay renders one day of the forecast for the reply.
func formatForecastDay(day weather.Day) string {
	dateStr := day.Date
	if parsed, err := time.Parse("2006-01-02", day.Date); err == nil {
		dateStr = fmt.Sprintf("%s, %d de %s",
			models.WeekdayName(parsed.Weekday()), parsed.Day(), models.MonthName(parsed.Month()))
	}

	return fmt.Sprintf("*%s*\nTemperatura: Máx %g°C / Mín %g°C\nClima: %s\nProbabilidad de precipitación: %d%%",
		dateStr, day.TempMax, day.TempMin, weather.Description(day.WeatherCode), day.PrecipitationProbability)
}

func (b *Bot) cmdWeather(req *request, args []string) error {
	city := b.cfg.DefaultCity
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		city = strings.TrimSpace(args[1])
	}

	if city == "" {
		b.reply(req.msg, "Por favor, proporciona una ciudad. Ejemplo: /weather:Jaén")
		return nil
	}

	loc, err := b.weather.Geocode(city)
	if errors.Is(err, weather.ErrCityNotFound) {
		b.reply(req.msg, fmt.Sprintf("No se encontró la ciudad \"%s\". Por favor, verifica el nombre e intenta nuevamente.", city))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to geocode city %q: %v", city, err)
	}

	forecast, err := b.weather.Forecast(loc, b.cfg.Location.String())
	if err != nil {
		return fmt.Errorf("failed to fetch forecast for %q: %v", city, err)
	}

	text := fmt.Sprintf("*🌤️ Pronóstico del Tiempo para %s, %s:*\n\n*Hoy:*\n%s\n\n*Mañana:*\n%s",
		loc.Name, loc.Country, formatForecastDay(forecast.Today), formatForecastDay(forecast.Tomorrow))

	b.replyMarkdown(req.msg, text)
	return nil
}
