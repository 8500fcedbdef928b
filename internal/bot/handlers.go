package bot

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/example/puntosbot/internal/database"
	"github.com/example/puntosbot/pkg/models"
)

// capitalize upper-cases the first rune of a Spanish month or weekday
// name for display.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// medal returns the emoji for podium positions (0-based rank).
func medal(rank int) string {
	switch rank {
	case 0:
		return "🥇 "
	case 1:
		return "🥈 "
	case 2:
		return "🥉 "
	}
	return ""
}

func (b *Bot) cmdPing(req *request, _ []string) error {
	b.reply(req.msg, "pong")
	return nil
}

func (b *Bot) cmdNoReply(req *request, _ []string) error {
	b.autoReply = false
	b.reply(req.msg, "✅ Las respuestas automáticas han sido desactivadas.")
	return nil
}

func (b *Bot) cmdReply(req *request, _ []string) error {
	b.autoReply = true
	b.reply(req.msg, "✅ Las respuestas automáticas han sido activadas.")
	return nil
}

func (b *Bot) cmdCommands(req *request, _ []string) error {
	commandsList := []string{
		"- ping - Responde con \"pong\".",
		"- +1 - Añade un punto al mes actual",
		"- -1 - Resta un punto al mes actual",
		"- /top - Muestra el ranking global de usuarios.",
		"- /mes - Muestra el ranking del mes actual.",
		"- /year:YYYY - Muestra el ranking de un año anterior.",
		"- /average - Muestra tus promedios de puntos por día.",
		"- /progress - Gráfica de evolución de todos los usuarios.",
		"- /noreply - Desactiva la respuesta automática \"✅\".",
		"- /reply - Activa la respuesta automática \"✅\".",
		"- /fact - Da un dato aleatorio",
		"- /hours - Informa sobre las horas donde se suman los puntos",
		"- /hourschart - Gráfico en forma de imagen sobre el horario",
		"- /status - Informa sobre el estado del bot",
		"- /weather:nombre_ciudad - Previsión del tiempo para un lugar",
		"- /fluky:op1,op2,op3... - Selecciona una opción aleatoriamente",
		"- /rewind - Devuelve estadísticas de una persona a final de año",
		"- /rewindchart - Devuelve una gráfica resumen de una persona a final de año",
		"- /week - Muestra los puntos sumados por día de la semana",
		"- /weekchart - Muestra una gráfica de los puntos sumados por día de la semana",
		"- /commands - Muestra esta lista de comandos.",
	}

	var reply strings.Builder
	reply.WriteString("*Lista de Comandos:*\n")
	for _, cmd := range commandsList {
		reply.WriteString(cmd + "\n")
	}

	b.replyMarkdown(req.msg, reply.String())
	return nil
}

func (b *Bot) cmdTop(req *request, _ []string) error {
	topUsers, err := b.users.TopByTotal(10)
	if err != nil {
		return err
	}

	if len(topUsers) == 0 {
		b.reply(req.msg, "No hay datos disponibles para mostrar el top.")
		return nil
	}

	var reply strings.Builder
	reply.WriteString("*Top Global de Usuarios:*\n")
	for i, user := range topUsers {
		reply.WriteString(fmt.Sprintf("%d. %s%s - Total: %d\n", i+1, medal(i), user.Name(), user.TotalScore))
	}

	b.replyMarkdown(req.msg, reply.String())
	return nil
}

func (b *Bot) cmdMes(req *request, _ []string) error {
	currentMonth := currentPeriod(time.Now().In(b.cfg.Location), b.cfg.MonthStartDay)

	allUsers, err := b.users.GetAll()
	if err != nil {
		return err
	}

	// Only users with an entry for the current scoring period count.
	var topUsers []*models.User
	for _, user := range allUsers {
		if _, ok := user.MonthlyScores[currentMonth]; ok {
			topUsers = append(topUsers, user)
		}
	}
	sort.SliceStable(topUsers, func(i, j int) bool {
		return topUsers[i].MonthlyScores[currentMonth] > topUsers[j].MonthlyScores[currentMonth]
	})

	if len(topUsers) == 0 {
		b.reply(req.msg, fmt.Sprintf("No hay datos disponibles para mostrar el top de %s.", currentMonth))
		return nil
	}

	var reply strings.Builder
	reply.WriteString(fmt.Sprintf("*📅Top de %s:*\n", currentMonth))
	for i, user := range topUsers {
		reply.WriteString(fmt.Sprintf("%d. %s : %d\n", i+1, user.Name(), user.MonthlyScores[currentMonth]))
	}

	b.replyMarkdown(req.msg, reply.String())
	return nil
}

func (b *Bot) cmdYear(req *request, args []string) error {
	year := args[1]

	exists, err := database.TableExists("users_" + year)
	if err != nil {
		return err
	}
	if !exists {
		b.reply(req.msg, fmt.Sprintf("No se encontraron datos para el año %s.", year))
		return nil
	}

	topUsers, err := b.users.TopForYear(year, 10)
	if err != nil {
		return err
	}

	if len(topUsers) == 0 {
		b.reply(req.msg, fmt.Sprintf("No hay datos disponibles para mostrar el top del año %s.", year))
		return nil
	}

	var reply strings.Builder
	reply.WriteString(fmt.Sprintf("*📆 Top de Usuarios - Año %s:*\n", year))
	for i, user := range topUsers {
		reply.WriteString(fmt.Sprintf("%d. %s%s - Total: %d\n", i+1, medal(i), user.Name(), user.TotalScore))
	}

	b.replyMarkdown(req.msg, reply.String())
	return nil
}

func (b *Bot) cmdAddFact(req *request, args []string) error {
	if b.adminID == "" {
		b.debugf("/addfact executed but no administrator is configured")
		b.reply(req.msg, "Error: No se ha configurado un administrador en el sistema.")
		return nil
	}

	if !b.isAdmin(req.senderID) {
		b.debugf("/addfact rejected for sender %s, expected %s", req.senderID, b.adminID)
		b.reply(req.msg, "Este comando solo puede ser ejecutado por el administrador del bot")
		return nil
	}

	factText := strings.TrimSpace(args[1])
	if factText == "" {
		b.reply(req.msg, "Por favor, proporciona un texto válido. Ejemplo: /addfact:Este es un dato curioso.")
		return nil
	}

	if err := b.facts.Create(factText); err != nil {
		return err
	}

	b.debugf("New fact added by %s: %q", req.senderID, factText)
	b.reply(req.msg, "Dato añadido ✅")
	return nil
}

func (b *Bot) cmdFact(req *request, _ []string) error {
	fact, err := b.facts.Random()
	if err == sql.ErrNoRows {
		b.reply(req.msg, "No se me ocurre nada")
		return nil
	}
	if err != nil {
		return err
	}

	b.reply(req.msg, fact.Text)

	// Consume-once: the fact is deleted after being served. This is a
	// separate statement from the read, not a transaction.
	if err := b.facts.Delete(fact.ID); err != nil {
		b.debugf("Error deleting served fact %d: %v", fact.ID, err)
	}
	return nil
}

// flukyResponses are the canned sentence templates for /fluky; the
// chosen option replaces the placeholder.
var flukyResponses = []string{
	"Eligo la opción *%s*",
	"Creo que en este caso es mejor escoger *%s*",
	"Por si las moscas, *%s*",
	"Voto por *%s*",
	"La respuesta está clara: *%s*",
	"Mi elección es *%s*",
	"Definitivamente *%s* es la mejor opción",
	"No tengo dudas, *%s* es la elección correcta",
	"Mi instinto me dice que *%s* es la mejor opción",
	"Si fuera por mí, elegiría *%s*",
	"Mi voto va para *%s*",
	"Nada me detiene, *%s* es la indicada",
	"Me convence *%s*",
	"Estoy convencido, *%s* es la mejor elección",
	"Parece que *%s* tiene el destino a su favor",
	"Mi decisión está tomada: *%s*",
	"Después de pensarlo un segundo, *%s* es la opción",
	"No podría dejar pasar la oportunidad de elegir *%s*",
	"Con esa opción, *%s*, no hay pierde",
	"En esta situación, no hay otra opción más que *%s*",
	"Si me dan a elegir, *%s* tiene mi voto",
	"Después de pensarlo, elijo *%s* con toda seguridad",
	"Mi mente ha hablado y dice *%s*",
	"No hay nada mejor que *%s* en este momento",
	"Ya era hora de elegir *%s*",
	"Después de un exhaustivo análisis, *%s* es la respuesta",
	"Es lo más sensato, *%s* es mi opción",
	"¡Me quedo con *%s* sin pensarlo!",
	"Mi suerte me dice que *%s* es la indicada",
	"Si pudiera elegir mil veces, siempre elegiría *%s*",
	"Para mí no hay duda, *%s* es la correcta",
	"¡Por supuesto! *%s* es la elección ganadora",
	"Aquí no hay misterio, *%s* es la correcta",
	"Es una elección fácil: *%s*",
	"Nada se compara a *%s* en este momento",
	"¡El destino lo ha decidido! *%s* es la mejor",
	"No hay forma de que *%s* sea una mala elección",
	"De todo lo que hay, me quedo con *%s*",
	"Si la vida me da una opción, elijo *%s*",
	"Con todo, mi voto es para *%s*",
	"¿Quién soy yo para no elegir *%s*?",
	"La opción es clara: *%s*",
	"Sin más, *%s* para mí",
	"Como un sabio dijo una vez: *%s*",
	"Que se haga justicia, *%s* es la mejor",
	"No hay vuelta atrás, *%s* es lo que elijo",
}

// parseFlukyOptions splits the comma-separated argument, dropping empty
// entries after trimming.
func parseFlukyOptions(input string) []string {
	var options []string
	for _, option := range strings.Split(input, ",") {
		option = strings.TrimSpace(option)
		if option != "" {
			options = append(options, option)
		}
	}
	return options
}

func (b *Bot) cmdFluky(req *request, args []string) error {
	input := strings.TrimSpace(args[1])
	if input == "" {
		b.reply(req.msg, "Por favor, proporciona las opciones separadas por comas. Ejemplo: /fluky:opcion1,opcion2,opcion3")
		return nil
	}

	options := parseFlukyOptions(input)
	if len(options) < 2 {
		b.reply(req.msg, "Por favor, proporciona al menos dos opciones separadas por comas.")
		return nil
	}
	if len(options) > 30 {
		b.reply(req.msg, "No puedo elegir entre tantas opciones")
		return nil
	}

	selected := options[rand.Intn(len(options))]
	response := flukyResponses[rand.Intn(len(flukyResponses))]

	b.replyMarkdown(req.msg, fmt.Sprintf(response, selected))
	return nil
}

// elapsedScoringDays computes, per calendar month of the current year,
// how many scoring days have elapsed under the shifted month-start-day
// convention: months not yet started count zero, the in-progress month
// is clamped to now.
func elapsedScoringDays(now time.Time, startDay int) (int, map[string]int) {
	year := now.Year()
	total := 0
	perMonth := make(map[string]int)

	for i, monthName := range models.Months {
		start := time.Date(year, time.Month(i+1), startDay, 0, 0, 0, 0, now.Location())

		var end time.Time
		if i == 11 {
			end = time.Date(year+1, time.January, startDay, 0, 0, 0, 0, now.Location())
		} else {
			end = time.Date(year, time.Month(i+2), startDay, 0, 0, 0, 0, now.Location())
		}

		if now.Before(start) {
			break
		}
		if now.Before(end) {
			end = now
		}

		days := int(end.Sub(start).Hours() / 24)
		if days < 0 {
			days = 0
		}

		total += days
		perMonth[monthName] = days
	}

	return total, perMonth
}

func (b *Bot) cmdAverage(req *request, _ []string) error {
	user, err := b.users.GetByID(req.senderID)
	if err == sql.ErrNoRows {
		b.reply(req.msg, "No tienes datos registrados aún.")
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now().In(b.cfg.Location)
	totalDays, monthDays := elapsedScoringDays(now, b.cfg.MonthStartDay)

	if totalDays == 0 {
		b.reply(req.msg, "No hay suficientes datos para calcular tu promedio global.")
		return nil
	}

	globalAverage := float64(user.TotalScore) / float64(totalDays)

	// Months in calendar order, only those the user has touched.
	var userMonths []string
	for month := range user.MonthlyScores {
		userMonths = append(userMonths, month)
	}
	sort.Slice(userMonths, func(i, j int) bool {
		return models.MonthIndex(userMonths[i]) < models.MonthIndex(userMonths[j])
	})

	var perMonth strings.Builder
	for _, month := range userMonths {
		days := monthDays[month]
		if days > 0 {
			average := float64(user.MonthlyScores[month]) / float64(days)
			perMonth.WriteString(fmt.Sprintf("- %s: %.2f puntos/día\n", capitalize(month), average))
		} else {
			perMonth.WriteString(fmt.Sprintf("- %s: No hay suficientes datos para calcular el promedio.\n", capitalize(month)))
		}
	}

	displayName := user.DisplayName
	if displayName == "" {
		displayName = models.DefaultDisplayName
	}

	reply := fmt.Sprintf("*%s, tu promedio global es %.2f puntos por día.*\n\n", displayName, globalAverage)
	reply += "*Tus promedios por mes son:*\n"
	reply += perMonth.String()

	b.replyMarkdown(req.msg, reply)
	return nil
}

func (b *Bot) cmdStatus(req *request, _ []string) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "desconocido"
	}

	dbStatus := "Conectado"
	if err := database.DB.Ping(); err != nil {
		dbStatus = "Desconectado"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	uptime := time.Since(b.startedAt).Round(time.Second)

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	reply := fmt.Sprintf(`*Estado del Bot y Sistema:*

📊 *Información del Bot:*
- Versión de Go: %s
- Tiempo de actividad del Bot: %s
- Plataforma: %s
- Arquitectura: %s
- Goroutines: %d
- Memoria en uso: %.2f MB

💾 *Base de Datos:*
- Estado: %s
- Motor: %s

💻 *Información del Servidor:*
- Nombre del Servidor: %s
- Entorno de ejecución: %s
`,
		runtime.Version(),
		uptime,
		runtime.GOOS,
		runtime.GOARCH,
		runtime.NumGoroutine(),
		float64(mem.Alloc)/1024/1024,
		dbStatus,
		database.DB.DriverName(),
		hostname,
		environment,
	)

	b.replyMarkdown(req.msg, reply)
	return nil
}
