package bot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/puntosbot/internal/charts"
	"github.com/example/puntosbot/internal/database"
	"github.com/example/puntosbot/internal/weather"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sessionID is the fixed key under which the bot persists its client
// state between restarts.
const sessionID = "default"

// request carries one inbound message with its resolved sender.
type request struct {
	msg         *tgbotapi.Message
	senderID    string
	displayName string
}

// command is one entry of the ordered dispatch table. The first
// matching pattern wins and at most one command runs per message.
type command struct {
	name    string
	pattern *regexp.Regexp
	run     func(req *request, args []string) error
	// apology is the generic failure reply sent when run returns an
	// error; empty means fail silently (logged only).
	apology string
}

// Bot is the chat bot application.
type Bot struct {
	api      *tgbotapi.BotAPI
	token    string
	cfg      *Config
	users    *database.UserRepository
	facts    *database.FactRepository
	sessions *database.SessionRepository
	charts   *charts.Client
	weather  *weather.Client
	commands []command
	adminID  string
	// autoReply suppresses score confirmations and validation
	// complaints when off. Milestones and command replies always go
	// out. Plain unsynchronized state, like the rest of the bot.
	autoReply bool
	startedAt time.Time
}

// New creates a new bot instance
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	b := &Bot{
		token:     token,
		cfg:       ConfigFromEnv(),
		users:     database.NewUserRepository(),
		facts:     database.NewFactRepository(),
		sessions:  database.NewSessionRepository(),
		charts:    charts.New(),
		weather:   weather.New(),
		adminID:   os.Getenv("ADMIN"),
		autoReply: true,
		startedAt: time.Now(),
	}
	b.commands = b.commandTable()

	return b, nil
}

// commandTable builds the dispatch table in its fixed order.
func (b *Bot) commandTable() []command {
	return []command{
		{"addfact", regexp.MustCompile(`(?i)^/addfact:(.+)$`), b.cmdAddFact,
			"Error al añadir el dato ❌. Por favor, intenta nuevamente."},
		{"average", regexp.MustCompile(`(?i)^/average$`), b.cmdAverage,
			"Hubo un error al calcular tu promedio."},
		{"commands", regexp.MustCompile(`(?i)^/commands$`), b.cmdCommands, ""},
		{"export", regexp.MustCompile(`(?i)^/export$`), b.cmdExport,
			"Hubo un error al generar la exportación."},
		{"fact", regexp.MustCompile(`(?i)^/fact$`), b.cmdFact,
			"Hubo un error al obtener un hecho. Por favor, intenta nuevamente."},
		{"fluky", regexp.MustCompile(`(?i)^/fluky:(.*)$`), b.cmdFluky, ""},
		{"hours", regexp.MustCompile(`(?i)^/hours$`), b.cmdHours,
			"Hubo un error al generar tu gráfica de horas."},
		{"hourschart", regexp.MustCompile(`(?i)^/hourschart$`), b.cmdHoursChart,
			"Hubo un error al generar tu gráfica de horas."},
		{"mes", regexp.MustCompile(`(?i)^/mes$`), b.cmdMes,
			"Hubo un error al obtener el top del mes."},
		{"noreply", regexp.MustCompile(`(?i)^/noreply$`), b.cmdNoReply, ""},
		{"ping", regexp.MustCompile(`(?i)^ping$`), b.cmdPing, ""},
		{"progress", regexp.MustCompile(`(?i)^/progress$`), b.cmdProgress,
			"Hubo un error al generar la gráfica de progreso. Por favor, inténtalo nuevamente más tarde."},
		{"reply", regexp.MustCompile(`(?i)^/reply$`), b.cmdReply, ""},
		{"rewind", regexp.MustCompile(`(?i)^/rewind$`), b.cmdRewind,
			"Hubo un error al generar tus estadísticas de rewind. Por favor, intenta nuevamente."},
		{"rewindchart", regexp.MustCompile(`(?i)^/rewindchart$`), b.cmdRewindChart,
			"Hubo un error al generar tu gráfica anual. Por favor, intenta nuevamente."},
		{"status", regexp.MustCompile(`(?i)^/status$`), b.cmdStatus,
			"Hubo un error al obtener el estado del bot. Por favor, inténtalo más tarde."},
		{"top", regexp.MustCompile(`(?i)^/top$`), b.cmdTop,
			"Hubo un error al obtener el top global."},
		{"weather", regexp.MustCompile(`(?i)^/weather(?::(.+))?$`), b.cmdWeather,
			"Hubo un error al obtener la información del clima. Por favor, intenta nuevamente más tarde."},
		{"week", regexp.MustCompile(`(?i)^/week$`), b.cmdWeek,
			"Hubo un error al generar tu gráfica de días."},
		{"weekchart", regexp.MustCompile(`(?i)^/weekchart$`), b.cmdWeekChart,
			"Hubo un error al generar tu gráfica de días."},
		{"year", regexp.MustCompile(`(?i)^/year:(\d{4})$`), b.cmdYear,
			"Hubo un error al obtener los datos del año solicitado. Por favor, intenta nuevamente."},
	}
}

// digitsOnly matches an absolute score-set message.
var digitsOnly = regexp.MustCompile(`^\d+$`)

// Start connects to Telegram and runs the update loop until Stop.
func (b *Bot) Start() error {
	api, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}
	b.api = api
	log.Printf("Authorized on account %s", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(b.loadOffset())
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {
		b.saveOffset(update.UpdateID + 1)
		if update.Message == nil {
			continue
		}
		go b.handleMessage(update.Message)
	}

	return nil
}

// Stop gracefully stops the update loop.
func (b *Bot) Stop() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// handleMessage dispatches one inbound message: score tokens first,
// then the command table, otherwise silence.
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	body := strings.TrimSpace(msg.Text)
	if body == "" {
		return
	}

	req, ok := b.resolveSender(msg)
	if !ok {
		return
	}

	switch {
	case body == "+1":
		if err := b.applyIncrement(req); err != nil {
			log.Printf("Error applying increment for %s: %v", req.senderID, err)
		}
		return
	case body == "-1":
		if err := b.applyDecrement(req); err != nil {
			log.Printf("Error applying decrement for %s: %v", req.senderID, err)
		}
		return
	case digitsOnly.MatchString(body):
		value, err := strconv.Atoi(body)
		if err != nil {
			// Number too large to be a score; ignore the message.
			return
		}
		if err := b.applySet(req, value); err != nil {
			log.Printf("Error applying score set for %s: %v", req.senderID, err)
		}
		return
	}

	for _, cmd := range b.commands {
		args := cmd.pattern.FindStringSubmatch(body)
		if args == nil {
			continue
		}
		if err := cmd.run(req, args); err != nil {
			log.Printf("Error running /%s for %s: %v", cmd.name, req.senderID, err)
			if cmd.apology != "" {
				b.reply(msg, cmd.apology)
			}
		}
		// Only the first matching command runs.
		return
	}
}

// resolveSender determines the sender identity. A group message without
// an author cannot be attributed and is dropped.
func (b *Bot) resolveSender(msg *tgbotapi.Message) (*request, bool) {
	if msg.From == nil {
		if msg.Chat != nil && (msg.Chat.IsGroup() || msg.Chat.IsSuperGroup()) {
			log.Printf("Group message without author in chat %d, dropping", msg.Chat.ID)
		}
		return nil, false
	}

	displayName := msg.From.FirstName
	if displayName == "" {
		displayName = msg.From.UserName
	}

	return &request{
		msg:         msg,
		senderID:    strconv.FormatInt(msg.From.ID, 10),
		displayName: displayName,
	}, true
}

// reply sends a plain text answer quoting the triggering message.
func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	m := tgbotapi.NewMessage(msg.Chat.ID, text)
	m.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(m); err != nil {
		log.Printf("Error sending reply: %v", err)
	}
}

// replyMarkdown sends a Markdown-formatted answer.
func (b *Bot) replyMarkdown(msg *tgbotapi.Message, text string) {
	m := tgbotapi.NewMessage(msg.Chat.ID, text)
	m.ReplyToMessageID = msg.MessageID
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(m); err != nil {
		log.Printf("Error sending reply: %v", err)
	}
}

// sendPhoto delivers image bytes to the originating chat.
func (b *Bot) sendPhoto(chatID int64, name string, data []byte, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	_, err := b.api.Send(photo)
	return err
}

// sendDocument delivers a file to the originating chat.
func (b *Bot) sendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	_, err := b.api.Send(doc)
	return err
}

// AnnouncePeriodStart implements the scheduler.Notifier interface: it
// broadcasts the opening of a new scoring period.
func (b *Bot) AnnouncePeriodStart(month string) error {
	if b.cfg.BroadcastChatID == 0 || b.api == nil {
		return nil
	}
	text := fmt.Sprintf("📅 ¡Comienza el mes de *%s*! Los marcadores vuelven a cero, ¡mucha suerte! 🍀", month)
	m := tgbotapi.NewMessage(b.cfg.BroadcastChatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	_, err := b.api.Send(m)
	return err
}

// Config exposes the bot settings to the scheduler.
func (b *Bot) Config() *Config {
	return b.cfg
}

// sessionState is the blob persisted in the session store between
// restarts.
type sessionState struct {
	Offset int `json:"offset"`
}

// loadOffset restores the update offset from the session store so a
// restart does not replay already handled messages.
func (b *Bot) loadOffset() int {
	session, err := b.sessions.Get(sessionID)
	if err == sql.ErrNoRows {
		return 0
	}
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return 0
	}

	var state sessionState
	if err := json.Unmarshal(session.Data, &state); err != nil {
		log.Printf("Error parsing session data: %v", err)
		return 0
	}
	return state.Offset
}

// saveOffset overwrites the session blob with the next update offset.
func (b *Bot) saveOffset(offset int) {
	data, err := json.Marshal(sessionState{Offset: offset})
	if err != nil {
		log.Printf("Error marshaling session data: %v", err)
		return
	}
	if err := b.sessions.Save(sessionID, data); err != nil {
		log.Printf("Error saving session: %v", err)
	}
}

// debugf logs only when verbose logging is enabled.
func (b *Bot) debugf(format string, args ...interface{}) {
	if b.cfg.ShowLogs {
		log.Printf(format, args...)
	}
}

// isAdmin checks if a sender is the configured administrator.
func (b *Bot) isAdmin(senderID string) bool {
	return b.adminID != "" && senderID == b.adminID
}
