package bot

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/example/puntosbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// currentPeriod returns the scoring period name for a wall-clock time.
// Days before the configured start day still belong to the previous
// month, so the competition month does not align with the calendar one.
func currentPeriod(now time.Time, startDay int) string {
	month := now.Month()
	if now.Day() < startDay {
		if month == time.January {
			month = time.December
		} else {
			month--
		}
	}
	return models.MonthName(month)
}

// loadOrCreateUser fetches the sender's record, creating a fresh one on
// first contact, and refreshes the display name opportunistically.
func (b *Bot) loadOrCreateUser(req *request) (*models.User, error) {
	user, err := b.users.GetByID(req.senderID)
	if err == sql.ErrNoRows {
		user = models.NewUser(req.senderID)
	} else if err != nil {
		return nil, err
	}

	if req.displayName != "" {
		user.DisplayName = req.displayName
	}

	return user, nil
}

// applyIncrement handles a "+1" message: one point to the current
// period plus the hour and weekday histograms.
func (b *Bot) applyIncrement(req *request) error {
	now := time.Now().In(b.cfg.Location)
	period := currentPeriod(now, b.cfg.MonthStartDay)

	user, err := b.loadOrCreateUser(req)
	if err != nil {
		return err
	}

	user.AddPoint(period, now.Hour(), now.Weekday())

	if err := b.users.Save(user); err != nil {
		return err
	}

	b.debugf("+1 for %s in %s (total %d)", user.Name(), period, user.TotalScore)

	b.checkMilestone(req.msg.Chat.ID, user)

	if b.autoReply {
		b.reply(req.msg, "✅")
	}
	return nil
}

// applyDecrement handles a "-1" message. A period already at zero
// refuses the operation; histogram buckets floor at zero.
func (b *Bot) applyDecrement(req *request) error {
	now := time.Now().In(b.cfg.Location)
	period := currentPeriod(now, b.cfg.MonthStartDay)

	user, err := b.loadOrCreateUser(req)
	if err != nil {
		return err
	}

	if !user.RemovePoint(period, now.Hour(), now.Weekday()) {
		if b.autoReply {
			b.reply(req.msg, "No puedes tener una puntuación negativa este mes ❌")
		}
		return nil
	}

	if err := b.users.Save(user); err != nil {
		return err
	}

	b.debugf("-1 for %s in %s (total %d)", user.Name(), period, user.TotalScore)

	b.checkMilestone(req.msg.Chat.ID, user)

	if b.autoReply {
		b.reply(req.msg, "✅")
	}
	return nil
}

// applySet handles a bare integer message: the current period's score
// is overwritten with the given value. The hour and weekday histograms
// are not touched on this path.
func (b *Bot) applySet(req *request, value int) error {
	now := time.Now().In(b.cfg.Location)
	period := currentPeriod(now, b.cfg.MonthStartDay)

	user, err := b.loadOrCreateUser(req)
	if err != nil {
		return err
	}

	user.SetMonthlyScore(period, value)

	if err := b.users.Save(user); err != nil {
		return err
	}

	b.debugf("set %d for %s in %s (total %d)", value, user.Name(), period, user.TotalScore)

	b.checkMilestone(req.msg.Chat.ID, user)

	if b.autoReply {
		b.reply(req.msg, "✅")
	}
	return nil
}

// checkMilestone broadcasts a congratulation when the total score has
// crossed the next multiple of 50, and persists the advanced
// last-congratulated mark. Milestones are never suppressed by the
// auto-reply toggle.
func (b *Bot) checkMilestone(chatID int64, user *models.User) {
	score, ok := user.Milestone()
	if !ok {
		return
	}

	if err := b.users.Save(user); err != nil {
		log.Printf("Error saving milestone for user %s: %v", user.ID, err)
		return
	}

	text := fmt.Sprintf("🎉 ¡Felicidades %s! Has alcanzado los %d puntos 🎉", user.Name(), score)
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Error broadcasting milestone for user %s: %v", user.ID, err)
	}
}
