package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tasktracker/internal/models"
)

// TelegramNotifier posts task events to a single ops channel. Nil-safe: when
// the bot token or chat id is not configured the notifier is nil and every
// call is a no-op.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) *TelegramNotifier {
	if botToken == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg][init][err] %v", err)
		return nil
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyTaskCreated is best effort; delivery failures are logged, never
// surfaced to the request.
func (n *TelegramNotifier) NotifyTaskCreated(task *models.Task) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("New task #%d %q by %s, due %s",
		task.ID, task.Name, task.OwnerName, task.Deadline.Format("2006-01-02 15:04"))
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Printf("[tg][send][err] task=%d: %v", task.ID, err)
	}
}
