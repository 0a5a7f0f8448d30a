package bot

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/awhatson15/remindme-bot/db"
	"github.com/awhatson15/remindme-bot/models"
	"github.com/awhatson15/remindme-bot/reminder"
	"github.com/awhatson15/remindme-bot/session"
	"github.com/awhatson15/remindme-bot/utils"
)

// Bot представляет Telegram бота. Service и Sessions подключаются после
// создания: ядру при создании нужен Notifier, которым является сам бот.
type Bot struct {
	API      *tgbotapi.BotAPI
	Service  *reminder.Service
	Sessions *session.Manager
	DB       *db.DB

	HistoryLimit int
}

// NewBot создает нового бота
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании бота: %w", err)
	}

	return &Bot{
		API:          api,
		HistoryLimit: 10,
	}, nil
}

// Start запускает бота
func (b *Bot) Start() {
	log.Printf("Авторизован как %s", b.API.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.API.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			go b.handleMessage(update.Message)
		} else if update.CallbackQuery != nil {
			go b.handleCallbackQuery(update.CallbackQuery)
		}
	}
}

// Notify доставляет событие ядра пользователю. В личных чатах
// идентификатор пользователя совпадает с идентификатором чата.
func (b *Bot) Notify(owner int64, kind models.EventKind, payload models.Payload) {
	switch kind {
	case models.EventScheduled, models.EventEdited, models.EventFired, models.EventCancelled:
		if payload.Reminder == nil {
			log.Printf("Событие %s для пользователя %d пришло без напоминания", kind, owner)
			return
		}
	}

	var text string

	switch kind {
	case models.EventPrompt:
		text = payload.Message
	case models.EventValidationError:
		text = "❌ " + payload.Message
	case models.EventScheduled:
		text = fmt.Sprintf("✅ Напоминание создано!\n📝 %s\n📅 %s",
			payload.Reminder.Text, utils.FormatFireAt(payload.Reminder.FireAt))
	case models.EventEdited:
		text = fmt.Sprintf("✏️ Напоминание обновлено!\n📝 %s\n📅 %s",
			payload.Reminder.Text, utils.FormatFireAt(payload.Reminder.FireAt))
	case models.EventFired:
		text = fmt.Sprintf("🔔 Напоминание: %s", payload.Reminder.Text)
	case models.EventCancelled:
		text = fmt.Sprintf("🚫 Напоминание отменено: %s", payload.Reminder.Text)
	default:
		log.Printf("Неизвестный вид события: %s", kind)
		return
	}

	msg := tgbotapi.NewMessage(owner, text)
	if _, err := b.API.Send(msg); err != nil {
		log.Printf("Ошибка при отправке события %s пользователю %d: %v", kind, owner, err)
	}
}

// SendMainMenu отправляет основное меню
func (b *Bot) SendMainMenu(chatID int64) error {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Создать напоминание", "create"),
			tgbotapi.NewInlineKeyboardButtonData("Мои напоминания", "list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("История", "history"),
			tgbotapi.NewInlineKeyboardButtonData("Помощь", "help"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "Что вы хотите сделать?")
	msg.ReplyMarkup = keyboard

	_, err := b.API.Send(msg)
	if err != nil {
		return fmt.Errorf("ошибка при отправке меню: %w", err)
	}

	return nil
}

// SendDigest отправляет пользователю сводку ожидающих напоминаний
func (b *Bot) SendDigest(owner int64, reminders []*models.Reminder) error {
	text := fmt.Sprintf("📋 У вас %d ожидающих напоминаний:\n", len(reminders))
	for i, r := range reminders {
		text += fmt.Sprintf("%d. %s — %s\n", i+1, utils.FormatFireAt(r.FireAt), r.Text)
	}

	msg := tgbotapi.NewMessage(owner, text)
	if _, err := b.API.Send(msg); err != nil {
		return fmt.Errorf("ошибка при отправке сводки: %w", err)
	}

	return nil
}
