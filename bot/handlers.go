package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/awhatson15/remindme-bot/models"
	"github.com/awhatson15/remindme-bot/utils"
)

// quickRemindDelay задержка для быстрой команды /remind без диалога
const quickRemindDelay = 5 * time.Minute

// handleMessage обрабатывает текстовые сообщения
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	// Реплика вне команды уходит в активный диалог; если диалога нет —
	// показываем меню
	if !b.Sessions.Submit(userID, message.Text) {
		if err := b.SendMainMenu(chatID); err != nil {
			log.Printf("Ошибка при отправке меню пользователю %d: %v", userID, err)
		}
	}
}

// handleCommand обрабатывает команды
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		b.sendText(chatID, "Привет! Я помогу не забыть важное: создайте напоминание, и я напишу вам в нужный момент.")
		b.SendMainMenu(chatID)

	case "help":
		b.sendHelp(chatID)

	case "new":
		b.Sessions.StartCreate(userID)

	case "remind":
		// Быстрое напоминание через 5 минут, без диалога
		text := strings.TrimSpace(message.CommandArguments())
		if text == "" {
			b.Sessions.StartCreate(userID)
			return
		}
		b.quickRemind(userID, chatID, text)

	case "list":
		b.sendReminderList(userID, chatID)

	case "cancel":
		if b.Sessions.Abort(userID) {
			b.sendText(chatID, "Диалог отменён.")
		} else {
			b.sendText(chatID, "Сейчас нет активного диалога. Отменить напоминание можно кнопкой в /list.")
		}

	case "history":
		b.sendHistory(userID, chatID)

	default:
		b.sendText(chatID, "Неизвестная команда. Отправьте /help для списка команд.")
	}
}

// handleCallbackQuery обрабатывает нажатия кнопок
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	chatID := query.Message.Chat.ID
	data := query.Data

	// Убираем "часики" на кнопке
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := b.API.Request(callback); err != nil {
		log.Printf("Ошибка при ответе на callback: %v", err)
	}

	switch {
	case data == "create":
		b.Sessions.StartCreate(userID)

	case data == "list":
		b.sendReminderList(userID, chatID)

	case data == "history":
		b.sendHistory(userID, chatID)

	case data == "help":
		b.sendHelp(chatID)

	case strings.HasPrefix(data, "cancel:"):
		id := strings.TrimPrefix(data, "cancel:")
		err := b.Service.Cancel(userID, id)
		if errors.Is(err, models.ErrNotFound) {
			b.sendText(chatID, "❌ Напоминание не найдено — возможно, оно уже сработало.")
		} else if err != nil {
			log.Printf("Ошибка при отмене напоминания %s: %v", id, err)
		}

	case strings.HasPrefix(data, "edit:"):
		id := strings.TrimPrefix(data, "edit:")
		if err := b.Sessions.StartEdit(userID, id); err != nil {
			log.Printf("Не удалось начать правку напоминания %s: %v", id, err)
		}

	default:
		log.Printf("Неизвестный callback: %s", data)
	}
}

// quickRemind создает напоминание через фиксированную задержку,
// как в самой первой версии бота
func (b *Bot) quickRemind(userID, chatID int64, text string) {
	fireAt := time.Now().Add(quickRemindDelay)
	if _, err := b.Service.Schedule(userID, fireAt, text); err != nil {
		log.Printf("Ошибка при создании быстрого напоминания: %v", err)
		b.sendText(chatID, "❌ Не удалось создать напоминание.")
		return
	}

	b.sendText(chatID, fmt.Sprintf("Окей, напомню через 5 минут: «%s»", text))
}

// sendReminderList отправляет список ожидающих напоминаний с кнопками
// отмены и правки
func (b *Bot) sendReminderList(userID, chatID int64) {
	reminders := b.Service.List(userID)
	if len(reminders) == 0 {
		b.sendText(chatID, "У вас нет ожидающих напоминаний.")
		return
	}

	for i, r := range reminders {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить", "edit:"+r.ID),
				tgbotapi.NewInlineKeyboardButtonData("🚫 Отменить", "cancel:"+r.ID),
			),
		)

		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%d. 📅 %s\n📝 %s",
			i+1, utils.FormatFireAt(r.FireAt), r.Text))
		msg.ReplyMarkup = keyboard

		if _, err := b.API.Send(msg); err != nil {
			log.Printf("Ошибка при отправке списка напоминаний: %v", err)
		}
	}
}

// sendHistory отправляет последние завершённые напоминания
func (b *Bot) sendHistory(userID, chatID int64) {
	records, err := b.DB.GetHistoryByUser(userID, b.HistoryLimit)
	if err != nil {
		log.Printf("Ошибка при получении истории пользователя %d: %v", userID, err)
		b.sendText(chatID, "❌ Не удалось получить историю.")
		return
	}

	if len(records) == 0 {
		b.sendText(chatID, "История пуста.")
		return
	}

	text := "🗂 Последние напоминания:\n"
	for _, record := range records {
		mark := "🔔"
		if record.Status == models.StatusCancelled {
			mark = "🚫"
		}
		text += fmt.Sprintf("%s %s — %s\n", mark, utils.FormatFireAt(record.FireAt), record.Text)
	}

	b.sendText(chatID, text)
}

func (b *Bot) sendHelp(chatID int64) {
	b.sendText(chatID, "Доступные команды:\n"+
		"/new — создать напоминание (дата → время → текст)\n"+
		"/remind [текст] — напомнить через 5 минут\n"+
		"/list — ожидающие напоминания\n"+
		"/history — завершённые напоминания\n"+
		"/cancel — прервать текущий диалог\n"+
		"/help — эта справка")
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.API.Send(msg); err != nil {
		log.Printf("Ошибка при отправке сообщения в чат %d: %v", chatID, err)
	}
}
