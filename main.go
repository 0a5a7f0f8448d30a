package main

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/awhatson15/remindme-bot/bot"
	"github.com/awhatson15/remindme-bot/config"
	"github.com/awhatson15/remindme-bot/db"
	"github.com/awhatson15/remindme-bot/reminder"
	"github.com/awhatson15/remindme-bot/session"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Настраиваем логирование
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Запуск RemindMeBot...")

	// Инициализируем базу данных истории
	database, err := db.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Ошибка при инициализации базы данных: %v", err)
	}
	defer database.Close()

	// Создаем схему базы данных
	err = database.InitSchema()
	if err != nil {
		log.Fatalf("Ошибка при создании схемы базы данных: %v", err)
	}

	// Создаем экземпляр бота: он же доставляет события пользователям
	telegramBot, err := bot.NewBot(cfg.BotToken)
	if err != nil {
		log.Fatalf("Ошибка при создании бота: %v", err)
	}
	telegramBot.HistoryLimit = cfg.HistoryLimit

	// Собираем ядро: хранилище, планировщик и менеджер диалогов
	clock := reminder.SystemClock{}
	service := reminder.NewService(reminder.NewStore(), clock, telegramBot, database)
	sessions := session.NewManager(service, telegramBot, clock)

	telegramBot.Service = service
	telegramBot.Sessions = sessions
	telegramBot.DB = database

	// Настраиваем планировщик для ежедневной сводки напоминаний
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.DigestSchedule, func() {
		for _, owner := range service.Owners() {
			reminders := service.List(owner)
			if len(reminders) == 0 {
				continue
			}
			if err := telegramBot.SendDigest(owner, reminders); err != nil {
				log.Printf("Ошибка при отправке сводки пользователю %d: %v", owner, err)
			}
		}
	})
	if err != nil {
		log.Printf("Ошибка при настройке планировщика сводок: %v", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	// Запускаем бота
	log.Println("Бот успешно запущен")
	telegramBot.Start()
}
