package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate разбирает дату, введённую пользователем: ключевые слова
// "сегодня" и "завтра" (относительно now) или дата в формате ДД.ММ.ГГГГ.
// Возвращает дату с обнулённым временем в локальной зоне.
func ParseDate(input string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "сегодня":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	case "завтра":
		tomorrow := now.AddDate(0, 0, 1)
		return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.Local), nil
	}

	// Ожидаем дату в формате ДД.ММ.ГГГГ
	parts := strings.Split(strings.TrimSpace(input), ".")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("неверный формат даты, используйте ДД.ММ.ГГГГ, «сегодня» или «завтра»")
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("неверный день")
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("неверный месяц")
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 1900 || year > 2100 {
		return time.Time{}, fmt.Errorf("неверный год")
	}

	// Проверка на валидность даты
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("несуществующая дата")
	}

	return date, nil
}

// ParseTime разбирает время в формате ЧЧ:ММ (24-часовой формат)
func ParseTime(input string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("неверный формат времени, используйте ЧЧ:ММ")
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("неверный час (0-23)")
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("неверная минута (0-59)")
	}

	return hour, minute, nil
}

// CombineDateTime собирает момент срабатывания из даты и времени
func CombineDateTime(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.Local)
}

// FormatFireAt форматирует момент срабатывания для отображения пользователю
func FormatFireAt(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}
