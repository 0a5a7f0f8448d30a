package utils

import (
	"testing"
	"time"
)

func TestParseDateKeywords(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.Local)

	date, err := ParseDate("сегодня", now)
	if err != nil {
		t.Fatalf("сегодня: %v", err)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	if !date.Equal(want) {
		t.Errorf("сегодня: получено %s, ожидалось %s", date, want)
	}

	date, err = ParseDate(" Завтра ", now)
	if err != nil {
		t.Fatalf("завтра: %v", err)
	}
	want = time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	if !date.Equal(want) {
		t.Errorf("завтра: получено %s, ожидалось %s", date, want)
	}
}

func TestParseDateLiteral(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	date, err := ParseDate("01.09.2025", now)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	if !date.Equal(want) {
		t.Errorf("получено %s, ожидалось %s", date, want)
	}
}

func TestParseDateInvalid(t *testing.T) {
	now := time.Now()

	cases := []string{
		"",
		"послезавтра",
		"2025-09-01",
		"1.2",
		"32.01.2025",
		"01.13.2025",
		"01.01.1800",
		"31.02.2025", // несуществующая дата
	}

	for _, input := range cases {
		if _, err := ParseDate(input, now); err == nil {
			t.Errorf("ParseDate(%q): ожидалась ошибка", input)
		}
	}
}

func TestParseTime(t *testing.T) {
	hour, minute, err := ParseTime("09:05")
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	if hour != 9 || minute != 5 {
		t.Errorf("получено %d:%d, ожидалось 9:05", hour, minute)
	}

	hour, minute, err = ParseTime(" 23:59 ")
	if err != nil {
		t.Fatalf("ParseTime с пробелами: %v", err)
	}
	if hour != 23 || minute != 59 {
		t.Errorf("получено %d:%d, ожидалось 23:59", hour, minute)
	}
}

func TestParseTimeInvalid(t *testing.T) {
	cases := []string{
		"",
		"9",
		"9.30",
		"24:00",
		"12:60",
		"-1:30",
		"ab:cd",
	}

	for _, input := range cases {
		if _, _, err := ParseTime(input); err == nil {
			t.Errorf("ParseTime(%q): ожидалась ошибка", input)
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	got := CombineDateTime(date, 14, 30)
	want := time.Date(2025, 9, 1, 14, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("получено %s, ожидалось %s", got, want)
	}
}

func TestFormatFireAt(t *testing.T) {
	fireAt := time.Date(2025, 9, 1, 14, 30, 0, 0, time.Local)
	if got := FormatFireAt(fireAt); got != "01.09.2025 14:30" {
		t.Errorf("получено %q", got)
	}
}
