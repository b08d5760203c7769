// Пакет model — доменные модели Auction Browser.
// API аукционов отдаёт данные «как получилось»: числа то строками, то числами,
// флаги то bool, то 0/1, то "igen"/"nem". Типы этого файла принимают все формы.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Location — часовой пояс, в котором API отдаёт даты без смещения.
// Задаётся при старте из конфигурации (AB_TIMEZONE).
var Location = time.UTC

// timestampLayouts — форматы дат, встречающиеся в ответах API.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// TimestampLayout — формат дат в предикатах фильтра.
const TimestampLayout = "2006-01-02T15:04:05"

// Timestamp — момент времени из API. Пустая строка и null дают нулевое значение.
type Timestamp struct {
	time.Time
}

// NewTimestamp создаёт Timestamp из time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp разбирает строку даты в одном из известных форматов.
// Даты без смещения интерпретируются в Location.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, Location)
		}
		if err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("некорректная дата %q", s)
}

// FormatTimestamp форматирует момент времени для значений предикатов.
func FormatTimestamp(t time.Time) string {
	return t.In(Location).Format(TimestampLayout)
}

// UnmarshalJSON принимает строку даты или null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("дата: ожидалась строка: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON отдаёт RFC3339 или null для нулевого значения.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Flag — булев признак, который API кодирует как bool, 0/1 или "igen"/"nem".
type Flag bool

// UnmarshalJSON принимает bool, число, строку или null (false).
func (f *Flag) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*f = false
		return nil
	}
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(raw) {
	case "true", "1", "igen", "yes", "i":
		*f = true
	case "false", "0", "nem", "no", "n", "":
		*f = false
	default:
		return fmt.Errorf("флаг: неизвестное значение %q", raw)
	}
	return nil
}

// Text — строковое поле, которое API иногда отдаёт числом.
type Text string

// UnmarshalJSON принимает строку, число или null.
func (s *Text) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*s = ""
		return nil
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Text(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("текстовое поле: ожидалась строка или число: %w", err)
	}
	*s = Text(n.String())
	return nil
}

// StringList — список строк; API может прислать массив или строку через запятую.
type StringList []string

// UnmarshalJSON принимает массив строк, строку "a, b" или null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*l = nil
		return nil
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("список: ожидался массив или строка: %w", err)
	}
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	*l = items
	return nil
}

// Count — целое число, которое может прийти строкой.
type Count int

// UnmarshalJSON принимает число, строку с числом или null (0).
func (c *Count) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*c = 0
		return nil
	}
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("целое: некорректное значение %q", raw)
	}
	*c = Count(n)
	return nil
}

// isNull сообщает, что JSON-значение — null.
func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
