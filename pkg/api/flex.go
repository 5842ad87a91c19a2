package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexString принимает из JSON как строку, так и число.
// Бэкенд отдает идентификаторы то числом, то строкой.
type FlexString string

// UnmarshalJSON реализует json.Unmarshaler
func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex string: unsupported value %s", b)
	}
	*s = FlexString(n.String())
	return nil
}

// String возвращает значение как строку
func (s FlexString) String() string { return string(s) }

// FlexFloat принимает число или десятичную строку ("12.50")
type FlexFloat float64

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("flex float: %w", err)
		}
		*f = FlexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// Float64 возвращает значение как float64
func (f FlexFloat) Float64() float64 { return float64(f) }

// FirstNonEmpty возвращает первое непустое значение
func FirstNonEmpty(values ...FlexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTime разбирает дату в одном из форматов, которые встречаются в ответах бэкенда.
// Возвращает нулевое время, если ни одно значение не подошло.
func ParseTime(values ...string) time.Time {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// Page конверт постраничного ответа
type Page[T any] struct {
	Next     *string `json:"next"`     // ссылка на следующую страницу
	Previous *string `json:"previous"` // ссылка на предыдущую страницу
	Results  []T     `json:"results"`  // элементы страницы
	Count    int     `json:"count"`    // общее количество
}

// DecodeList разбирает тело списка: голый массив или конверт {"results": [...]}
func DecodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []T{}, nil
	}
	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	}
	var page Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	if page.Results == nil {
		return []T{}, nil
	}
	return page.Results, nil
}
