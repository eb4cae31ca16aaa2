package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pivolan/numchart/plot"
)

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006",
	"01/02/2006",
	"2006-01",
}

// ParseTime разбирает дату в одном из поддерживаемых форматов
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a date: %w", value, plot.ErrInvalidArgument)
}

// IsTimeColumn проверяет, похожи ли значения колонки на даты
func (t *Table) IsTimeColumn(name string) bool {
	col, err := t.Column(name)
	if err != nil {
		return false
	}
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if col < len(row) && strings.TrimSpace(row[col]) != "" {
			values = append(values, row[col])
		}
	}
	return len(values) > 0 && isDateData(values)
}

// TimeXY читает колонку дат как unix-секунды вместе с числовой колонкой.
// Строки с пропуском в любой из колонок отбрасываются.
func (t *Table) TimeXY(timeCol, valueCol string) ([]float64, []float64, error) {
	tc, err := t.Column(timeCol)
	if err != nil {
		return nil, nil, err
	}
	vc, err := t.Column(valueCol)
	if err != nil {
		return nil, nil, err
	}

	var xs, ys []float64
	for _, row := range t.Rows {
		if tc >= len(row) || vc >= len(row) {
			continue
		}
		ts, err := ParseTime(row[tc])
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[vc]), 64)
		if err != nil {
			continue
		}
		xs = append(xs, float64(ts.Unix()))
		ys = append(ys, v)
	}
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("no rows with %s and %s: %w", timeCol, valueCol, plot.ErrInvalidArgument)
	}
	return xs, ys, nil
}

// TimeUnit подбирает единицу подписи оси по длительности ряда
func TimeUnit(start, end time.Time) string {
	span := end.Sub(start)
	switch {
	case span > 3*365*24*time.Hour:
		return "year"
	case span > 90*24*time.Hour:
		return "month"
	case span > 3*24*time.Hour:
		return "day"
	default:
		return "hour"
	}
}

// isDateData проверяет, похожи ли данные на даты
func isDateData(values []string) bool {
	dateCount := 0
	for _, value := range values {
		if _, err := ParseTime(value); err == nil {
			dateCount++
		}
	}
	return float64(dateCount)/float64(len(values)) >= 0.8
}
