package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pivolan/go_utils"
	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"gorm.io/gorm"
)

// ColumnStats - агрегаты одной числовой колонки таблицы
type ColumnStats struct {
	Name               string
	Count              int64
	Min, Max, Avg, Std float64
}

var statMethods = []string{"COUNT", "MIN", "MAX", "AVG", "STDDEV_POP"}

func excludeColumn(name string) bool {
	return go_utils.InArray(strings.ToLower(name), []string{"id", "slug"})
}

// numericColumns оставляет числовые колонки, кроме служебных
func numericColumns(columns []models.ColumnInfo) []models.ColumnInfo {
	var result []models.ColumnInfo
	for _, c := range columns {
		if excludeColumn(c.Name) || !IsNumericType(c.Type) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// generateSqlForNumericColumnsStats строит один SELECT со всеми агрегатами по всем колонкам
func generateSqlForNumericColumnsStats(columns []models.ColumnInfo, tableName string) string {
	var fields []string
	for i, c := range columns {
		for _, method := range statMethods {
			fields = append(fields, fmt.Sprintf("%s(%s) AS %s__%d", method, quoteIdent(c.Name), strings.ToLower(method), i))
		}
	}
	return "SELECT " + strings.Join(fields, ", ") + " FROM " + quoteIdent(tableName)
}

// Describe считает count/min/max/avg/std для всех числовых колонок таблицы одним запросом
func Describe(ctx context.Context, db *gorm.DB, tableName string) ([]ColumnStats, error) {
	all, err := Columns(ctx, db, tableName)
	if err != nil {
		return nil, err
	}
	columns := numericColumns(all)
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no numeric columns: %w", tableName, plot.ErrInvalidArgument)
	}

	rows, err := db.WithContext(ctx).Raw(generateSqlForNumericColumnsStats(columns, tableName)).Rows()
	if err != nil {
		return nil, fmt.Errorf("error querying stats for %s: %w", tableName, err)
	}
	defer rows.Close()

	values := make([]sql.NullFloat64, len(columns)*len(statMethods))
	dest := make([]interface{}, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading stats: %w", err)
		}
		return nil, fmt.Errorf("error reading stats for %s: empty result", tableName)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("error scanning stats: %w", err)
	}
	return statsFromRow(columns, values), nil
}

// statsFromRow раскладывает плоскую строку агрегатов по колонкам.
// NULL (пустая таблица) дает нули.
func statsFromRow(columns []models.ColumnInfo, values []sql.NullFloat64) []ColumnStats {
	stats := make([]ColumnStats, len(columns))
	n := len(statMethods)
	for i, c := range columns {
		v := values[i*n : (i+1)*n]
		stats[i] = ColumnStats{
			Name:  c.Name,
			Count: int64(v[0].Float64),
			Min:   v[1].Float64,
			Max:   v[2].Float64,
			Avg:   v[3].Float64,
			Std:   v[4].Float64,
		}
	}
	return stats
}

// FormatColumnStats печатает агрегаты таблицей
func FormatColumnStats(stats []ColumnStats) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Count", "Min", "Max", "Avg", "Std"})
	for _, s := range stats {
		t.AppendRow(table.Row{
			s.Name,
			humanize.Comma(s.Count),
			humanize.FtoaWithDigits(s.Min, 4),
			humanize.FtoaWithDigits(s.Max, 4),
			humanize.FtoaWithDigits(s.Avg, 4),
			humanize.FtoaWithDigits(s.Std, 4),
		})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}
