package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pivolan/go_utils"
	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var numericTypes = []string{
	"tinyint", "smallint", "mediumint", "int", "integer", "bigint",
	"float", "double", "real", "decimal", "numeric",
}

// OpenDB подключается к MySQL-совместимой базе по DSN
func OpenDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("error connecting to database: empty DSN: %w", plot.ErrInvalidArgument)
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}

// IsNumericType проверяет тип колонки: int(11) unsigned, double, decimal(10,2) ...
func IsNumericType(_type string) bool {
	base := strings.ToLower(strings.TrimSpace(_type))
	if i := strings.IndexAny(base, "( "); i >= 0 {
		base = base[:i]
	}
	return go_utils.InArray(base, numericTypes)
}

// Columns возвращает колонки таблицы и их типы
func Columns(ctx context.Context, db *gorm.DB, tableName string) ([]models.ColumnInfo, error) {
	var rows []struct {
		Field string
		Type  string
	}
	tx := db.WithContext(ctx).Raw(fmt.Sprintf("DESCRIBE %s", quoteIdent(tableName))).Scan(&rows)
	if tx.Error != nil {
		return nil, fmt.Errorf("error describing table %s: %w", tableName, tx.Error)
	}
	columns := make([]models.ColumnInfo, len(rows))
	for i, r := range rows {
		columns[i] = models.ColumnInfo{Name: r.Field, Type: r.Type}
	}
	return columns, nil
}

// LoadXY читает две числовые колонки таблицы, отсортированные по x.
// NULL в любой из колонок пропускается.
func LoadXY(ctx context.Context, db *gorm.DB, tableName, xCol, yCol string, limit int) ([]float64, []float64, error) {
	columns, err := Columns(ctx, db, tableName)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range []string{xCol, yCol} {
		if err := checkNumericColumn(columns, name); err != nil {
			return nil, nil, err
		}
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s IS NOT NULL AND %s IS NOT NULL ORDER BY %s",
		quoteIdent(xCol), quoteIdent(yCol), quoteIdent(tableName),
		quoteIdent(xCol), quoteIdent(yCol), quoteIdent(xCol))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, nil, fmt.Errorf("error querying %s: %w", tableName, err)
	}
	defer rows.Close()

	var xs, ys []float64
	for rows.Next() {
		var x, y sql.NullFloat64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, nil, fmt.Errorf("error scanning row: %w", err)
		}
		if !x.Valid || !y.Valid {
			continue
		}
		xs = append(xs, x.Float64)
		ys = append(ys, y.Float64)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading rows: %w", err)
	}
	return xs, ys, nil
}

func checkNumericColumn(columns []models.ColumnInfo, name string) error {
	for _, c := range columns {
		if c.Name != name {
			continue
		}
		if !IsNumericType(c.Type) {
			return fmt.Errorf("column %s has type %s: %w", name, c.Type, plot.ErrInvalidArgument)
		}
		return nil
	}
	return fmt.Errorf("column %q: %w", name, plot.ErrOutOfRange)
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
