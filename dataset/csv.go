package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/numchart/plot"
	"gonum.org/v1/gonum/mat"
)

type HeaderAnalysis struct {
	Headers        []string // Итоговые заголовки
	FirstRowIsData bool     // Является ли первая строка данными
	FirstDataRow   []string // Первая строка с данными
}

// Table таблица, прочитанная из CSV
type Table struct {
	Headers []string
	Rows    [][]string
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}\.\d+$`),
}

var nonAlnum = regexp.MustCompile("[^a-zA-Z0-9]+")

// LoadCSV читает CSV, определяя разделитель и наличие строки заголовков
func LoadCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = DetectDelimiter(string(head))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("error reading csv: empty input: %w", plot.ErrInvalidArgument)
	}

	analysis := AnalyzeHeaders(records[0])
	table := &Table{Headers: analysis.Headers}
	if analysis.FirstRowIsData {
		table.Rows = records
	} else {
		table.Rows = records[1:]
	}
	return table, nil
}

// DetectDelimiter выбирает самый частый из допустимых разделителей в первой строке
func DetectDelimiter(sample string) rune {
	line := sample
	if i := strings.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// Column возвращает индекс колонки по имени
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Headers {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q: %w", name, plot.ErrOutOfRange)
}

// Numeric возвращает значения колонки как числа.
// Пустые ячейки пропускаются, нечисловые дают ошибку.
func (t *Table) Numeric(name string) ([]float64, error) {
	_, values, err := t.NumericRows(name)
	return values, err
}

// NumericRows возвращает непустые значения колонки вместе с номерами их строк (с 1)
func (t *Table) NumericRows(name string) ([]float64, []float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]float64, 0, len(t.Rows))
	values := make([]float64, 0, len(t.Rows))
	for i, row := range t.Rows {
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("column %q row %d: %q is not a number: %w", name, i+1, row[col], plot.ErrInvalidArgument)
		}
		rows = append(rows, float64(i+1))
		values = append(values, v)
	}
	return rows, values, nil
}

// NumericColumns возвращает имена колонок, похожих на числовые
func (t *Table) NumericColumns() []string {
	var names []string
	for i, h := range t.Headers {
		values := make([]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				values = append(values, row[i])
			}
		}
		if len(values) > 0 && isNumericData(values) {
			names = append(names, h)
		}
	}
	return names
}

// Matrix собирает указанные колонки в матрицу; строки с пропусками отбрасываются
func (t *Table) Matrix(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no columns selected: %w", plot.ErrInvalidArgument)
	}
	cols := make([]int, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	var data []float64
	rows := 0
	for _, row := range t.Rows {
		values := make([]float64, 0, len(cols))
		for _, col := range cols {
			if col >= len(row) {
				break
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				break
			}
			values = append(values, v)
		}
		if len(values) != len(cols) {
			continue
		}
		data = append(data, values...)
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("no numeric rows in %v: %w", names, plot.ErrInvalidArgument)
	}
	return mat.NewDense(rows, len(cols), data), nil
}

// AnalyzeHeaders анализирует первую строку CSV и определяет структуру заголовков
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{
		Headers:      make([]string, len(firstRow)),
		FirstDataRow: firstRow,
	}

	// Подсчитываем, сколько полей похожи на заголовки
	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) > 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// isLikelyHeader определяет, похож ли текст на заголовок
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, re := range datePatterns {
		if re.MatchString(text) {
			return false
		}
	}

	letters, total := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
			total++
		case unicode.IsSpace(r):
		default:
			total++
		}
	}
	// Если букв больше 30% от всех символов - вероятно это заголовок
	return letters > 0 && float64(letters)/float64(total) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders проверяет и исправляет дубликаты в заголовках
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]bool)
	result := make([]string, len(headers))

	for i, header := range headers {
		candidate := header
		for counter := 1; seen[candidate]; counter++ {
			candidate = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[candidate] = true
		result[i] = candidate
	}
	return result
}

// isNumericData проверяет, похожи ли данные на числовые значения
func isNumericData(values []string) bool {
	numericCount := 0
	for _, value := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			numericCount++
		}
	}
	return float64(numericCount)/float64(len(values)) >= 0.8
}

// cleanHeaderName транслитерирует и нормализует имя заголовка
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	cleaned := replaceSpecialSymbols(unidecode.Unidecode(header))
	if cleaned == "" {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}

func replaceSpecialSymbols(input string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(input, "_"), "_")
}
