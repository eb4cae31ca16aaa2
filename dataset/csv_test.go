package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/pivolan/numchart/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeHeaders(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantHeaders []string
		wantIsData  bool
	}{
		{
			name:        "Valid headers",
			input:       []string{"Name", "Age", "Email", "Phone"},
			wantHeaders: []string{"name", "age", "email", "phone"},
		},
		{
			name:        "Numeric data",
			input:       []string{"123", "456", "789", "101"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Date data",
			input:       []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantHeaders: []string{"column_1", "column_2", "column_3"},
			wantIsData:  true,
		},
		{
			name:        "Special characters",
			input:       []string{"User Name!", "Age#", "Email@", "Phone$"},
			wantHeaders: []string{"user_name", "age", "email", "phone"},
		},
		{
			name:        "Duplicate headers",
			input:       []string{"Name", "Name", "Name", "Age"},
			wantHeaders: []string{"name", "name_1", "name_2", "age"},
		},
		{
			name:        "Empty headers",
			input:       []string{"", "", "", ""},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Cyrillic headers",
			input:       []string{"Время", "Напряжение"},
			wantHeaders: []string{"vremia", "napriazhenie"},
		},
		{
			name:        "Half numeric",
			input:       []string{"John", "30", "john@email.com", "123-456-7890"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeHeaders(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantHeaders, got.Headers)
			assert.Equal(t, tt.wantIsData, got.FirstRowIsData)
			assert.Equal(t, tt.input, got.FirstDataRow)
		})
	}

	assert.Nil(t, AnalyzeHeaders(nil))
}

func TestIsLikelyHeader(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"Name", true},
		{"User Name", true},
		{"123", false},
		{"2024-01-01", false},
		{"User#Name!", true},
		{"###", false},
		{"User123", true},
		{"колонка1", true},
		{"+1-234-567-8900", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyHeader(tt.input))
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	assert.Equal(t, []string{"name", "age"}, ValidateHeaders([]string{"name", "age"}))
	assert.Equal(t, []string{"name", "name_1", "name_2"}, ValidateHeaders([]string{"name", "name", "name"}))
	assert.Equal(t, []string{"a_1", "a", "a_1_1"}, ValidateHeaders([]string{"a_1", "a", "a_1"}))
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', DetectDelimiter("a,b,c\n1;2;3"))
	assert.Equal(t, ';', DetectDelimiter("a;b;c\n1,2,3"))
	assert.Equal(t, '\t', DetectDelimiter("a\tb"))
	assert.Equal(t, ',', DetectDelimiter("single"))
}

func TestLoadCSV(t *testing.T) {
	input := "time;value;name\n1;2.5;a\n2;3.5;b\n3;;c\n"
	table, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"time", "value", "name"}, table.Headers)
	assert.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"time", "value"}, table.NumericColumns())

	values, err := table.Numeric("value")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 3.5}, values)

	_, err = table.Numeric("name")
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)

	_, err = table.Numeric("missing")
	assert.ErrorIs(t, err, plot.ErrOutOfRange)

	m, err := table.Matrix("time", "value")
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 3.5, m.At(1, 1))
}

func TestNumericRowsKeepsRowNumbers(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("a,b\n1,x\n,y\n3,z\n"))
	require.NoError(t, err)
	rows, values, err := table.NumericRows("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, rows)
	assert.Equal(t, []float64{1, 3}, values)

	_, _, err = table.NumericRows("b")
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("1,2\n3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, table.Headers)
	assert.Len(t, table.Rows, 2)
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestMatrixNoRows(t *testing.T) {
	table := &Table{Headers: []string{"a"}, Rows: [][]string{{"x"}}}
	_, err := table.Matrix("a")
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
	_, err = table.Matrix()
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestTimeXY(t *testing.T) {
	input := "date,value\n2024-01-02,2\n2024-01-01,1\n2024-01-04,abc\n2024-01-03,\n"
	table, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, table.IsTimeColumn("date"))
	assert.False(t, table.IsTimeColumn("value"))

	xs, ys, err := table.TimeXY("date", "value")
	require.NoError(t, err)
	assert.Equal(t, []float64{1704153600, 1704067200}, xs)
	assert.Equal(t, []float64{2, 1}, ys)
}

func TestParseTime(t *testing.T) {
	for _, v := range []string{"2024-03-01", "01.03.2024", "2024-03-01 00:00:00", "2024-03-01T00:00:00Z"} {
		ts, err := ParseTime(v)
		require.NoError(t, err, v)
		assert.Equal(t, int64(1709251200), ts.Unix(), v)
	}
	_, err := ParseTime("yesterday")
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestTimeUnit(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "hour", TimeUnit(start, start.Add(5*time.Hour)))
	assert.Equal(t, "day", TimeUnit(start, start.AddDate(0, 0, 20)))
	assert.Equal(t, "month", TimeUnit(start, start.AddDate(1, 0, 0)))
	assert.Equal(t, "year", TimeUnit(start, start.AddDate(5, 0, 0)))
}
