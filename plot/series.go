package plot

import (
	"fmt"
	"strings"

	"github.com/pivolan/go_utils"
	"github.com/pivolan/numchart/domain/models"
	"gonum.org/v1/gonum/mat"
)

// NewSeries соединяет две последовательности в серию заданного типа.
// Длины должны совпадать, иначе ErrSizeMismatch.
func NewSeries(name string, kind models.SeriesKind, x, y Sequence) (*models.Series, error) {
	if x.Len() != y.Len() {
		return nil, fmt.Errorf("series %q: x has %d values, y has %d: %w", name, x.Len(), y.Len(), ErrSizeMismatch)
	}
	s := &models.Series{
		Name:   name,
		Kind:   kind,
		Marker: defaultMarker(kind),
		Points: make([]models.Point, x.Len()),
	}
	for i := range s.Points {
		s.Points[i] = models.Point{X: x.At(i), Y: y.At(i)}
	}
	return s, nil
}

// NewSeriesY строит серию только по y, ось x берется из unit
func NewSeriesY(name string, kind models.SeriesKind, unit models.AxisUnit, y Sequence) *models.Series {
	s, _ := NewSeries(name, kind, Implicit(unit, y.Len()), y)
	return s
}

// MatrixSeries строит по серии на каждый столбец матрицы против общей оси x
func MatrixSeries(m mat.Matrix, x Sequence, kind models.SeriesKind, names []string) ([]*models.Series, error) {
	rows, cols := m.Dims()
	if x.Len() != rows {
		return nil, fmt.Errorf("matrix has %d rows, x has %d values: %w", rows, x.Len(), ErrSizeMismatch)
	}
	series := make([]*models.Series, 0, cols)
	for j := 0; j < cols; j++ {
		col, err := Column(m, j)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("column_%d", j+1)
		if j < len(names) && names[j] != "" {
			name = names[j]
		}
		s, err := NewSeries(name, kind, x, col)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, nil
}

// ParseKind разбирает имя типа серии ("line", "scatter", "column", "bar")
func ParseKind(kind string) (models.SeriesKind, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !go_utils.InArray(kind, models.SeriesKinds) {
		return "", fmt.Errorf("series kind %q: %w", kind, ErrInvalidArgument)
	}
	return models.SeriesKind(kind), nil
}

func defaultMarker(kind models.SeriesKind) models.MarkerStyle {
	if kind == models.KindScatter {
		return models.MarkerCircle
	}
	return models.MarkerNone
}
