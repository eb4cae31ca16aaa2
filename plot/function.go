package plot

import (
	"math"
	"sort"

	"github.com/pivolan/numchart/domain/models"
)

// KeyValue - подписанное значение x, которое нужно отметить на кривой
type KeyValue struct {
	X     float64
	Label string
}

// SampleFunction вычисляет f в n равноотстоящих точках на [xmin, xmax].
// При n <= 0 серия пустая, при xmin > xmax границы меняются местами.
func SampleFunction(name string, kind models.SeriesKind, f func(float64) float64, xmin, xmax float64, n int) *models.Series {
	s := &models.Series{Name: name, Kind: kind, Marker: defaultMarker(kind)}
	if n <= 0 {
		return s
	}
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	s.Points = make([]models.Point, n)
	if n == 1 {
		s.Points[0] = models.Point{X: xmin, Y: f(xmin)}
		return s
	}
	step := (xmax - xmin) / float64(n-1)
	for i := range s.Points {
		x := xmin + float64(i)*step
		if i == n-1 {
			x = xmax
		}
		s.Points[i] = models.Point{X: x, Y: f(x)}
	}
	return s
}

// AnnotateKeys отмечает ключевые значения на отсортированной по x серии.
// Совпавшая точка получает подпись и маркер, иначе между соседними точками
// вставляется новая точка (x, f(x)). Ключи вне диапазона серии и NaN пропускаются.
func AnnotateKeys(s *models.Series, f func(float64) float64, keys []KeyValue) {
	for _, key := range keys {
		n := len(s.Points)
		if n == 0 || math.IsNaN(key.X) || key.X < s.Points[0].X || key.X > s.Points[n-1].X {
			continue
		}
		i := sort.Search(n, func(i int) bool { return s.Points[i].X >= key.X })
		if s.Points[i].X == key.X {
			s.Points[i].Label = key.Label
			s.Points[i].Marker = models.MarkerDiamond
			continue
		}
		p := models.Point{X: key.X, Y: f(key.X), Label: key.Label, Marker: models.MarkerDiamond}
		s.Points = append(s.Points, models.Point{})
		copy(s.Points[i+1:], s.Points[i:])
		s.Points[i] = p
	}
}
