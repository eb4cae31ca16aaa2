package plot

import (
	"fmt"
	"math/cmplx"

	"github.com/pivolan/numchart/domain/models"
	"gonum.org/v1/gonum/mat"
)

// Sequence - числовая последовательность, из которой строится одна ось серии.
// Любой тип из числовой библиотеки приводится к ней адаптером ниже.
type Sequence interface {
	Len() int
	At(i int) float64
}

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type values[T Number] []T

func (v values[T]) Len() int         { return len(v) }
func (v values[T]) At(i int) float64 { return float64(v[i]) }

// Values оборачивает срез любого числового типа
func Values[T Number](v []T) Sequence {
	return values[T](v)
}

type vector struct{ v mat.Vector }

func (s vector) Len() int         { return s.v.Len() }
func (s vector) At(i int) float64 { return s.v.AtVec(i) }

// Vector оборачивает gonum вектор (VecDense, ColViewOf и т.п.)
func Vector(v mat.Vector) Sequence {
	return vector{v: v}
}

type magnitudes []complex128

func (m magnitudes) Len() int         { return len(m) }
func (m magnitudes) At(i int) float64 { return cmplx.Abs(m[i]) }

// Magnitudes представляет комплексные значения их модулями
func Magnitudes(c []complex128) Sequence {
	return magnitudes(c)
}

type implicit struct {
	unit models.AxisUnit
	n    int
}

func (s implicit) Len() int         { return s.n }
func (s implicit) At(i int) float64 { return s.unit.Start + float64(i)*s.unit.Step }

// Implicit строит ось x из AxisUnit, когда заданы только значения y
func Implicit(unit models.AxisUnit, n int) Sequence {
	if n < 0 {
		n = 0
	}
	return implicit{unit: unit, n: n}
}

// Column выбирает столбец j матрицы
func Column(m mat.Matrix, j int) (Sequence, error) {
	_, c := m.Dims()
	if j < 0 || j >= c {
		return nil, fmt.Errorf("column %d of %d: %w", j, c, ErrOutOfRange)
	}
	return Values(mat.Col(nil, j, m)), nil
}

// Row выбирает строку i матрицы
func Row(m mat.Matrix, i int) (Sequence, error) {
	r, _ := m.Dims()
	if i < 0 || i >= r {
		return nil, fmt.Errorf("row %d of %d: %w", i, r, ErrOutOfRange)
	}
	return Values(mat.Row(nil, i, m)), nil
}

// Collect копирует последовательность в срез
func Collect(s Sequence) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}
