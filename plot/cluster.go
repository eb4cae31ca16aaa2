package plot

import (
	"fmt"
	"sort"

	"github.com/pivolan/numchart/domain/models"
	"gonum.org/v1/gonum/mat"
)

// Clusters - разбиение строк матрицы данных на кластеры
type Clusters interface {
	Len() int
	Members(k int) []int
}

// Groups - номера строк каждого кластера
type Groups [][]int

func (g Groups) Len() int            { return len(g) }
func (g Groups) Members(k int) []int { return g[k] }

// Assignment - метка кластера для каждой строки (строка i -> кластер a[i]).
// Кластеры нумеруются по возрастанию меток, отрицательные метки (шум) пропускаются.
type Assignment []int

func (a Assignment) labels() []int {
	seen := map[int]bool{}
	var labels []int
	for _, l := range a {
		if l >= 0 && !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	sort.Ints(labels)
	return labels
}

func (a Assignment) Len() int { return len(a.labels()) }

func (a Assignment) Members(k int) []int {
	labels := a.labels()
	if k < 0 || k >= len(labels) {
		return nil
	}
	var rows []int
	for row, l := range a {
		if l == labels[k] {
			rows = append(rows, row)
		}
	}
	return rows
}

// ClusterSeries строит по серии на кластер из столбцов xCol и yCol матрицы data.
// Все индексы проверяются до построения первой серии.
func ClusterSeries(data mat.Matrix, clusters Clusters, xCol, yCol int, kind models.SeriesKind) ([]*models.Series, error) {
	rows, cols := data.Dims()
	for _, c := range []int{xCol, yCol} {
		if c < 0 || c >= cols {
			return nil, fmt.Errorf("column %d of %d: %w", c, cols, ErrOutOfRange)
		}
	}
	for k := 0; k < clusters.Len(); k++ {
		for _, row := range clusters.Members(k) {
			if row < 0 || row >= rows {
				return nil, fmt.Errorf("cluster %d: row %d of %d: %w", k, row, rows, ErrOutOfRange)
			}
		}
	}

	series := make([]*models.Series, 0, clusters.Len())
	for k := 0; k < clusters.Len(); k++ {
		members := clusters.Members(k)
		s := &models.Series{
			Name:   fmt.Sprintf("cluster %d", k+1),
			Kind:   kind,
			Marker: defaultMarker(kind),
			Points: make([]models.Point, len(members)),
		}
		for i, row := range members {
			s.Points[i] = models.Point{X: data.At(row, xCol), Y: data.At(row, yCol)}
		}
		series = append(series, s)
	}
	return series, nil
}
