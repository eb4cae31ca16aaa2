package models

type SeriesKind string
type MarkerStyle string

const (
	KindLine    SeriesKind = "line"
	KindScatter SeriesKind = "scatter"
	KindColumn  SeriesKind = "column"
	KindBar     SeriesKind = "bar"
)

const (
	MarkerNone     MarkerStyle = "none"
	MarkerCircle   MarkerStyle = "circle"
	MarkerSquare   MarkerStyle = "square"
	MarkerDiamond  MarkerStyle = "diamond"
	MarkerTriangle MarkerStyle = "triangle"
	MarkerCross    MarkerStyle = "cross"
)

// SeriesKinds перечисляет все поддерживаемые типы серий
var SeriesKinds = []string{string(KindLine), string(KindScatter), string(KindColumn), string(KindBar)}

type Point struct {
	X      float64
	Y      float64
	Label  string      // подпись ключевой точки, пусто для обычных
	Marker MarkerStyle // маркер ключевой точки, пусто = маркер серии
}

type Series struct {
	Name       string
	Kind       SeriesKind
	Marker     MarkerStyle
	MarkerSize int
	Color      string // hex, например "#1f77b4"
	Points     []Point
}

// Len возвращает количество точек серии
func (s *Series) Len() int {
	return len(s.Points)
}

// XValues и YValues возвращают координаты в порядке точек
func (s *Series) XValues() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
	}
	return xs
}

func (s *Series) YValues() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

type Font struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"`
	Bold   bool    `yaml:"bold"`
}

type Title struct {
	Text string
	Main bool
	Font Font
}

type Axis struct {
	Title     string
	Font      Font
	GridColor string
	TimeUnit  string // year, month, day, hour; пусто = числовая ось
}

type Legend struct {
	Bordered bool
	Swatch   string
}

// SeriesListener вызывается при каждой вставке серии в график.
// replaced = true, если на позиции index уже была серия.
type SeriesListener func(index int, s *Series, replaced bool)

type Chart struct {
	Width     int
	Height    int
	Palette   []string
	Series    []*Series
	Titles    []Title
	XAxis     Axis
	YAxis     Axis
	Legend    *Legend
	Listeners []SeriesListener
}

// MainTitle возвращает текст главного заголовка или пустую строку
func (c *Chart) MainTitle() string {
	for _, t := range c.Titles {
		if t.Main {
			return t.Text
		}
	}
	if len(c.Titles) > 0 {
		return c.Titles[0].Text
	}
	return ""
}

// Subtitles возвращает тексты всех заголовков, кроме главного
func (c *Chart) Subtitles() []string {
	main := 0
	for i, t := range c.Titles {
		if t.Main {
			main = i
			break
		}
	}
	var subs []string
	for i, t := range c.Titles {
		if i != main {
			subs = append(subs, t.Text)
		}
	}
	return subs
}

type AxisUnit struct {
	Start float64
	Step  float64
	Name  string
}

// Values строит арифметическую прогрессию Start, Start+Step, ... длины n
func (u AxisUnit) Values(n int) []float64 {
	if n <= 0 {
		return nil
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = u.Start + float64(i)*u.Step
	}
	return xs
}

type ColumnInfo struct {
	Name string
	Type string //Date DateTime64 Int64 Float64
}
