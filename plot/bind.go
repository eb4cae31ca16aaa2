package plot

import (
	"github.com/pivolan/numchart/domain/models"
)

const legendSwatch = "rectangle"

// NewChart создает пустой график размера по умолчанию без легенды
func NewChart(style models.Style) *models.Chart {
	palette := make([]string, len(style.Palette))
	copy(palette, style.Palette)
	return &models.Chart{
		Width:   style.Width,
		Height:  style.Height,
		Palette: palette,
	}
}

// ToChart привязывает серии к новому графику
func ToChart(style models.Style, series []*models.Series, titles []string, xTitle, yTitle string) *models.Chart {
	return Bind(NewChart(style), style, series, titles, xTitle, yTitle)
}

// Update привязывает серии к существующему графику, сохраняя настройки,
// сделанные вызывающей стороной между вызовами.
func Update(c *models.Chart, style models.Style, series []*models.Series, titles []string, xTitle, yTitle string) *models.Chart {
	return Bind(c, style, series, titles, xTitle, yTitle)
}

// Bind объединяет серии и заголовки с графиком:
//   - заголовки осей ставятся только на оси без заголовка, каждая ось отдельно;
//   - заголовки графика добавляются только если их еще нет, первый - главный;
//   - серия i заменяет серию на позиции i или добавляется в конец;
//   - легенда добавляется один раз и только если серий больше одной.
//
// Входные данные должны быть уже проверены, ошибок Bind не возвращает.
func Bind(c *models.Chart, style models.Style, series []*models.Series, titles []string, xTitle, yTitle string) *models.Chart {
	bindAxis(&c.XAxis, style, xTitle)
	bindAxis(&c.YAxis, style, yTitle)

	if len(c.Titles) == 0 {
		for i, text := range titles {
			t := models.Title{Text: text, Font: style.SubtitleFont}
			if i == 0 {
				t.Main = true
				t.Font = style.TitleFont
			}
			c.Titles = append(c.Titles, t)
		}
	}

	palette := c.Palette
	if len(palette) == 0 {
		palette = style.Palette
	}
	for i, s := range series {
		if len(palette) > 0 {
			s.Color = palette[i%len(palette)]
		}
		s.MarkerSize = style.MarkerSize
		upsertSeries(c, i, s)
	}

	if len(series) > 1 && c.Legend == nil {
		c.Legend = &models.Legend{Bordered: style.LegendBordered, Swatch: legendSwatch}
	}
	return c
}

func bindAxis(a *models.Axis, style models.Style, title string) {
	if a.Title != "" || title == "" {
		return
	}
	a.Title = title
	a.Font = style.AxisFont
	a.GridColor = style.GridColor
}

// upsertSeries ставит s на позицию index. Слушатели графика сохраняются
// и получают уведомление о каждой вставке.
func upsertSeries(c *models.Chart, index int, s *models.Series) {
	replaced := index < len(c.Series)
	if replaced {
		c.Series[index] = s
	} else {
		c.Series = append(c.Series, s)
	}
	for _, l := range c.Listeners {
		l(index, s, replaced)
	}
}
