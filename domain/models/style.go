package models

// Style хранит значения по умолчанию для новых графиков и серий.
// Передается явно в каждый вызов привязки вместо глобального состояния.
type Style struct {
	Width          int         `yaml:"width"`
	Height         int         `yaml:"height"`
	TitleFont      Font        `yaml:"title_font"`
	SubtitleFont   Font        `yaml:"subtitle_font"`
	AxisFont       Font        `yaml:"axis_font"`
	GridColor      string      `yaml:"grid_color"`
	Palette        []string    `yaml:"palette"`
	MarkerSize     int         `yaml:"marker_size"`
	Marker         MarkerStyle `yaml:"marker"`
	LegendBordered bool        `yaml:"legend_bordered"`
}

var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

func DefaultStyle() Style {
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)
	return Style{
		Width:          900,
		Height:         600,
		TitleFont:      Font{Family: "sans", Size: 16, Bold: true},
		SubtitleFont:   Font{Family: "sans", Size: 12},
		AxisFont:       Font{Family: "sans", Size: 11},
		GridColor:      "#d3d3d3",
		Palette:        palette,
		MarkerSize:     5,
		Marker:         MarkerCircle,
		LegendBordered: true,
	}
}
