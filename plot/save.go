package plot

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/numchart/domain/models"
	uuid "github.com/satori/go.uuid"
	"github.com/wcharczuk/go-chart/v2"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatEPS  Format = "eps"
	FormatJPG  Format = "jpg"
	FormatTIFF Format = "tiff"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// FormatFromPath определяет формат по расширению файла
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "svg", "pdf", "eps", "xlsx", "html":
		return Format(ext), nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("file extension %q: %w", ext, ErrUnsupportedFormat)
}

// Render отрисовывает график в w в заданном формате
func Render(c *models.Chart, w io.Writer, format Format) error {
	switch format {
	case FormatPNG:
		return renderGoChart(c, w, chart.PNG)
	case FormatSVG:
		return renderGoChart(c, w, chart.SVG)
	case FormatPDF, FormatEPS, FormatJPG, FormatTIFF:
		return renderGonum(c, w, string(format))
	case FormatXLSX:
		return renderXLSX(c, w)
	case FormatHTML:
		return renderHTML(c, w)
	}
	return fmt.Errorf("format %q: %w", format, ErrUnsupportedFormat)
}

// Save сохраняет график в файл, формат выбирается по расширению.
// Пустой путь заменяется на имя из заголовка и uuid в формате PNG.
func Save(c *models.Chart, path string) (string, error) {
	if path == "" {
		path = DefaultFileName(c, FormatPNG)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("error creating directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	if err := Render(c, file, format); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("error writing file: %w", err)
	}
	log.Printf("chart %q saved to %s", c.MainTitle(), path)
	return path, nil
}

var nonSlug = regexp.MustCompile("[^a-z0-9]+")

// DefaultFileName строит имя файла из транслитерированного заголовка и uuid
func DefaultFileName(c *models.Chart, format Format) string {
	name := strings.ToLower(unidecode.Unidecode(c.MainTitle()))
	name = strings.Trim(nonSlug.ReplaceAllString(name, "_"), "_")
	if name == "" {
		name = "chart"
	}
	return fmt.Sprintf("%s-%s.%s", name, uuid.NewV4().String(), format)
}
