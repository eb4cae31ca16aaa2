package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pivolan/numchart/domain/models"
	"gopkg.in/yaml.v3"
)

const (
	defaultOutputDir = "."
	defaultShowAddr  = "127.0.0.1:8089"
)

type Config struct {
	DbDsn     string
	StylePath string
	OutputDir string
	ShowAddr  string
	Style     models.Style
}

var (
	config *Config
	once   sync.Once
)

// GetConfig возвращает singleton экземпляр конфигурации
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
		config = FromEnv()
	})
	return config
}

// FromEnv собирает конфигурацию из переменных окружения без кеширования
func FromEnv() *Config {
	c := &Config{
		DbDsn:     os.Getenv("DB_DSN"),
		StylePath: os.Getenv("NUMCHART_STYLE"),
		OutputDir: getenv("NUMCHART_OUTPUT_DIR", defaultOutputDir),
		ShowAddr:  getenv("NUMCHART_SHOW_ADDR", defaultShowAddr),
		Style:     models.DefaultStyle(),
	}
	if c.StylePath != "" {
		style, err := LoadStyle(c.StylePath)
		if err != nil {
			log.Printf("Error loading style %s, using defaults: %v", c.StylePath, err)
		} else {
			c.Style = style
		}
	}
	return c
}

// LoadStyle читает YAML со стилем поверх значений по умолчанию
func LoadStyle(path string) (models.Style, error) {
	style := models.DefaultStyle()
	data, err := os.ReadFile(path)
	if err != nil {
		return style, fmt.Errorf("error reading style file: %w", err)
	}
	return ParseStyle(data)
}

// ParseStyle разбирает YAML; незаданные поля остаются по умолчанию
func ParseStyle(data []byte) (models.Style, error) {
	style := models.DefaultStyle()
	if err := yaml.Unmarshal(data, &style); err != nil {
		return models.DefaultStyle(), fmt.Errorf("error parsing style: %w", err)
	}
	return style, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
