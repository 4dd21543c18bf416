// Package config загружает настройки codestream: defaults, YAML-файл, .env,
// переменные окружения CODESTREAM_* и флаги командной строки.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Значения по умолчанию.
const (
	DefaultOutDir    = "."
	DefaultDirPerm   = "0755"
	DefaultFilePerm  = "0644"
	DefaultIndent    = 4
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	EnvPrefix        = "CODESTREAM_"
)

// Config — все настройки запуска.
type Config struct {
	OutDir    string   `koanf:"out_dir"`
	DirPerm   string   `koanf:"dir_perm"`
	FilePerm  string   `koanf:"file_perm"`
	Indent    int      `koanf:"indent"`
	Exclude   []string `koanf:"exclude"`
	LogLevel  string   `koanf:"log_level"`
	LogFormat string   `koanf:"log_format"`
	Verbose   bool     `koanf:"verbose"`
	Quiet     bool     `koanf:"quiet"`
}

// Validate проверяет значения, которые нельзя исправить молча.
func (c *Config) Validate() error {
	if c.Indent < 1 {
		return fmt.Errorf("indent должен быть >= 1, получено %d", c.Indent)
	}
	if _, err := c.DirMode(); err != nil {
		return fmt.Errorf("неверные права dir_perm: %w", err)
	}
	if _, err := c.FileMode(); err != nil {
		return fmt.Errorf("неверные права file_perm: %w", err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("неизвестный log_format %q (text|json)", c.LogFormat)
	}
	return nil
}

// DirMode — права для каталогов.
func (c *Config) DirMode() (os.FileMode, error) {
	return parsePerm(c.DirPerm, 0o755)
}

// FileMode — права для файлов.
func (c *Config) FileMode() (os.FileMode, error) {
	return parsePerm(c.FilePerm, 0o644)
}

// Level — уровень логирования; --verbose включает debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parsePerm(s string, def os.FileMode) (os.FileMode, error) {
	ss := strings.TrimSpace(s)
	if ss == "" {
		return def, nil
	}
	// base=0 понимает 0755/0o755; голое "755" считаем восьмеричным
	if !strings.HasPrefix(ss, "0") {
		ss = "0" + ss
	}
	u, err := strconv.ParseUint(ss, 0, 32)
	if err != nil {
		return 0, err
	}
	if u > 0o7777 {
		return 0, fmt.Errorf("слишком большое значение %s", s)
	}
	return os.FileMode(u), nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("неизвестный log_level %q", s)
	}
	return lvl, nil
}
