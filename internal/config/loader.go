package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// configNames — где искать файл настроек, если --config не задан.
var configNames = []string{"codestream.yaml", "codestream.yml", ".codestream.yaml"}

// flagKeys — флаги, чьи имена не совпадают с ключами конфига.
var flagKeys = map[string]string{
	"dperm": "dir_perm",
	"fperm": "file_perm",
}

// skipFlags — флаги, которые не относятся к конфигу.
var skipFlags = map[string]bool{
	"config":  true,
	"help":    true,
	"version": true,
	"dry":     true,
	"watch":   true,
}

// LoadOptions — откуда брать настройки.
type LoadOptions struct {
	File  string         // явный путь к YAML; пусто — поиск в Dir
	Dir   string         // каталог для поиска файла и .env; пусто — CWD
	Flags *pflag.FlagSet // изменённые флаги перекрывают всё остальное
}

// Loaded — итоговый конфиг и использованный файл (если был).
type Loaded struct {
	Config   *Config
	FileUsed string
}

// Load собирает конфиг. Приоритет: флаги > env > файл > defaults.
func Load(o LoadOptions) (*Loaded, error) {
	k := koanf.New(".")

	dir := o.Dir
	if dir == "" {
		dir = "."
	}

	// 1) Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"out_dir":    DefaultOutDir,
		"dir_perm":   DefaultDirPerm,
		"file_perm":  DefaultFilePerm,
		"indent":     DefaultIndent,
		"exclude":    []string{},
		"log_level":  DefaultLogLevel,
		"log_format": DefaultLogFormat,
		"verbose":    false,
		"quiet":      false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("не удалось загрузить defaults: %w", err)
	}

	// 2) YAML-файл
	cfgFile := o.File
	if cfgFile == "" {
		cfgFile = findConfigFile(dir)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("ошибка чтения конфига %s: %w", cfgFile, err)
		}
	}

	// 3) .env (не перекрывает уже заданные переменные) и CODESTREAM_*
	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "exclude" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("не удалось загрузить переменные окружения: %w", err)
	}

	// 4) Флаги — только явно заданные
	if o.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(o.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || skipFlags[f.Name] {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(o.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("не удалось загрузить флаги: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось разобрать конфиг: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Loaded{Config: &cfg, FileUsed: cfgFile}, nil
}

func findConfigFile(dir string) string {
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadDotEnv(dir string) error {
	p := filepath.Join(dir, ".env")
	if err := godotenv.Load(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("ошибка чтения %s: %w", p, err)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
