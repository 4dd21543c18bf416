package fsops

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"codestream/internal/plan"
	"codestream/internal/safety"
)

// ErrConflict — по пути уже есть объект другого типа (файл вместо каталога или наоборот).
var ErrConflict = errors.New("конфликт типов")

// PlaceholderFormat — содержимое создаваемых файлов.
const PlaceholderFormat = "# Placeholder for %s"

// ApplyArgs — параметры материализации outline на диск.
type ApplyArgs struct {
	Plan     plan.Plan
	Base     string
	DryRun   bool
	DirPerm  os.FileMode
	FilePerm os.FileMode
	Logger   *slog.Logger
}

// Stats — что было создано (или было бы создано в dry-run).
type Stats struct {
	Dirs  int
	Files int
}

// Apply создаёт каталоги и файлы по плану.
// Первая ошибка прерывает работу; уже созданное остаётся на диске.
func Apply(a ApplyArgs) (Stats, error) {
	a = withDefaults(a)
	var st Stats

	// 1) Базовый каталог.
	if a.DryRun {
		a.Logger.Info("mkdir -p", "path", a.Base)
	} else if err := os.MkdirAll(a.Base, a.DirPerm); err != nil {
		return st, fmt.Errorf("mkdir %s: %w", a.Base, err)
	}

	// 2) Идём по записям, держим стек открытых каталогов.
	// Каждый кадр помнит отступ строки, открывшей каталог; у базы он -1.
	stack := []frame{{path: a.Base, depth: -1}}

	for _, e := range a.Plan.Entries {
		// Закрываем всё, что открыто с тем же или большим отступом.
		// Слишком глубокая запись просто попадает в последний открытый каталог.
		for stack[len(stack)-1].depth >= e.Depth {
			stack = stack[:len(stack)-1]
		}

		name := safety.Sanitize(e.Raw)
		target, err := safety.SafeJoin(stack[len(stack)-1].path, name)
		if err != nil {
			return st, fmt.Errorf("запись %q: %w", e.Name(), err)
		}

		if e.IsDir() {
			if err := ensureDir(a, target); err != nil {
				return st, err
			}
			st.Dirs++
			stack = append(stack, frame{path: target, depth: e.Depth})
			continue
		}

		if err := writePlaceholder(a, target, name); err != nil {
			return st, err
		}
		st.Files++
	}

	return st, nil
}

// frame — открытый каталог и отступ его строки в outline.
type frame struct {
	path  string
	depth int
}

func withDefaults(a ApplyArgs) ApplyArgs {
	if a.DirPerm == 0 {
		a.DirPerm = 0o755
	}
	if a.FilePerm == 0 {
		a.FilePerm = 0o644
	}
	if a.Logger == nil {
		a.Logger = slog.New(slog.DiscardHandler)
	}
	return a
}

func ensureDir(a ApplyArgs, path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		// Каталог уже существует — ок
		a.Logger.Debug("dir exists", "path", path)
		return nil

	case err == nil && !info.IsDir():
		return fmt.Errorf("%w: по пути %s уже существует файл", ErrConflict, path)

	case os.IsNotExist(err):
		if a.DryRun {
			a.Logger.Info("mkdir", "path", path)
			return nil
		}
		if err := os.MkdirAll(path, a.DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", path, err)
		}
		a.Logger.Debug("dir", "path", path)
		return nil

	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

// writePlaceholder создаёт файл или перезаписывает существующий.
func writePlaceholder(a ApplyArgs, path, name string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%w: по пути %s уже есть каталог", ErrConflict, path)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("stat %s: %w", path, err)
	}
	exists := err == nil

	if a.DryRun {
		if exists {
			a.Logger.Info("overwrite", "path", path)
		} else {
			a.Logger.Info("touch", "path", path)
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, a.FilePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, PlaceholderFormat, name); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	if exists {
		a.Logger.Debug("file overwritten", "path", path)
	} else {
		a.Logger.Debug("file", "path", path)
	}
	return nil
}
