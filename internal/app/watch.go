package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"codestream/internal/fsops"
)

// watchDebounce — пауза после последнего события перед пересборкой.
var watchDebounce = 100 * time.Millisecond

// Watch выполняет Build, затем пересобирает структуру при каждом изменении outline.
// Сборки идут последовательно в вызывающей горутине; ctx останавливает
// ожидание событий, но не прерывает уже начатую сборку.
// report вызывается после каждой сборки, ошибка сборки не останавливает Watch.
func Watch(ctx context.Context, o BuildOptions, report func(fsops.Stats, error)) error {
	if o.InPath == "-" {
		return errors.New("watch не работает со stdin")
	}
	log := loggerOrDiscard(o.Logger)

	target, err := filepath.Abs(o.InPath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Следим за каталогом: редакторы часто заменяют файл через rename.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	report(Build(o))

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			log.Debug("outline changed, rebuilding", "file", target)
			report(Build(o))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		}
	}
}
