package fsops

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotADirectory — корень обхода существует, но это не каталог.
var ErrNotADirectory = errors.New("не является каталогом")

// DefaultIndent — пробелов на уровень вложенности.
const DefaultIndent = 4

// WalkOptions — настройки сериализации дерева в outline.
type WalkOptions struct {
	Indent  int      // 0 — DefaultIndent
	Exclude []string // имена файлов и каталогов, которые пропускаются целиком
}

// Walk обходит root сверху вниз и пишет outline в w:
// строка каталога, затем его файлы, затем подкаталоги рекурсивно.
// Символические ссылки не раскрываются и выводятся как файлы.
func Walk(w io.Writer, root string, o WalkOptions) error {
	if o.Indent <= 0 {
		o.Indent = DefaultIndent
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrNotADirectory)
	}

	bw := bufio.NewWriter(w)
	wk := walker{w: bw, opts: o}
	if err := wk.dir(root, rootName(root), 0); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteOutline пишет outline каталога root в файл outPath (перезаписывая его).
// Обход идёт до создания файла, чтобы outPath внутри root не попал в собственный outline.
func WriteOutline(outPath, root string, o WalkOptions) error {
	var buf bytes.Buffer
	if err := Walk(&buf, root, o); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if _, err := buf.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outPath, err)
	}
	return nil
}

type walker struct {
	w    *bufio.Writer
	opts WalkOptions
}

func (wk walker) dir(path, name string, depth int) error {
	if err := wk.line(depth, name+"/"); err != nil {
		return err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("readdir %s: %w", path, err)
	}

	var subdirs []os.DirEntry
	for _, e := range entries {
		if wk.excluded(e.Name()) {
			continue
		}
		if e.IsDir() {
			subdirs = append(subdirs, e)
			continue
		}
		if err := wk.line(depth+1, e.Name()); err != nil {
			return err
		}
	}

	for _, e := range subdirs {
		if err := wk.dir(filepath.Join(path, e.Name()), e.Name(), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (wk walker) line(depth int, text string) error {
	_, err := fmt.Fprintf(wk.w, "%s%s\n", strings.Repeat(" ", depth*wk.opts.Indent), text)
	return err
}

func (wk walker) excluded(name string) bool {
	for _, ex := range wk.opts.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}

// rootName — базовое имя корня; для "." и "/" берём абсолютный путь.
func rootName(root string) string {
	name := filepath.Base(filepath.Clean(root))
	if name == "." || name == ".." {
		if abs, err := filepath.Abs(root); err == nil {
			name = filepath.Base(abs)
		}
	}
	if name == string(filepath.Separator) {
		return ""
	}
	return name
}
