package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"codestream/internal/fsops"
	"codestream/internal/parser"
	"codestream/internal/plan"
)

// BuildOptions — outline → каталог.
type BuildOptions struct {
	InPath   string    // путь к outline; "-" — читать Stdin
	Stdin    io.Reader // используется при InPath == "-"
	BaseDir  string    // куда создавать структуру
	DryRun   bool
	DirPerm  os.FileMode
	FilePerm os.FileMode
	Logger   *slog.Logger
}

// DumpOptions — каталог → outline.
type DumpOptions struct {
	Root    string
	OutPath string    // путь к файлу; "" или "-" — писать в Stdout
	Stdout  io.Writer // используется, когда OutPath пуст или "-"
	Indent  int
	Exclude []string
	Logger  *slog.Logger
}

// Build читает outline и создаёт по нему каталоги и файлы.
func Build(o BuildOptions) (fsops.Stats, error) {
	log := loggerOrDiscard(o.Logger)

	// 1) Источник: файл или stdin.
	p, err := readPlan(o)
	if err != nil {
		return fsops.Stats{}, err
	}
	dirs, files := p.Counts()
	log.Debug("outline parsed", "source", o.InPath, "dirs", dirs, "files", files)

	// 2) Применяем к файловой системе.
	st, err := fsops.Apply(fsops.ApplyArgs{
		Plan:     p,
		Base:     o.BaseDir,
		DryRun:   o.DryRun,
		DirPerm:  o.DirPerm,
		FilePerm: o.FilePerm,
		Logger:   log,
	})
	if err != nil {
		return st, err
	}

	log.Info("structure created", "base", o.BaseDir, "dirs", st.Dirs, "files", st.Files, "dry_run", o.DryRun)
	return st, nil
}

// Dump обходит каталог и пишет его outline в файл или Stdout.
func Dump(o DumpOptions) error {
	log := loggerOrDiscard(o.Logger)
	wo := fsops.WalkOptions{Indent: o.Indent, Exclude: o.Exclude}

	if o.OutPath == "" || o.OutPath == "-" {
		w := o.Stdout
		if w == nil {
			w = os.Stdout
		}
		return fsops.Walk(w, o.Root, wo)
	}

	if err := fsops.WriteOutline(o.OutPath, o.Root, wo); err != nil {
		return err
	}
	log.Info("outline written", "root", o.Root, "output", o.OutPath)
	return nil
}

func readPlan(o BuildOptions) (plan.Plan, error) {
	if o.InPath != "-" {
		return parser.ParseFile(o.InPath)
	}
	in := o.Stdin
	if in == nil {
		in = os.Stdin
	}
	p, err := parser.Parse(in)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("ошибка чтения stdin: %w", err)
	}
	return p, nil
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
