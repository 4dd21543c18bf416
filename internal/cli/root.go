// Package cli — командная строка codestream: тонкая оболочка над internal/app.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"codestream/internal/config"
	"codestream/internal/version"
)

type configKey struct{}

type loggerKey struct{}

// NewRootCmd собирает корневую команду со всеми подкомандами.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "codestream",
		Short: "Outline ↔ directory tree",
		Long: `codestream превращает текстовый outline с отступами в дерево каталогов
и файлов-заглушек, а существующий каталог — обратно в outline.

Формат outline:
  Одна запись на строку, глубина — число ведущих пробельных символов.
  Строка с / в конце — каталог, иначе файл. Пустые строки игнорируются.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			loaded, err := config.Load(config.LoadOptions{File: cfgFile, Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			cfg := loaded.Config

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			if loaded.FileUsed != "" {
				logger.Debug("config loaded", "file", loaded.FileUsed)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("codestream %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./codestream.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute запускает CLI и возвращает код выхода.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codestream %s\n", version.String())
		},
	}
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	lvl := cfg.Level()
	if cfg.Quiet && lvl < slog.LevelWarn {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// getConfig достаёт конфиг из контекста команды.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		OutDir:    config.DefaultOutDir,
		DirPerm:   config.DefaultDirPerm,
		FilePerm:  config.DefaultFilePerm,
		Indent:    config.DefaultIndent,
		LogLevel:  config.DefaultLogLevel,
		LogFormat: config.DefaultLogFormat,
	}
}

// getLogger достаёт логгер из контекста команды.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
