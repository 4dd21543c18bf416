package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codestream/internal/app"
	"codestream/internal/fsops"
)

func newBuildCmd() *cobra.Command {
	var dry, watch bool

	cmd := &cobra.Command{
		Use:   "build <outline|-> [base-dir]",
		Short: "Create a directory tree from an outline",
		Long: `Читает outline (файл или '-' для stdin) и создаёт каталоги и файлы-заглушки
внутри base-dir (по умолчанию out_dir из конфига, иначе текущий каталог).
Существующие файлы перезаписываются, существующие каталоги используются как есть.`,
		Example: `  codestream build struct.txt ./dst
  cat struct.txt | codestream build - ./dst -v
  codestream build struct.txt --dry`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())
			logger := getLogger(cmd.Context())

			base := cfg.OutDir
			if len(args) == 2 {
				base = args[1]
			}
			dperm, err := cfg.DirMode()
			if err != nil {
				return err
			}
			fperm, err := cfg.FileMode()
			if err != nil {
				return err
			}

			opts := app.BuildOptions{
				InPath:   args[0],
				Stdin:    cmd.InOrStdin(),
				BaseDir:  base,
				DryRun:   dry,
				DirPerm:  dperm,
				FilePerm: fperm,
				Logger:   logger,
			}

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return app.Watch(ctx, opts, func(st fsops.Stats, err error) {
					if err != nil {
						printError(cmd.ErrOrStderr(), err)
						return
					}
					if !cfg.Quiet {
						printBuildResult(cmd.OutOrStdout(), base, st, dry)
					}
				})
			}

			st, err := app.Build(opts)
			if err != nil {
				return err
			}
			if !cfg.Quiet {
				printBuildResult(cmd.OutOrStdout(), base, st, dry)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dry, "dry", false, "Dry-run: only log what would be created")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild whenever the outline file changes")
	cmd.Flags().String("dperm", "0755", "Directory permissions (octal)")
	cmd.Flags().String("fperm", "0644", "File permissions (octal)")
	cmd.Flags().String("out-dir", ".", "Default base directory when base-dir is omitted")

	return cmd
}
