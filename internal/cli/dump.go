package cli

import (
	"github.com/spf13/cobra"

	"codestream/internal/app"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <dir> [output|-]",
		Short: "Write the outline of an existing directory",
		Long: `Обходит каталог сверху вниз и печатает его outline: сначала файлы каталога,
затем подкаталоги. Без output (или с '-') пишет в stdout.`,
		Example: `  codestream dump ./project
  codestream dump ./project tree.txt --exclude .git,node_modules`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())

			out := ""
			if len(args) == 2 {
				out = args[1]
			}

			err := app.Dump(app.DumpOptions{
				Root:    args[0],
				OutPath: out,
				Stdout:  cmd.OutOrStdout(),
				Indent:  cfg.Indent,
				Exclude: cfg.Exclude,
				Logger:  getLogger(cmd.Context()),
			})
			if err != nil {
				return err
			}
			if out != "" && out != "-" && !cfg.Quiet {
				printDumpResult(cmd.ErrOrStderr(), out)
			}
			return nil
		},
	}

	cmd.Flags().Int("indent", 4, "Spaces per nesting level")
	cmd.Flags().StringSlice("exclude", nil, "Names to skip (comma-separated)")

	return cmd
}
