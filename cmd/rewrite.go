package cmd

import (
	"fmt"
	"os"

	"github.com/Sallvainian/fermi-tools/internal/config"
	"github.com/Sallvainian/fermi-tools/internal/logging"
	"github.com/Sallvainian/fermi-tools/internal/rewrite"
	"github.com/spf13/cobra"
)

var (
	rewriteDryRun    bool
	rewriteRulesFile string
	rewriteList      bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [rule] [path]",
	Short: "Apply a named regex rewrite rule across source files",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		var extra []rewrite.Rule
		if rewriteRulesFile != "" {
			var err error
			extra, err = rewrite.LoadRules(rewriteRulesFile)
			if err != nil {
				logger.Errorw("failed to load rules file", "file", rewriteRulesFile, "error", err)
				os.Exit(1)
			}
		}

		if rewriteList || len(args) == 0 {
			fmt.Println("Available rules:")
			for _, r := range rewrite.Builtins {
				fmt.Printf("  %-24s %s\n", r.Name, r.Description)
			}
			for _, r := range extra {
				fmt.Printf("  %-24s %s\n", r.Name, r.Description)
			}
			return
		}

		rule, err := rewrite.Lookup(args[0], extra)
		if err != nil {
			logger.Errorw("unknown rule", "rule", args[0], "error", err)
			os.Exit(1)
		}

		root := config.Load().SourceDir
		if len(args) == 2 {
			root = args[1]
		}

		runner := rewrite.NewRunner(logger, rewriteDryRun)
		summary, err := runner.Apply(root, rule)
		if err != nil {
			logger.Errorw("rewrite failed", "rule", rule.Name, "root", root, "error", err)
			os.Exit(1)
		}

		verb := "Modified"
		if rewriteDryRun {
			verb = "Would modify"
		}
		for _, ch := range summary.Changes {
			fmt.Printf("%s %s: %d replacement(s)\n", verb, ch.Path, ch.Replacements)
		}
		fmt.Printf("\nSummary: %s %d files with %d total replacements\n", verb, summary.FilesChanged, summary.TotalReplacements)
	},
}

func init() {
	rewriteCmd.Flags().BoolVar(&rewriteDryRun, "dry-run", false, "Report matches without writing files")
	rewriteCmd.Flags().StringVar(&rewriteRulesFile, "rules", "", "YAML file with additional rewrite rules")
	rewriteCmd.Flags().BoolVar(&rewriteList, "list", false, "List available rules and exit")
	rootCmd.AddCommand(rewriteCmd)
}
