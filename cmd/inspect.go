package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Sallvainian/fermi-tools/internal/config"
	"github.com/Sallvainian/fermi-tools/internal/inspection"
	"github.com/Sallvainian/fermi-tools/internal/logging"
	"github.com/spf13/cobra"
)

var (
	inspectDir     string
	inspectOutput  string
	inspectProject string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Aggregate IDE inspection reports into one error report",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		cfg := config.Load()
		dir := inspectDir
		if dir == "" {
			dir = cfg.InspectionDir
		}
		output := inspectOutput
		if output == "" {
			output = cfg.ReportPath
		}
		project := inspectProject
		if project == "" {
			project = cfg.ProjectName
		}

		logger.Infow("aggregating inspection reports", "dir", dir)

		collector := inspection.NewCollector(logger)
		agg, err := collector.CollectDir(dir)
		if err != nil {
			logger.Errorw("failed to collect inspection reports", "dir", dir, "error", err)
			os.Exit(1)
		}

		if err := inspection.WriteReport(agg, project, output, time.Now()); err != nil {
			logger.Errorw("failed to write report", "output", output, "error", err)
			os.Exit(1)
		}

		fmt.Printf("Successfully processed %d inspection files\n", agg.FilesAnalyzed)
		fmt.Printf("Total errors found: %d\n", len(agg.Problems))
		fmt.Printf("Output saved to: %s\n", output)

		fmt.Println("\nCategory breakdown:")
		for _, c := range agg.CategoryCounts() {
			fmt.Printf("  %s: %d\n", c.Name, c.Count)
		}
		fmt.Println("\nSeverity breakdown:")
		for _, c := range agg.SeverityCounts() {
			fmt.Printf("  %s: %d\n", c.Name, c.Count)
		}
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectDir, "dir", "d", "", "Directory with inspection XML files (default from env)")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Path for the aggregated report (default from env)")
	inspectCmd.Flags().StringVarP(&inspectProject, "project", "p", "", "Project name stamped into the report (default from env)")
	rootCmd.AddCommand(inspectCmd)
}
