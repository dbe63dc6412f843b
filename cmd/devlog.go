package cmd

import (
	"fmt"
	"os"

	"github.com/Sallvainian/fermi-tools/internal/config"
	"github.com/Sallvainian/fermi-tools/internal/logging"
	"github.com/Sallvainian/fermi-tools/internal/zep"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	devlogDescription  string
	devlogDecisionType string
	devlogChangeType   string
	devlogSnippet      string
	devlogPriority     string
	devlogCategory     string
	devlogFile         string
	devlogStackTrace   string
	devlogResolution   string
	devlogLimit        int
	devlogEnv          string
	devlogSession      string
	devlogRole         string
)

var devlogCmd = &cobra.Command{
	Use:   "devlog",
	Short: "Persist development notes and decisions to the Zep memory graph",
}

func newZepClient(logger *zap.SugaredLogger) *zep.Client {
	cfg := config.Load()
	if cfg.ZepAPIKey == "" {
		logger.Error("ZEP_API_KEY environment variable not set")
		os.Exit(1)
	}
	return zep.NewClient(cfg.ZepBaseURL, cfg.ZepAPIKey)
}

func newContextManager(logger *zap.SugaredLogger) *zep.ContextManager {
	return zep.NewContextManager(newZepClient(logger), config.Load().ZepUserID, logger)
}

func printEdges(edges []zep.GraphEdge) {
	if len(edges) == 0 {
		fmt.Println("  No results found")
		return
	}
	for i, e := range edges {
		fmt.Printf("%d. %s\n", i+1, e.Fact)
		if e.CreatedAt != "" {
			fmt.Printf("   Created: %s\n", e.CreatedAt)
		}
	}
}

var devlogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project user and open a memory session",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		manager := newContextManager(logger)
		if _, err := manager.EnsureProjectUser(devlogDescription); err != nil {
			logger.Errorw("failed to set up project user", "error", err)
			os.Exit(1)
		}
		sessionID, err := manager.StartSession(devlogEnv)
		if err != nil {
			logger.Errorw("failed to create session", "error", err)
			os.Exit(1)
		}
		fmt.Println("Zep Cloud is configured and ready for development memory!")
		fmt.Printf("Session ID: %s\n", sessionID)
	},
}

var devlogDecisionCmd = &cobra.Command{
	Use:   "decision DESCRIPTION",
	Short: "Record a development decision",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		manager := newContextManager(logger)
		if err := manager.AddDecision(devlogDecisionType, args[0], nil); err != nil {
			logger.Errorw("failed to record decision", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Added %s decision to development context\n", devlogDecisionType)
	},
}

var devlogChangeCmd = &cobra.Command{
	Use:   "change FILE DESCRIPTION",
	Short: "Track a significant code change",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		manager := newContextManager(logger)
		if err := manager.TrackCodeChange(args[0], devlogChangeType, args[1], devlogSnippet); err != nil {
			logger.Errorw("failed to track code change", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Tracked code change in %s\n", args[0])
	},
}

var devlogTodoCmd = &cobra.Command{
	Use:   "todo TASK",
	Short: "Add a development todo item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		manager := newContextManager(logger)
		if err := manager.AddTodo(args[0], devlogPriority, devlogCategory); err != nil {
			logger.Errorw("failed to add todo", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Added todo: %s\n", args[0])
	},
}

var devlogErrorCmd = &cobra.Command{
	Use:   "error MESSAGE",
	Short: "Track an error and its resolution",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		manager := newContextManager(logger)
		if err := manager.AddErrorContext(args[0], devlogFile, devlogStackTrace, devlogResolution); err != nil {
			logger.Errorw("failed to track error", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Tracked error context for %s\n", devlogFile)
	},
}

var devlogNoteCmd = &cobra.Command{
	Use:   "note CONTENT",
	Short: "Add a free-form note to a memory session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		client := newZepClient(logger)
		roleType := "user"
		if devlogRole != "developer" {
			roleType = "assistant"
		}
		err := client.AddMemory(devlogSession, []zep.Message{{
			Role:     devlogRole,
			RoleType: roleType,
			Content:  args[0],
		}})
		if err != nil {
			logger.Errorw("failed to add note", "session", devlogSession, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Added memory: %.50s...\n", args[0])
	},
}

var devlogRecallCmd = &cobra.Command{
	Use:   "recall QUERY",
	Short: "Search the notes stored in a memory session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		client := newZepClient(logger)
		results, err := client.SearchMemory(devlogSession, args[0], devlogLimit)
		if err != nil {
			logger.Errorw("memory search failed", "session", devlogSession, "query", args[0], "error", err)
			os.Exit(1)
		}
		if len(results) == 0 {
			fmt.Println("  No results found")
			return
		}
		for i, r := range results {
			fmt.Printf("%d. [%.2f] %s\n", i+1, r.Score, r.Message.Content)
		}
	},
}

var devlogSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the development memory graph",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		manager := newContextManager(logger)
		edges, err := manager.Search(args[0], devlogLimit)
		if err != nil {
			logger.Errorw("search failed", "query", args[0], "error", err)
			os.Exit(1)
		}
		fmt.Printf("Search results for %q:\n", args[0])
		printEdges(edges)
	},
}

var devlogTodosCmd = &cobra.Command{
	Use:   "todos",
	Short: "List pending todo items",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		edges, err := newContextManager(logger).PendingTodos()
		if err != nil {
			logger.Errorw("search failed", "error", err)
			os.Exit(1)
		}
		printEdges(edges)
	},
}

var devlogDecisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "List recent development decisions",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		edges, err := newContextManager(logger).RecentDecisions()
		if err != nil {
			logger.Errorw("search failed", "error", err)
			os.Exit(1)
		}
		printEdges(edges)
	},
}

var devlogErrorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List tracked errors and resolutions",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(debugMode)
		defer logger.Sync()

		edges, err := newContextManager(logger).ErrorHistory()
		if err != nil {
			logger.Errorw("search failed", "error", err)
			os.Exit(1)
		}
		printEdges(edges)
	},
}

func init() {
	devlogInitCmd.Flags().StringVar(&devlogDescription, "description", "Teacher Dashboard with real-time communication features", "Project description stored with the user")
	devlogInitCmd.Flags().StringVar(&devlogEnv, "env", "development", "Environment tag for the session")

	devlogDecisionCmd.Flags().StringVar(&devlogDecisionType, "type", "general", "Decision type (architecture, tooling, ...)")

	devlogChangeCmd.Flags().StringVar(&devlogChangeType, "change-type", "feature", "Change type (feature, fix, refactor, ...)")
	devlogChangeCmd.Flags().StringVar(&devlogSnippet, "snippet", "", "Relevant code snippet")

	devlogTodoCmd.Flags().StringVar(&devlogPriority, "priority", "medium", "Todo priority")
	devlogTodoCmd.Flags().StringVar(&devlogCategory, "category", "general", "Todo category")

	devlogErrorCmd.Flags().StringVar(&devlogFile, "file", "", "File the error occurred in")
	devlogErrorCmd.Flags().StringVar(&devlogStackTrace, "stack-trace", "", "Stack trace, if captured")
	devlogErrorCmd.Flags().StringVar(&devlogResolution, "resolution", "", "How the error was resolved")

	devlogNoteCmd.Flags().StringVar(&devlogSession, "session", "", "Session id returned by devlog init")
	devlogNoteCmd.Flags().StringVar(&devlogRole, "role", "developer", "Author role for the note")
	_ = devlogNoteCmd.MarkFlagRequired("session")

	devlogRecallCmd.Flags().StringVar(&devlogSession, "session", "", "Session id returned by devlog init")
	devlogRecallCmd.Flags().IntVar(&devlogLimit, "limit", 10, "Maximum number of results")
	_ = devlogRecallCmd.MarkFlagRequired("session")

	devlogSearchCmd.Flags().IntVar(&devlogLimit, "limit", 10, "Maximum number of results")

	devlogCmd.AddCommand(devlogInitCmd, devlogDecisionCmd, devlogChangeCmd, devlogTodoCmd, devlogErrorCmd, devlogNoteCmd, devlogRecallCmd, devlogSearchCmd, devlogTodosCmd, devlogDecisionsCmd, devlogErrorsCmd)
	rootCmd.AddCommand(devlogCmd)
}
