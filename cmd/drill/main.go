package main

import (
	"fmt"
	"os"

	"github.com/andersonjoseph/loopdrill/internal/debugger"
	"github.com/andersonjoseph/loopdrill/internal/paths"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	useDelve bool
	target   string
	logPath  string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "drill",
	Short: "Step through the loops program one printed line at a time",
	Long: `drill runs the loops demonstration program under a stepping viewer.

By default the program is replayed in-process. With --delve it is built and
run under a headless dlv server, stopping before every printed line.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&useDelve, "delve", false, "debug the target with a headless dlv server")
	rootCmd.Flags().StringVar(&target, "target", debugger.DefaultTarget, "package to debug when --delve is set")
	rootCmd.Flags().StringVar(&logPath, "log", "drill.log", "log file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug level logging")
}

func openSession(logger *zap.Logger) (debugger.Session, error) {
	if !useDelve {
		return debugger.NewStepper(logger), nil
	}

	d, err := debugger.NewDelve(target, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating debugger: %w", err)
	}
	return d, nil
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(logPath, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	session, err := openSession(logger)
	if err != nil {
		logger.Error("error opening session", zap.Error(err))
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("error closing session", zap.Error(err))
		}
	}()

	logger.Info("starting", zap.Bool("delve", useDelve), zap.String("target", target))

	m := newModel(session, logger)
	m.root = paths.ProjectRoot()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
