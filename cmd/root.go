package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"nathanbeddoewebdev/vitals/cmd/commands/analyse"
	cfgcmd "nathanbeddoewebdev/vitals/cmd/commands/config"
	"nathanbeddoewebdev/vitals/cmd/commands/graph"
	"nathanbeddoewebdev/vitals/cmd/commands/history"
	"nathanbeddoewebdev/vitals/cmd/commands/manage"
	"nathanbeddoewebdev/vitals/cmd/commands/memorise"
	"nathanbeddoewebdev/vitals/cmd/commands/read"
	shellcmd "nathanbeddoewebdev/vitals/cmd/commands/shell"
	"nathanbeddoewebdev/vitals/cmd/commands/write"
	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/config"
	"nathanbeddoewebdev/vitals/internal/shell"

	"github.com/spf13/cobra"
)

// exitInterrupted is the exit code after SIGINT or SIGTERM.
const exitInterrupted = 130

// lifecycle owns the app opened for one invocation.
type lifecycle struct {
	mu  sync.Mutex
	app *app.App
}

// open builds the app before any command that needs one. Commands annotated
// with app.SkipAnnotation, or run with an app already in their context, are
// left alone.
func (l *lifecycle) open(cmd *cobra.Command, _ []string) error {
	if _, err := app.FromContext(cmd.Context()); err == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[app.SkipAnnotation] == "true" {
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a, err := app.Open(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.app = a
	l.mu.Unlock()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(app.WithApp(ctx, a))
	return nil
}

func (l *lifecycle) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.app == nil {
		return nil
	}
	err := l.app.Close()
	l.app = nil
	return err
}

// flush is the best-effort save run on interrupt.
func (l *lifecycle) flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.app == nil {
		return
	}
	l.app.Log.Warnw("interrupted, flushing before exit")
	_ = l.app.Flush()
}

// rootCmd represents the base command when called without any subcommands.
func rootCmd(l *lifecycle) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "vitals",
		Short: "A personal health metrics tracker for the terminal",
		Long: `vitals records personal health measurements (weight, blood pressure, step
counts, ...) as one JSON file per metric, checks them against ideal ranges,
and prints or charts their history.

Run without a command to start the interactive shell.

Quick start:
  vitals write "weight 80.5 01032024 kg"    # record a measurement
  vitals write --mode assisted              # enter measurements line by line
  vitals read weight --chart                # print history with a sparkline
  vitals analyse                            # list out of range metrics
  vitals memorise remember systolic diastolic --as bp`,
		SilenceUsage:      true,
		PersistentPreRunE: l.open,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return shell.New(a, cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	cmd.AddCommand(write.NewCommand())
	cmd.AddCommand(read.NewCommand())
	cmd.AddCommand(graph.NewCommand())
	cmd.AddCommand(manage.NewCommand())
	cmd.AddCommand(analyse.NewCommand())
	cmd.AddCommand(memorise.NewCommand())
	cmd.AddCommand(history.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(shellcmd.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	l := &lifecycle{}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		l.flush()
		os.Exit(exitInterrupted)
	}()

	root := rootCmd(l)
	err := root.ExecuteContext(context.Background())
	if cerr := l.close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
