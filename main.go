package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/andareed/siftly-bhs/config"
	"github.com/andareed/siftly-bhs/logging"
	"github.com/andareed/siftly-bhs/server"
	"github.com/andareed/siftly-bhs/sheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	var versionFlag bool
	var file string

	root := &cobra.Command{
		Use:          "sfbhs",
		Short:        "Serve and browse the BHS/EDS decision spreadsheet",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// --- EARLY EXIT ---
			if versionFlag {
				fmt.Fprintln(cmd.OutOrStdout(), "Version:", Version)
				return nil
			}
			return runView(cfg, file)
		},
	}
	root.PersistentFlags().StringVar(&cfg.DebugLog, "debug", cfg.DebugLog, "Write Debug Logs to file")
	root.Flags().BoolVar(&versionFlag, "version", false, "print version and exit")

	view := &cobra.Command{
		Use:   "view",
		Short: "Browse the spreadsheet in a filterable table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cfg, file)
		},
	}
	for _, c := range []*cobra.Command{root, view} {
		c.Flags().StringVar(&cfg.SourceURL, "url", cfg.SourceURL, "URL of the spreadsheet endpoint")
		c.Flags().StringVar(&file, "file", "", "read a local .xlsx instead of fetching")
		c.Flags().DurationVar(&cfg.FetchTimeout, "timeout", cfg.FetchTimeout, "fetch timeout (0 waits forever)")
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the spreadsheet at GET /excel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serve.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	serve.Flags().StringVar(&cfg.SheetPath, "sheet", cfg.SheetPath, "spreadsheet file to serve")

	root.AddCommand(view, serve)
	return root
}

func runServe(ctx context.Context, cfg config.Config) error {
	cleanup, err := logging.SetupLogging(cfg.DebugLog, os.Stderr)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer cleanup()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Infof("siftly-bhs serve: sheet=%s", cfg.SheetPath)
	srv := server.New(server.Config{Addr: cfg.Addr, SheetPath: cfg.SheetPath})
	return srv.Run(ctx)
}

func runView(cfg config.Config, file string) error {
	cleanup, err := logging.SetupLogging(cfg.DebugLog, nil)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer cleanup()

	log.Println("siftly-bhs: Started")

	m := newModel(newSource(cfg, file))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("Tea program error: %v", err)
		return err
	}
	return nil
}

func newSource(cfg config.Config, file string) sheet.Source {
	if file != "" {
		return &sheet.FileSource{Path: file}
	}
	return &sheet.HTTPSource{URL: cfg.SourceURL, Timeout: cfg.FetchTimeout}
}
