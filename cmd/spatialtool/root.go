package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/vearutop/spatial"
	"github.com/vearutop/spatial/internal/assets"
	"github.com/vearutop/spatial/internal/config"
	"github.com/vearutop/spatial/internal/extract"
	"github.com/vearutop/spatial/internal/logging"
)

const lockName = ".spatialtool.lock"

type rootFlags struct {
	library bool
	files   []string
	config  string
	workers int
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "spatialtool [--photos-library | --files FILE...]",
		Short: "Export the primary image and stereo pair of spatial photos as JPEG files",
		Long: "spatialtool splits spatial photos (MPO stereo containers) into standalone JPEG files.\n" +
			"Outputs are named <name>_primary.jpg, <name>_left.jpg and <name>_right.jpg.\n" +
			"With --files they are written beside each source; with --photos-library they go\n" +
			"to the configured pictures directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.files = append(flags.files, args...)
			return runExtract(cmd, flags)
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &extract.UsageError{Msg: err.Error()}
	})

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVarP(&flags.library, "photos-library", "p", false, "Export every spatial photo of the library")
	rootCmd.Flags().StringArrayVarP(&flags.files, "files", "f", nil, "Export the given files (repeatable)")
	rootCmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Number of items processed in parallel (default from config)")

	rootCmd.AddCommand(newInspectCommand(&flags))

	return rootCmd
}

type session struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newSession(cmd *cobra.Command, configPath string) (*session, error) {
	cfg, _, _, err := config.Load(strings.TrimSpace(configPath))
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger}, nil
}

func runExtract(cmd *cobra.Command, flags rootFlags) error {
	if err := extract.CheckMode(flags.library, flags.files); err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") && flags.workers < 1 {
		return &extract.UsageError{Msg: fmt.Sprintf("--workers must be at least 1, got %d", flags.workers)}
	}

	s, err := newSession(cmd, flags.config)
	if err != nil {
		return err
	}

	runner := &extract.Runner{
		Workers: s.cfg.Run.Workers,
		Writer:  spatial.Writer{Quality: s.cfg.Output.Quality},
		Logger:  s.logger,
	}
	if cmd.Flags().Changed("workers") {
		runner.Workers = flags.workers
	}

	ctx := cmd.Context()
	var report extract.Report
	if flags.library {
		report, err = runLibrary(cmd, s, runner)
		if err != nil {
			return err
		}
	} else {
		report = runner.RunFiles(ctx, flags.files)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d of %d items failed", n, len(report.Items))
	}
	return nil
}

func runLibrary(cmd *cobra.Command, s *session, runner *extract.Runner) (extract.Report, error) {
	ctx := cmd.Context()
	src := assets.NewLibrary(s.cfg.Library.Dir)
	if err := extract.Authorize(ctx, src); err != nil {
		s.logger.Error("photo library unavailable",
			slog.String(logging.FieldPath, s.cfg.Library.Dir),
			logging.Error(err),
		)
		return extract.Report{}, err
	}

	dir := s.cfg.Output.PicturesDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return extract.Report{}, fmt.Errorf("create pictures directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return extract.Report{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return extract.Report{}, errors.New("another spatialtool run is exporting into " + dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release export lock", logging.Error(err))
		}
		_ = os.Remove(lock.Path())
	}()

	return runner.ExportLibrary(ctx, src, dir)
}
