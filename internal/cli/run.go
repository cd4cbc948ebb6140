package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/config"
	"github.com/yildizm/RoadReport/internal/intake"
	"github.com/yildizm/RoadReport/internal/logger"
	"github.com/yildizm/RoadReport/internal/report"
	"github.com/yildizm/RoadReport/internal/ui"
)

var (
	runDropDir string
	runLogFile string
	runPage    string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [videos...]",
		Short: "Open the interactive interface",
		Long: `Open the interactive interface for uploading videos, choosing which
violations to detect and browsing the results.

Videos given as arguments start out in the upload list. With --drop-dir,
new videos saved into that folder are added while the interface runs.

Examples:
  roadreport run
  roadreport run dashcam.mp4 rear.mov
  roadreport run --page upload dashcam.mp4
  roadreport run --drop-dir ~/Videos/dashcam`,
		RunE: runInteractive,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runDropDir, "drop-dir", "", "folder watched for new videos (default from intake.drop_dir)")
	cmd.Flags().StringVar(&runLogFile, "log-file", "", "diagnostic log file while the interface runs")
	cmd.Flags().StringVar(&runPage, "page", "", "page shown first (landing, upload, results, profile)")
}

// parseStartPage validates the --page flag
func parseStartPage(name string) (common.Page, error) {
	if name == "" {
		return common.PageLanding, nil
	}
	page, ok := common.ParsePage(name)
	if !ok {
		return "", fmt.Errorf("unknown page: %s (must be one of: landing, upload, results, profile)", name)
	}
	return page, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	page, err := parseStartPage(runPage)
	if err != nil {
		return err
	}

	logPath := firstNonEmpty(runLogFile, cfg.UI.LogFile, defaultLogFile())
	restore, err := redirectLogs(logPath)
	if err != nil {
		return err
	}
	defer restore()

	log := newLogger("ui")
	resolver := intake.NewResolver(cfg.Intake.ExtraVideoExtensions)

	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	clipboard, err := report.ChainFor(cfg.UI.Clipboard, os.Stderr)
	if err != nil {
		return err
	}

	files, _ := collectVideos(resolver, args, log)
	opts := ui.Options{
		Analyzer:  c,
		Resolver:  resolver,
		Picker:    intake.NewNativePicker(resolver),
		Clipboard: clipboard,
		Open:      ui.OpenWithSystem,
		Page:      page,
		Files:     files,
		Profile:   cfg.Profile,
		Log:       log,
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	if dir := firstNonEmpty(runDropDir, cfg.Intake.DropDir); dir != "" {
		watcher, err := intake.NewDropWatcher(config.ExpandPath(dir), resolver, intake.DefaultDebounce, newLogger("intake"))
		if err != nil {
			return err
		}
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Warn("failed to close drop folder watcher: %v", err)
			}
		}()
		go watcher.Run(ctx)
		opts.Drops = watcher.Files()
		opts.DropDir = watcher.Dir()
	}

	log.InfoWithFields("starting interface", []logger.Field{
		logger.F("service", c.ServiceURL()), logger.Count(len(files)), logger.F("log_file", logPath),
	})
	if err := ui.RunApp(opts); err != nil {
		return fmt.Errorf("interface failed: %w", err)
	}
	return nil
}

// collectVideos resolves paths and keeps the videos. Skipped paths are
// logged and returned so headless callers can warn about them.
func collectVideos(resolver *intake.Resolver, paths []string, log *logger.Logger) ([]common.PendingFile, []string) {
	if len(paths) == 0 {
		return nil, nil
	}

	var skipped []string
	files, errs := resolver.Candidates(paths)
	for _, err := range errs {
		log.WarnWithFields("skipping path", []logger.Field{logger.Error(err)})
		skipped = append(skipped, err.Error())
	}

	videos, rejected := intake.SplitVideos(files)
	for _, f := range rejected {
		log.DebugWithFields("dropping non-video file", []logger.Field{logger.F("file", f.Path), logger.F("media_type", f.MediaType)})
		skipped = append(skipped, fmt.Sprintf("%s: not a video (%s)", f.Path, f.MediaType))
	}
	return videos, skipped
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
