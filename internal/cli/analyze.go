package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/RoadReport/internal/client"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/formatter"
	"github.com/yildizm/RoadReport/internal/intake"
	"github.com/yildizm/RoadReport/internal/logger"
)

var (
	analyzeEvents     string
	analyzeOutputFile string
)

var (
	errNoEvents = errors.New("no events selected (use --events, see 'roadreport events')")
	errNoVideos = errors.New("no video files to analyze")
)

// uploader is the part of the client used by analyze
type uploader interface {
	Upload(ctx context.Context, files []common.PendingFile, events common.SelectedEvents) (*client.UploadResponse, error)
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [videos...]",
		Short: "Analyze videos without the interactive interface",
		Long: `Submit videos to the analysis service and print the detected violations.

Non-video files are skipped with a warning. The command fails before any
request is made if no videos remain or no events are selected.

Examples:
  roadreport analyze --events speeding,signal dashcam.mp4
  roadreport analyze -e lane -o json front.mp4 rear.mov
  roadreport analyze -e speeding -o markdown --output-file report.md clip.mp4`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeEvents, "events", "e", "", "comma separated event tags to detect")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := newLogger("analyze")

	events, err := parseEventFlag(analyzeEvents)
	if err != nil {
		return err
	}

	resolver := intake.NewResolver(cfg.Intake.ExtraVideoExtensions)
	videos, skipped := collectVideos(resolver, args, log)
	for _, s := range skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Skipping %s\n", GetEmoji("warning"), s)
	}
	if len(videos) == 0 {
		return errNoVideos
	}

	// Resolve the formatter before uploading so a bad format costs no request
	out := cmd.OutOrStdout()
	f, err := formatter.New(getOutputFormat(), analyzeOutputFile == "" && useColor(out))
	if err != nil {
		return err
	}

	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	analysis, err := submitAnalysis(commandContext(cmd), c, videos, events, log)
	if err != nil {
		return err
	}

	output, err := f.Format(analysis)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	return handleOutputDestination(out, output, analyzeOutputFile)
}

// parseEventFlag turns the --events list into a selection
func parseEventFlag(list string) (common.SelectedEvents, error) {
	tags, err := common.ParseCategories(list)
	if err != nil {
		return nil, err
	}
	events := common.NewSelectedEvents(tags...)
	if events.Len() == 0 {
		return nil, errNoEvents
	}
	return events, nil
}

// submitAnalysis uploads the videos and wraps the response for formatting
func submitAnalysis(ctx context.Context, u uploader, videos []common.PendingFile, events common.SelectedEvents, log *logger.Logger) (*formatter.Analysis, error) {
	submittedAt := time.Now()
	log.InfoWithFields("submitting videos", []logger.Field{logger.Count(len(videos)), logger.F("events", events.Tags())})

	resp, err := u.Upload(ctx, videos, events)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	log.InfoWithFields("analysis completed", []logger.Field{
		logger.Count(len(resp.Results)), logger.Duration(time.Since(submittedAt)),
	})

	filenames := resp.Filenames
	if len(filenames) == 0 {
		for _, v := range videos {
			filenames = append(filenames, v.Name)
		}
	}

	return &formatter.Analysis{
		Filenames:   filenames,
		Events:      events.Tags(),
		Message:     resp.Message,
		Results:     resp.Results,
		SubmittedAt: submittedAt,
	}, nil
}

// handleOutputDestination writes output to file or to out
func handleOutputDestination(out io.Writer, output []byte, outputFile string) error {
	if outputFile == "" {
		_, err := out.Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, outputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", outputFile)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	return nil
}
