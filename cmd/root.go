package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/klemjul/msgdump/internal/app"
	"github.com/klemjul/msgdump/internal/config"
	"github.com/klemjul/msgdump/internal/dump"
	"github.com/klemjul/msgdump/internal/graph"
	"github.com/klemjul/msgdump/internal/logging"
	"github.com/klemjul/msgdump/internal/ui"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

func RootCommand(app app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "msgdump",
		Short: "Download a Messenger conversation as a fine-tuning transcript.",
		Long: fmt.Sprintf(`Download the conversation between a Facebook page and one participant through
the Graph API and write it as a user/assistant transcript, oldest message first.

Messages sent by %s are labeled "assistant", every other message "user".

Configuration is read from the environment, then from a %s file:
  %s, %s, %s
  %s (default %s)
  %s (default %d)
  %s (default %s)
  %s (json, jsonl, yaml, md)
  %s (none, markdown, interactive)
  %s (upload the transcript to OpenAI for fine-tuning, needs %s)`,
			config.ENV_OTHER_PARTY_ID, config.DEFAULT_DOTENV,
			config.ENV_OWN_ID, config.ENV_OTHER_PARTY_ID, config.ENV_ACCESS_TOKEN,
			config.GetEnvWithPrefix(config.ENV_OUTPUT), config.DEFAULT_OUTPUT,
			config.GetEnvWithPrefix(config.ENV_MAX_MESSAGES), config.DEFAULT_MAX_MESSAGES,
			config.GetEnvWithPrefix(config.ENV_GRAPH_VERSION), config.DEFAULT_GRAPH_VERSION,
			config.GetEnvWithPrefix(config.ENV_FORMAT),
			config.GetEnvWithPrefix(config.ENV_PREVIEW),
			config.GetEnvWithPrefix(config.ENV_UPLOAD), config.ENV_OPENAI_API_KEY),
		Args:         cobra.NoArgs,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app)
		},
	}

	return rootCmd
}

func run(cmd *cobra.Command, app app.App) error {
	v, err := config.NewViper(config.DEFAULT_DOTENV)
	if err != nil {
		return fmt.Errorf("error reading configuration: %v", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	runID := logging.NewRunID()
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, runID)
	if missing := cfg.MissingIdentity(); len(missing) > 0 {
		logger.Warn("environment variables not set, requests are sent without them", "missing", missing)
	}

	exporter, err := app.Export().NewExporter(cfg.Format)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %v", err)
	}

	client := app.Graph().NewClient(graph.ClientOptions{
		BaseURL:     cfg.GraphURL,
		Version:     cfg.GraphVersion,
		AccessToken: cfg.AccessToken,
		Platform:    cfg.Platform,
		PageSize:    cfg.PageSize,
		Timeout:     cfg.Timeout,
		Logger:      logger,
	})

	report, err := dump.Run(cmd.Context(), dump.Options{
		Config:   cfg,
		Client:   client,
		Exporter: exporter,
		Logger:   logger,
		RunID:    runID,
	})
	if err != nil {
		return fmt.Errorf("failed to download conversation: %w", err)
	}

	if cfg.Upload {
		uploader, err := app.Upload().NewUploader(cfg.OpenAIKey)
		if err != nil {
			return fmt.Errorf("failed to create uploader: %v", err)
		}
		res, err := uploader.Upload(cmd.Context(), report.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to upload transcript: %w", err)
		}
		logger.Info("transcript uploaded", "file_id", res.FileID, "bytes", res.Bytes)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), summary(report))

	switch cfg.Preview {
	case config.PreviewMarkdown:
		out, err := app.Format().FormatTranscript(report.Transcript)
		if err != nil {
			return fmt.Errorf("failed to format transcript: %v", err)
		}
		cmd.OutOrStdout().Write([]byte(out))
	case config.PreviewInteractive:
		model := app.TUI().InitialModel(ui.InitialModelOptions{
			Title:          fmt.Sprintf("%s · %s", report.ConversationID, report.OutputPath),
			Transcript:     report.Transcript,
			FormatMarkdown: app.Format().FormatMarkdown,
		})
		if _, err := app.TUI().Run(model); err != nil {
			return fmt.Errorf("error running interactive preview: %v", err)
		}
	}
	return nil
}

func summary(report *dump.Report) string {
	line := fmt.Sprintf("%d messages written to %s", report.Transcript.Len(), report.OutputPath)
	if report.Partial() {
		return warningStyle.Render(fmt.Sprintf("! partial transcript (%s): %s", report.Pagination.Stop, line))
	}
	return successStyle.Render("✓ " + line)
}
