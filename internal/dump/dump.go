package dump

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/klemjul/msgdump/internal/config"
	"github.com/klemjul/msgdump/internal/export"
	"github.com/klemjul/msgdump/internal/graph"
	"github.com/klemjul/msgdump/internal/transcript"
)

var ErrResolve = errors.New("resolve conversation")

type Options struct {
	Config   config.Config
	Client   graph.Client
	Exporter export.Exporter
	Logger   *slog.Logger
	RunID    string
}

// Report describes how a run ended. It is returned even when Run fails.
type Report struct {
	RunID          string
	ConversationID string
	Pagination     graph.Result
	Transcript     transcript.Transcript
	OutputPath     string
}

// Partial reports whether pagination stopped on a failed page.
func (r *Report) Partial() bool {
	return r.ConversationID != "" && !r.Pagination.Complete()
}

// Run downloads the conversation with the other party and writes it to the configured output.
// The output file is always written: empty when the conversation cannot be resolved, partial
// when a page fails. Only the resolution failure and write failures are returned as errors.
func Run(ctx context.Context, opts Options) (*Report, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	report := &Report{RunID: opts.RunID, OutputPath: cfg.Output}

	logger.Info("resolving conversation", "participant", cfg.OtherPartyID, "own_id", cfg.OwnID, "platform", cfg.Platform)
	convID, err := opts.Client.ResolveConversation(ctx, cfg.OtherPartyID)
	if err != nil {
		logger.Error("failed to fetch conversation id", "error", err)
		report.Transcript = transcript.FromRecords(nil, cfg.OtherPartyID)
		if werr := write(report, opts.Exporter, logger); werr != nil {
			return report, werr
		}
		return report, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	report.ConversationID = convID
	logger.Info("conversation resolved", "conversation_id", convID)

	report.Pagination = graph.Paginate(ctx, opts.Client, convID, cfg.MaxMessages, logger)
	if report.Pagination.Complete() {
		logger.Info("pagination finished",
			"reason", report.Pagination.Stop,
			"pages", report.Pagination.Pages,
			"records", len(report.Pagination.Records))
	} else {
		logger.Warn("pagination stopped early, writing partial transcript",
			"reason", report.Pagination.Stop,
			"pages", report.Pagination.Pages,
			"records", len(report.Pagination.Records),
			"error", report.Pagination.Err)
	}

	report.Transcript = transcript.FromRecords(report.Pagination.Records, cfg.OtherPartyID)
	if err := write(report, opts.Exporter, logger); err != nil {
		return report, err
	}
	return report, nil
}

func write(report *Report, exporter export.Exporter, logger *slog.Logger) error {
	if err := export.WriteFile(report.OutputPath, exporter, report.Transcript); err != nil {
		return fmt.Errorf("write %s: %w", report.OutputPath, err)
	}
	logger.Info("transcript written",
		"path", report.OutputPath,
		"messages", report.Transcript.Len(),
		"estimated_tokens", report.Transcript.EstimateTokens())
	return nil
}
