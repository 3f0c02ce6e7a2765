package graph

import (
	"context"
	"errors"
	"log/slog"
)

type StopReason string

const (
	StopExhausted     StopReason = "exhausted"
	StopLimit         StopReason = "limit"
	StopRequestFailed StopReason = "request_failed"
	StopMalformed     StopReason = "malformed"
)

// Result holds everything accumulated by Paginate, including the records fetched before a failure.
type Result struct {
	Records []Record
	Pages   int
	Stop    StopReason
	Err     error
}

// Complete reports whether pagination ended without a failed page.
func (r Result) Complete() bool {
	return r.Stop == StopExhausted || r.Stop == StopLimit
}

// Paginate follows after cursors until a page fails, the cursors run out, or maxMessages records are held.
// The limit is checked after each page, so the result can exceed it by less than one page.
func Paginate(ctx context.Context, fetcher PageFetcher, conversationID string, maxMessages int, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := Result{Records: []Record{}}
	after := ""
	for {
		page, err := fetcher.FetchMessages(ctx, conversationID, after)
		if err != nil {
			result.Err = err
			result.Stop = StopRequestFailed
			if errors.Is(err, ErrMalformedPage) {
				result.Stop = StopMalformed
			}
			logger.Warn("no messages found or request failed", "page", result.Pages+1, "error", err)
			return result
		}

		result.Pages++
		result.Records = append(result.Records, page.Data...)
		after = page.Paging.Cursors.After
		logger.Info("fetched page",
			"page", result.Pages,
			"records", len(page.Data),
			"total", len(result.Records),
			"has_next", after != "")

		if after == "" {
			result.Stop = StopExhausted
			return result
		}
		if len(result.Records) >= maxMessages {
			result.Stop = StopLimit
			return result
		}
	}
}
