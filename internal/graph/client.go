package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL  = "https://graph.facebook.com"
	DefaultVersion  = "v17.0"
	DefaultPageSize = 25
	DefaultTimeout  = 20 * time.Second
)

type PageFetcher interface {
	FetchMessages(ctx context.Context, conversationID string, after string) (*Page, error)
}

type Client interface {
	PageFetcher
	ResolveConversation(ctx context.Context, participantID string) (string, error)
}

type ClientOptions struct {
	BaseURL     string
	Version     string
	AccessToken string
	Platform    Platform
	PageSize    int
	Timeout     time.Duration
	Logger      *slog.Logger
}

type graphClient struct {
	baseURL  string
	version  string
	token    string
	platform Platform
	pageSize int
	client   *http.Client
	logger   *slog.Logger
}

func NewClient(opts ClientOptions) Client {
	c := &graphClient{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		version:  opts.Version,
		token:    opts.AccessToken,
		platform: opts.Platform,
		pageSize: opts.PageSize,
		client:   &http.Client{Timeout: opts.Timeout},
		logger:   opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultVersion
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if c.client.Timeout <= 0 {
		c.client.Timeout = DefaultTimeout
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// ResolveConversation returns the id of the first conversation the page shares with participantID.
func (c *graphClient) ResolveConversation(ctx context.Context, participantID string) (string, error) {
	query := url.Values{}
	query.Set("fields", "messages{message,from}")
	query.Set("user_id", participantID)
	query.Set("limit", strconv.Itoa(c.pageSize))
	if c.platform == PlatformInstagram {
		query.Set("platform", string(PlatformInstagram))
	}

	body, err := c.get(ctx, "conversations", "me/conversations", query)
	if err != nil {
		return "", err
	}

	var res conversationsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("decode conversations: %w", err)
	}
	if len(res.Data) == 0 {
		return "", ErrConversationNotFound
	}

	c.logger.Debug("conversation resolved", "conversation_id", res.Data[0].ID)
	return res.Data[0].ID, nil
}

// FetchMessages returns one page of the conversation, newest first. An empty after requests the first page.
func (c *graphClient) FetchMessages(ctx context.Context, conversationID string, after string) (*Page, error) {
	query := url.Values{}
	query.Set("fields", "message,from,created_time")
	query.Set("limit", strconv.Itoa(c.pageSize))
	if after != "" {
		query.Set("after", after)
	}

	body, err := c.get(ctx, "messages", url.PathEscape(conversationID)+"/messages", query)
	if err != nil {
		return nil, err
	}

	var res pageResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if res.Data == nil {
		return nil, ErrMalformedPage
	}

	return &Page{Data: *res.Data, Paging: res.Paging}, nil
}

func (c *graphClient) get(ctx context.Context, op string, path string, query url.Values) ([]byte, error) {
	query.Set("access_token", c.token)
	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.version, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug("graph request", "op", op, "path", path)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph api %s: %w", op, redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil {
			statusErr.Message = errResp.Error.Message
		}
		c.logger.Error("graph request failed", "op", op, "status", resp.StatusCode)
		return nil, statusErr
	}

	return body, nil
}

// redact drops the request URL from transport errors, it carries the access token.
func redact(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}
