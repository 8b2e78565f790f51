package lindle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the Lindle API authority.
	DefaultBaseURL = "https://www.lindle.me"
	// DefaultJourneyBaseURL prefixes a folder codename to form its public link.
	DefaultJourneyBaseURL = "https://lindle.click/"

	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 4 << 10
)

// Client represents a Lindle API client. It is safe for concurrent use; no
// method mutates it after construction.
type Client struct {
	BaseURL    *url.URL
	HTTPClient *http.Client

	headers     http.Header
	journeyBase string
	lenient     bool
	logger      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at a different API authority.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		parsedURL, err := url.ParseRequestURI(baseURL)
		if err != nil {
			return fmt.Errorf("failed to parse base URL: %w", err)
		}
		c.BaseURL = parsedURL
		return nil
	}
}

// WithJourneyBaseURL changes the prefix used to build folder journey links.
func WithJourneyBaseURL(base string) Option {
	return func(c *Client) error {
		c.journeyBase = base
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.HTTPClient = httpClient
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.HTTPClient.Timeout = timeout
		return nil
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithLenientDecoding disables response validation. Missing fields become
// zero values instead of a DecodeError.
func WithLenientDecoding() Option {
	return func(c *Client) error {
		c.lenient = true
		return nil
	}
}

// NewClient creates a new Lindle API client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	baseURL, _ := url.Parse(DefaultBaseURL)

	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+apiKey)
	headers.Set("Content-Type", "application/json")

	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		headers:     headers,
		journeyBase: DefaultJourneyBaseURL,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() http.Header {
	return c.headers.Clone()
}

// doRequest performs an HTTP request and returns the raw response body.
// Non-2xx answers are returned as *APIError.
func (c *Client) doRequest(ctx context.Context, method string, body any, elem ...string) ([]byte, error) {
	reqURL := c.BaseURL.JoinPath(elem...)

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.headers.Clone()

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", method).
		Str("path", reqURL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("lindle request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(errBody)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// GetUser fetches the profile of the API key's owner.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	data, err := c.doRequest(ctx, http.MethodGet, nil, "api", "user")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	var w userWire
	if err := c.decodeObject("GET /api/user", data, &w); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	user := w.toUser()
	return &user, nil
}

// GetLinks fetches every link of the user. The result is never nil.
func (c *Client) GetLinks(ctx context.Context) ([]Link, error) {
	data, err := c.doRequest(ctx, http.MethodGet, nil, "api", "links")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}

	wires, err := decodeList[linkWire](c, "GET /api/links", data)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}

	links := make([]Link, 0, len(wires))
	for _, w := range wires {
		links = append(links, w.toLink())
	}
	return links, nil
}

// GetFolders fetches every folder of the user. With withLinks set, the links
// are fetched as well and attached to their folders with JoinLinksToFolders.
// Both requests run concurrently; if either fails nothing is returned.
func (c *Client) GetFolders(ctx context.Context, withLinks bool) ([]Folder, error) {
	if !withLinks {
		return c.getFolders(ctx)
	}

	var (
		folders []Folder
		links   []Link
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		folders, err = c.getFolders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = c.GetLinks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return JoinLinksToFolders(folders, links), nil
}

func (c *Client) getFolders(ctx context.Context) ([]Folder, error) {
	data, err := c.doRequest(ctx, http.MethodGet, nil, "api", "folders")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch folders: %w", err)
	}

	wires, err := decodeList[folderWire](c, "GET /api/folders", data)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch folders: %w", err)
	}

	folders := make([]Folder, 0, len(wires))
	for _, w := range wires {
		folders = append(folders, w.toFolder(c.journeyBase))
	}
	return folders, nil
}

// GetSyncedBookmarks fetches the browser bookmark sync feed.
func (c *Client) GetSyncedBookmarks(ctx context.Context) (*SyncedBookmarks, error) {
	data, err := c.doRequest(ctx, http.MethodGet, nil, "api", "links", "bookmarks", "sync")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch synced bookmarks: %w", err)
	}

	var w syncWire
	if err := c.decodeObject("GET /api/links/bookmarks/sync", data, &w); err != nil {
		return nil, fmt.Errorf("failed to fetch synced bookmarks: %w", err)
	}
	if !c.lenient {
		if err := validateSync(w); err != nil {
			return nil, fmt.Errorf("failed to fetch synced bookmarks: %w",
				&DecodeError{Endpoint: "GET /api/links/bookmarks/sync", Err: err})
		}
	}

	synced := &SyncedBookmarks{
		Folders: make([]BookmarkFolder, 0, len(w.Folders)),
		Links:   make([]Bookmark, 0, len(w.Links)),
	}
	for _, f := range w.Folders {
		synced.Folders = append(synced.Folders, f.toBookmarkFolder())
	}
	for _, l := range w.Links {
		synced.Links = append(synced.Links, l.toBookmark())
	}
	return synced, nil
}

func validateSync(w syncWire) error {
	if err := validateList(w.Folders); err != nil {
		return fmt.Errorf("folders: %w", err)
	}
	if err := validateList(w.Links); err != nil {
		return fmt.Errorf("links: %w", err)
	}
	return nil
}

// CreateLink creates a link inside input.Folder.
func (c *Client) CreateLink(ctx context.Context, input LinkInput) (*APIResult, error) {
	result, err := c.mutate(ctx, http.MethodPost, input, "api", "links")
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return result, nil
}

// UpdateLink replaces every field of the link identified by id.
func (c *Client) UpdateLink(ctx context.Context, id string, input LinkInput) (*APIResult, error) {
	result, err := c.mutateID(ctx, http.MethodPost, input, "links", id)
	if err != nil {
		return nil, fmt.Errorf("failed to update link %s: %w", id, err)
	}
	return result, nil
}

// DeleteLink deletes the link identified by id.
func (c *Client) DeleteLink(ctx context.Context, id string) (*APIResult, error) {
	result, err := c.mutateID(ctx, http.MethodDelete, nil, "links", id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete link %s: %w", id, err)
	}
	return result, nil
}

// CreateFolder creates a folder.
func (c *Client) CreateFolder(ctx context.Context, input FolderInput) (*APIResult, error) {
	result, err := c.mutate(ctx, http.MethodPost, folderBody(input), "api", "folders")
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return result, nil
}

// UpdateFolder patches the folder identified by id. Only the fields set in
// update are sent.
func (c *Client) UpdateFolder(ctx context.Context, id string, update FolderUpdate) (*APIResult, error) {
	result, err := c.mutateID(ctx, http.MethodPatch, update, "folders", id)
	if err != nil {
		return nil, fmt.Errorf("failed to update folder %s: %w", id, err)
	}
	return result, nil
}

// DeleteFolder deletes the folder identified by id.
func (c *Client) DeleteFolder(ctx context.Context, id string) (*APIResult, error) {
	result, err := c.mutateID(ctx, http.MethodDelete, nil, "folders", id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete folder %s: %w", id, err)
	}
	return result, nil
}

// mutate sends a write request and decodes the result envelope.
func (c *Client) mutate(ctx context.Context, method string, body any, elem ...string) (*APIResult, error) {
	data, err := c.doRequest(ctx, method, body, elem...)
	if err != nil {
		return nil, err
	}

	var w resultWire
	if err := c.decodeObject(method+" /"+strings.Join(elem, "/"), data, &w); err != nil {
		return nil, err
	}

	result := w.toResult()
	return &result, nil
}

// mutateID sends a write request to /api/<collection>/<id>.
func (c *Client) mutateID(ctx context.Context, method string, body any, collection, id string) (*APIResult, error) {
	segment, err := escapeID(id)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, method, body, "api", collection, segment)
}

// escapeID turns id into a single path segment. Ids that path cleaning would
// collapse into a parent resource are refused.
func escapeID(id string) (string, error) {
	switch id {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return url.PathEscape(id), nil
}

// folderBody sends an empty list rather than null when no emails are shared.
func folderBody(input FolderInput) FolderInput {
	if input.SharedEmails == nil {
		input.SharedEmails = []string{}
	}
	return input
}
