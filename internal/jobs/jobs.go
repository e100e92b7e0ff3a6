// Package jobs queries the Jooble job board for openings matching a career.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	apiURL          = "https://jooble.org/api"
	userAgent       = "spigell/career-compass"
	defaultLocation = "India"
	defaultLimit    = 5
	defaultTimeout  = 15 * time.Second

	notAvailable = "N/A"
	missingLink  = "#"
)

// ErrMissingAPIKey is returned by New when no API key is supplied.
var ErrMissingAPIKey = errors.New("job board api key is required")

// Config tunes the search.
type Config struct {
	Location string        `mapstructure:"location"`
	Limit    int           `mapstructure:"limit"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// ExcludeCompanies drops openings posted by these companies.
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
}

type Client struct {
	apiKey     string
	location   string
	limit      int
	filters    []Filter
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a job board client. Filters run on every result before the
// limit is applied.
func New(logger *zap.Logger, apiKey string, cfg Config, filters ...Filter) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Location = strings.TrimSpace(cfg.Location); cfg.Location == "" {
		cfg.Location = defaultLocation
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if len(cfg.ExcludeCompanies) > 0 {
		filters = append([]Filter{NewExcludedCompanies(cfg.ExcludeCompanies)}, filters...)
	}

	return &Client{
		apiKey:   apiKey,
		location: cfg.Location,
		limit:    cfg.Limit,
		filters:  filters,
		logger:   logger,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		UserAgent: userAgent,
		APIURL:    apiURL,
	}, nil
}

// Search returns up to the configured limit of openings for keywords. Blank
// keywords return an empty list without calling the API.
func (c *Client) Search(ctx context.Context, keywords string) (*Jobs, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return &Jobs{}, nil
	}

	response, err := c.postSearch(ctx, searchRequest{Keywords: keywords, Location: c.location})
	if err != nil {
		return nil, fmt.Errorf("search jobs for %q: %w", keywords, err)
	}

	var items []*Job
	cfg := &mapstructure.DecoderConfig{
		Result:           &items,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(response.Jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	// null entries in the response decode to nil.
	kept := items[:0]
	for _, job := range items {
		if job == nil {
			continue
		}
		job.fillMissing()
		kept = append(kept, job)
	}
	items = kept

	result := &Jobs{Items: items, Total: response.TotalCount}
	runFilters(c.filters, result, c.logger)

	if len(result.Items) > c.limit {
		result.Items = result.Items[:c.limit]
	}

	c.logger.Debug("got jobs from job board",
		zap.String("keywords", keywords),
		zap.Int("total", response.TotalCount),
		zap.Int("returned", result.Len()),
	)

	return result, nil
}
