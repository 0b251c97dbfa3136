package marketindex

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
	"FXPulse/internal/service/ratelimit"
	xhttp "FXPulse/pkg/http"
	applogger "FXPulse/pkg/logger"
)

// Client implements a RateSource backed by a marketindex-style daily
// quote endpoint: GET {base_url}?marketindexCd={code}&page={n} returns
// a page of {date, rate} rows, newest first, empty when exhausted.
type Client struct {
	http        *xhttp.Client
	baseURL     string
	codes       map[models.Currency]string
	pacer       *ratelimit.Pacer
	pageTimeout time.Duration
	deadline    time.Duration
	maxPages    int
	logger      *applogger.Logger
	metrics     drepo.Metrics
}

// Option configures Client.
type Option func(*Client)

// New creates a marketindex RateSource.
func New(baseURL string, codes map[models.Currency]string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		codes:       codes,
		pacer:       ratelimit.NewPacer(300 * time.Millisecond),
		pageTimeout: 5 * time.Second,
		deadline:    30 * time.Second,
		maxPages:    20,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(c.pageTimeout))
	}
	return c
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *xhttp.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithPageDelay sets the mandatory delay between page requests.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) { c.pacer = ratelimit.NewPacer(d) }
}

// WithPageTimeout bounds each page request.
func WithPageTimeout(d time.Duration) Option {
	return func(c *Client) { c.pageTimeout = d }
}

// WithDeadline bounds the whole paged fetch.
func WithDeadline(d time.Duration) Option {
	return func(c *Client) { c.deadline = d }
}

// WithMaxPages caps paging when the source never runs dry.
func WithMaxPages(n int) Option {
	return func(c *Client) { c.maxPages = n }
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

type pageRow struct {
	Date string `json:"date"`
	Rate string `json:"rate"`
}

type pageResponse struct {
	Rows []pageRow `json:"rows"`
}

// FetchDaily pages through the source until at least minCount samples
// are collected, the source runs dry, or the page cap is hit. The
// result is sorted ascending by date and deduplicated by date, last
// write wins. Malformed rows are skipped. Transport or decode failures
// surface as FetchError.
func (c *Client) FetchDaily(ctx context.Context, currency models.Currency, minCount int) (models.QuoteSeries, error) {
	code, ok := c.codes[currency]
	if !ok {
		return nil, models.NewFetchError(currency, fmt.Errorf("no index code configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.deadline)
	defer cancel()

	var quotes []models.Quote
	pages := 0
	for page := 1; page <= c.maxPages; page++ {
		if page > 1 {
			if err := c.pacer.Wait(ctx, code); err != nil {
				return nil, models.NewFetchError(currency, err)
			}
		}

		rows, err := c.fetchPage(ctx, code, page)
		if err != nil {
			return nil, models.NewFetchError(currency, err)
		}
		pages++

		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			q, ok := parseRow(row)
			if !ok {
				if c.logger != nil {
					c.logger.Debug("skipping malformed row",
						applogger.String("currency", currency.String()),
						applogger.String("date", row.Date),
						applogger.String("rate", row.Rate),
					)
				}
				continue
			}
			quotes = append(quotes, q)
		}

		if len(quotes) >= minCount {
			break
		}
	}

	series := normalize(quotes)
	if c.metrics != nil {
		c.metrics.RecordFetch(currency.String(), pages)
	}
	if c.logger != nil {
		c.logger.Info("history fetched",
			applogger.String("currency", currency.String()),
			applogger.Int("pages", pages),
			applogger.Int("samples", len(series)),
		)
	}
	return series, nil
}

func (c *Client) fetchPage(ctx context.Context, code string, page int) ([]pageRow, error) {
	pageCtx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	var resp pageResponse
	err := c.http.GetJSON(pageCtx, &xhttp.RequestOptions{
		URL: c.baseURL,
		QueryParams: map[string]string{
			"marketindexCd": code,
			"page":          strconv.Itoa(page),
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	return resp.Rows, nil
}

var dateLayouts = []string{"2006.01.02", "2006-01-02"}

// parseRow converts one source row. Rows missing a date or rate, or
// carrying an unparseable value, are skipped rather than fatal.
func parseRow(row pageRow) (models.Quote, bool) {
	if row.Date == "" || row.Rate == "" {
		return models.Quote{}, false
	}

	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		date, err = time.Parse(layout, strings.TrimSpace(row.Date))
		if err == nil {
			break
		}
	}
	if err != nil {
		return models.Quote{}, false
	}

	// The source formats rates with thousands separators.
	rate, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row.Rate), ",", ""), 64)
	if err != nil || rate <= 0 {
		return models.Quote{}, false
	}

	return models.Quote{Date: date, Rate: rate}, true
}

// normalize sorts ascending by date and drops duplicate dates, keeping
// the last-seen row for each date.
func normalize(quotes []models.Quote) models.QuoteSeries {
	if len(quotes) == 0 {
		return models.QuoteSeries{}
	}

	byDate := make(map[time.Time]models.Quote, len(quotes))
	for _, q := range quotes {
		byDate[q.Date] = q
	}

	series := make(models.QuoteSeries, 0, len(byDate))
	for _, q := range byDate {
		series = append(series, q)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

var _ drepo.RateSource = (*Client)(nil)
