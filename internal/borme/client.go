// Package borme talks to the public commercial-registry API. Responses
// are parsed leniently: the upstream schema drifts between bulletin
// volumes, so fields are plucked by path instead of unmarshaled into a
// rigid struct.
package borme

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/worker"
)

const maxBodyBytes = 4 << 20

// Client fetches bulletin entries and company listings.
type Client struct {
	http      *retryablehttp.Client
	baseURL   string
	userAgent string
	limiter   *worker.Limiter
	log       *logrus.Logger
}

// New builds a client from the API configuration.
func New(cfg model.APIConfig, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = cfg.MaxRetries
	rc.HTTPClient.Timeout = cfg.Timeout
	// Hand back the final response instead of discarding it, so status
	// codes can be classified after retries are exhausted.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		http:      rc,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		log:       log,
	}
}

// SearchResult is one company hit from the search endpoint.
type SearchResult struct {
	Slug     string
	Name     string
	Province string
}

// SearchCompanies queries the company search endpoint.
func (c *Client) SearchCompanies(ctx context.Context, query string) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/empresa/?q=%s", c.baseURL, url.QueryEscape(query))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	gjson.GetBytes(body, "objects").ForEach(func(_, obj gjson.Result) bool {
		results = append(results, SearchResult{
			Slug:     obj.Get("slug").String(),
			Name:     obj.Get("name").String(),
			Province: obj.Get("province").String(),
		})
		return true
	})
	return results, nil
}

// PersonResult is one person hit from the search endpoint.
type PersonResult struct {
	Slug string
	Name string
}

// SearchPersons queries the person search endpoint.
func (c *Client) SearchPersons(ctx context.Context, query string) ([]PersonResult, error) {
	u := fmt.Sprintf("%s/persona/?q=%s", c.baseURL, url.QueryEscape(query))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var results []PersonResult
	gjson.GetBytes(body, "objects").ForEach(func(_, obj gjson.Result) bool {
		results = append(results, PersonResult{
			Slug: obj.Get("slug").String(),
			Name: obj.Get("name").String(),
		})
		return true
	})
	return results, nil
}

// FetchCompanyEntries retrieves all bulletin entries published for a
// company slug, oldest first as the API returns them.
func (c *Client) FetchCompanyEntries(ctx context.Context, slug string) ([]model.Entry, error) {
	u := fmt.Sprintf("%s/empresa/%s/", c.baseURL, url.PathEscape(slug))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	gjson.GetBytes(body, "anuncios").ForEach(func(_, a gjson.Result) bool {
		e := model.Entry{
			ID:     a.Get("id").String(),
			Source: u,
			Text:   entryText(a),
		}
		if d := a.Get("fecha").String(); d != "" {
			if ts, err := time.Parse("2006-01-02", d); err == nil {
				e.Date = ts
			}
		}
		if e.Text != "" {
			entries = append(entries, e)
		}
		return true
	})
	return entries, nil
}

// FetchEntry retrieves a single bulletin entry by id.
func (c *Client) FetchEntry(ctx context.Context, id string) (*model.Entry, error) {
	u := fmt.Sprintf("%s/anuncio/%s/", c.baseURL, url.PathEscape(id))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	a := gjson.ParseBytes(body)
	e := &model.Entry{
		ID:     a.Get("id").String(),
		Source: u,
		Text:   entryText(a),
	}
	if e.ID == "" {
		e.ID = id
	}
	if d := a.Get("fecha").String(); d != "" {
		if ts, err := time.Parse("2006-01-02", d); err == nil {
			e.Date = ts
		}
	}
	if e.Text == "" {
		return nil, &APIError{Kind: ErrUnknown, URL: u, Message: "entry has no text payload"}
	}
	return e, nil
}

// entryText assembles the raw entry text from whichever fields the API
// populated. Some volumes ship plain text, older ones ship HTML.
func entryText(a gjson.Result) string {
	if t := a.Get("texto").String(); t != "" {
		return maybeStripHTML(t)
	}

	// Fall back to the acto map: "Nombramientos": "Adm. Unico: ..."
	var parts []string
	a.Get("actos").ForEach(func(key, val gjson.Result) bool {
		if s := strings.TrimSpace(val.String()); s != "" {
			parts = append(parts, key.String()+". "+maybeStripHTML(s))
		} else {
			parts = append(parts, key.String()+".")
		}
		return true
	})
	return strings.Join(parts, " ")
}

func maybeStripHTML(s string) string {
	if strings.Contains(s, "</") || strings.Contains(s, "/>") {
		return VisibleText(s)
	}
	return s
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, u); err != nil {
		return nil, networkError(u, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &APIError{Kind: ErrUnknown, URL: u, Message: err.Error(), Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classifyStatus(resp.StatusCode, u)
		c.log.WithFields(logrus.Fields{
			"url":    u,
			"status": resp.StatusCode,
			"kind":   apiErr.Kind,
		}).Warn("Registry request failed")
		return nil, apiErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(u, err)
	}
	return body, nil
}
