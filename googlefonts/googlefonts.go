// Package googlefonts lists the Google Fonts catalog and downloads
// individual font files. It is the catalog-fetching collaborator for the
// fontmatch core: the matcher itself never touches the network.
package googlefonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the Google Fonts developer API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/webfonts/v1/webfonts"

// maxFontSize caps a single font download. Catalog TTFs run a few hundred
// kilobytes; anything past this is not a font file we want in memory.
const maxFontSize = 32 << 20

// Client talks to the Google Fonts API.
type Client struct {
	// APIKey authenticates catalog requests. Required.
	APIKey string

	// BaseURL overrides the API endpoint, mainly for tests. Empty means
	// DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the HTTP client. Nil means a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// Log receives per-request progress. Nil means the standard logger.
	Log *logrus.Logger
}

// NewClient returns a Client using the given API key and defaults for
// everything else.
func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey}
}

// Webfont is one catalog entry: a font family and its downloadable files
// keyed by variant name ("regular", "italic", "700", ...).
type Webfont struct {
	Family   string            `json:"family"`
	Category string            `json:"category"`
	Files    map[string]string `json:"files"`
}

// Regular returns the URL of the family's regular-weight file, if it has
// one. Families without a regular variant cannot be compared and are
// skipped by Range.
func (w Webfont) Regular() (string, bool) {
	url, ok := w.Files["regular"]
	return url, ok
}

type webfontList struct {
	Items []Webfont `json:"items"`
}

// Catalog is the font list in the order the API returned it. Requested
// with sort=popularity, position is popularity rank, which is why order is
// preserved rather than re-sorted: the best free alternatives tend to
// cluster in the first hundred families.
type Catalog struct {
	families []string
	fonts    map[string]Webfont
}

// Len returns the number of families in the catalog.
func (c *Catalog) Len() int { return len(c.families) }

// Families returns the family names in catalog order.
func (c *Catalog) Families() []string {
	return append([]string(nil), c.families...)
}

// Get looks a family up by name.
func (c *Catalog) Get(family string) (Webfont, bool) {
	w, ok := c.fonts[family]
	return w, ok
}

// Range returns the catalog entries at positions [lower, upper) that have a
// regular variant, clamped to the catalog size. The window mirrors the
// usual search pattern of scanning only the most popular slice of the
// database instead of all of it.
func (c *Catalog) Range(lower, upper int) []Webfont {
	if lower < 0 {
		lower = 0
	}
	if upper > len(c.families) {
		upper = len(c.families)
	}
	var out []Webfont
	for i := lower; i < upper; i++ {
		w := c.fonts[c.families[i]]
		if _, ok := w.Regular(); !ok {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (c *Catalog) add(w Webfont) {
	if _, exists := c.fonts[w.Family]; !exists {
		c.families = append(c.families, w.Family)
	}
	c.fonts[w.Family] = w
}

// Catalog fetches the full font list sorted by popularity.
func (c *Client) Catalog(ctx context.Context) (*Catalog, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s?key=%s&sort=popularity", base, c.APIKey)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer body.Close()

	var list webfontList
	if err := json.NewDecoder(body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	cat := &Catalog{fonts: make(map[string]Webfont, len(list.Items))}
	for _, item := range list.Items {
		cat.add(item)
	}
	c.logger().Debugf("catalog: %d families", cat.Len())
	return cat, nil
}

// Download fetches one font file into memory. Payloads larger than
// maxFontSize are rejected rather than truncated; a clipped file would only
// fail later, during parsing, with a misleading cause.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	c.logger().Info(url)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download font: %w", err)
	}
	defer body.Close()

	data, err := readCapped(body, maxFontSize)
	if err != nil {
		return nil, fmt.Errorf("download font %s: %w", url, err)
	}
	return data, nil
}

// readCapped reads all of r, failing once more than limit bytes arrive.
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("payload exceeds %d bytes", limit)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %s", url, resp.Status)
	}
	return resp.Body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) logger() *logrus.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}
