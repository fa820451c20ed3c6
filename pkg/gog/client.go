package gog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// defaultRating is used when a game page carries no age restriction icon
	defaultRating = "BR0"

	// shortDescriptionLimit bounds the plain-text summary cut from the
	// description block
	shortDescriptionLimit = 160

	// screenshotFormatter replaces the {formatter} token in screenshot URLs
	// with a fixed size variant before download
	screenshotFormatter = "product_card_v2_mobile_slider_639"

	formatterToken = "{formatter}"
)

// Client talks to the GOG catalog endpoint and the public game pages
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new GOG client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// Catalog fetches one page of catalog products. The query parameters are
// forwarded verbatim to the catalog endpoint.
func (c *Client) Catalog(ctx context.Context, query url.Values) ([]Product, error) {
	endpoint := c.config.CatalogURL
	if encoded := query.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogFetch, err)
	}

	var response catalogResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrCatalogFetch, err)
	}

	return response.Products, nil
}

// GameDetails fetches the public game page for the given catalog slug and
// extracts description, short description and age rating. The page slug
// convention differs from the catalog one: hyphens become underscores.
func (c *Client) GameDetails(ctx context.Context, slug string) (*Details, error) {
	pageSlug := strings.ToLower(strings.ReplaceAll(slug, "-", "_"))
	endpoint := fmt.Sprintf("%s/%s", strings.TrimSuffix(c.config.GamePageURL, "/"), pageSlug)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailsUnavailable, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: parse page: %v", ErrDetailsUnavailable, err)
	}

	descriptionBlock := doc.Find(".description").First()
	if descriptionBlock.Length() == 0 {
		return nil, fmt.Errorf("%w: no description block", ErrDetailsUnavailable)
	}

	description, err := descriptionBlock.Html()
	if err != nil {
		return nil, fmt.Errorf("%w: read description markup: %v", ErrDetailsUnavailable, err)
	}

	details := &Details{
		Description:      strings.TrimSpace(description),
		ShortDescription: truncate(strings.TrimSpace(descriptionBlock.Text()), shortDescriptionLimit),
		Rating:           defaultRating,
	}

	// The rating code sits in the href fragment of the age restriction icon,
	// e.g. xlink:href="#age_18" -> "age18"
	if href, ok := doc.Find(".age-restrictions__icon use").First().Attr("xlink:href"); ok {
		details.Rating = strings.NewReplacer("_", "", "#", "").Replace(href)
	}

	return details, nil
}

// DownloadImage fetches the binary content behind an image URL
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	body, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDownload, err)
	}
	return body, nil
}

// ScreenshotURL resolves the {formatter} size token in a catalog screenshot
// URL to a concrete image variant
func ScreenshotURL(raw string) string {
	return strings.ReplaceAll(raw, formatterToken, screenshotFormatter)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
