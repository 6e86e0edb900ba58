package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/oncorag/gliorag/internal/models"
)

const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// DefaultQuery selects guideline and consensus publications about
// glioblastoma that carry free full text.
const DefaultQuery = `("glioblastoma"[Title/Abstract] OR "glioblastoma"[MeSH Terms]) ` +
	`AND (Practice Guideline[pt] OR Guideline[pt] OR Consensus Development Conference[pt]) ` +
	`AND free full text[sb]`

// fetchBatchSize is the number of PMIDs sent per EFetch request.
const fetchBatchSize = 200

type ClientConfig struct {
	Email   string // required by NCBI usage policy
	APIKey  string
	Tool    string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the NCBI E-utilities endpoints. Requests carry the tool,
// email and optional API key on every call and are rate limited to the
// published per-key budget.
type Client struct {
	config  ClientConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(config ClientConfig) (*Client, error) {
	if config.Email == "" {
		return nil, fmt.Errorf("PubMed contact email is required")
	}
	if config.Tool == "" {
		config.Tool = "gliorag"
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	// NCBI allows 3 requests per second without an API key, 10 with one.
	rps := rate.Limit(3)
	if config.APIKey != "" {
		rps = rate.Limit(10)
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(rps, 1),
	}, nil
}

func (c *Client) buildParams(extra url.Values) url.Values {
	params := url.Values{}
	params.Set("tool", c.config.Tool)
	params.Set("email", c.config.Email)
	if c.config.APIKey != "" {
		params.Set("api_key", c.config.APIKey)
	}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eutils request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eutils returned status %d for %s", resp.StatusCode, endpoint)
	}

	return io.ReadAll(resp.Body)
}

// Search runs an ESearch query over the given publication-date range and
// returns matching PMIDs, at most retmax.
func (c *Client) Search(ctx context.Context, term, mindate, maxdate string, retmax int) ([]string, error) {
	if retmax <= 0 {
		retmax = 2000
	}

	params := c.buildParams(url.Values{
		"db":       {"pubmed"},
		"term":     {term},
		"mindate":  {mindate},
		"maxdate":  {maxdate},
		"datetype": {"pdat"},
		"retmax":   {strconv.Itoa(retmax)},
		"retmode":  {"json"},
	})

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse esearch response: %w", err)
	}

	return result.ESearchResult.IDList, nil
}

// Fetch retrieves article details for the given PMIDs in EFetch batches,
// parsing each XML response into literature records. The optional
// onProgress callback receives the running record count after each batch.
func (c *Client) Fetch(ctx context.Context, pmids []string, onProgress func(fetched int)) ([]models.LiteratureRecord, error) {
	var records []models.LiteratureRecord

	for i := 0; i < len(pmids); i += fetchBatchSize {
		end := i + fetchBatchSize
		if end > len(pmids) {
			end = len(pmids)
		}

		batch, err := c.fetchBatch(ctx, pmids[i:end])
		if err != nil {
			return nil, fmt.Errorf("efetch batch starting at %d: %w", i, err)
		}
		records = append(records, batch...)

		if onProgress != nil {
			onProgress(len(records))
		}
	}

	return records, nil
}

func (c *Client) fetchBatch(ctx context.Context, pmids []string) ([]models.LiteratureRecord, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := c.buildParams(url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	})

	body, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}

	return ParseArticleXML(body)
}
