package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"calorie-workers/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// dailySummaryMapping is applied when the summary index does not exist yet.
const dailySummaryMapping = `{
	"mappings": {
		"properties": {
			"summaryId":        {"type": "keyword"},
			"userRef":          {"type": "keyword"},
			"summaryDate":      {"type": "date", "format": "yyyy-MM-dd"},
			"consumedCalories": {"type": "integer"},
			"burnedCalories":   {"type": "integer"},
			"netCalories":      {"type": "integer"},
			"feedback":         {"type": "keyword"},
			"bmi":              {"type": "float"},
			"bmiCategory":      {"type": "keyword"},
			"createdAt":        {"type": "date"}
		}
	}
}`

// ElasticsearchClient wraps the Elasticsearch client
type ElasticsearchClient struct {
	Client *elasticsearch.Client
}

// NewElasticsearch creates a new Elasticsearch client
func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}

	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticsearchClient{Client: es}, nil
}

// Ping tests the Elasticsearch connection
func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}

	return nil
}

// EnsureSummaryIndex creates the daily summary index with its mapping. An existing index is left alone.
func (c *ElasticsearchClient) EnsureSummaryIndex(ctx context.Context, index string) error {
	exists, err := c.Client.Indices.Exists([]string{index}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := c.Client.Indices.Create(
		index,
		c.Client.Indices.Create.WithBody(strings.NewReader(dailySummaryMapping)),
		c.Client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}

// IndexDocument stores doc under id, replacing any previous version.
func (c *ElasticsearchClient) IndexDocument(ctx context.Context, index, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	res, err := c.Client.Index(
		index,
		bytes.NewReader(body),
		c.Client.Index.WithDocumentID(id),
		c.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index document %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index document %s: %s", id, res.Status())
	}
	return nil
}
