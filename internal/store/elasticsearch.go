package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// ElasticsearchIndexer indexes classified jobs to Elasticsearch for
// full-text search. Lifecycle queries stay on Postgres; this backend
// only implements Indexer.
type ElasticsearchIndexer struct {
	client    *elasticsearch.Client
	indexName string
}

// NewElasticsearchIndexer creates a new Elasticsearch indexer
func NewElasticsearchIndexer(addresses []string, indexName string) (*ElasticsearchIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	// Check connection
	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &ElasticsearchIndexer{
		client:    client,
		indexName: indexName,
	}, nil
}

// BulkIndex indexes multiple jobs at once
func (i *ElasticsearchIndexer) BulkIndex(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for _, job := range jobs {
		// Meta line
		meta := map[string]any{
			"index": map[string]any{
				"_index": i.indexName,
				"_id":    job.Key(),
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		// Document line
		docBytes, err := json.Marshal(job)
		if err != nil {
			log.Printf("marshal job %s: %v", job.ID, err)
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := i.client.Bulk(bytes.NewReader(buf.Bytes()), i.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	// Parse response to check for individual errors
	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}

	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}

	if bulkRes.Errors {
		for _, item := range bulkRes.Items {
			if item.Index.Status >= 400 {
				log.Printf("bulk index error for %s: %s - %s",
					item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason)
			}
		}
	}

	return nil
}

// EnsureIndex creates the index with keyword-friendly mappings if it
// doesn't exist
func (i *ElasticsearchIndexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.indexName})
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil // Index already exists
	}

	mapping := `{
		"mappings": {
			"properties": {
				"title":            { "type": "text" },
				"company":          { "type": "keyword" },
				"source":           { "type": "keyword" },
				"department":       { "type": "keyword" },
				"team":             { "type": "keyword" },
				"location":         { "type": "text" },
				"employment_type":  { "type": "keyword" },
				"tags":             { "type": "keyword" },
				"created_at":       { "type": "date" },
				"classification": {
					"properties": {
						"category":   { "type": "keyword" },
						"confidence": { "type": "float" }
					}
				}
			}
		}
	}`

	createRes, err := i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("create index error: %s", createRes.Status())
	}

	log.Printf("Created index %s", i.indexName)
	return nil
}
