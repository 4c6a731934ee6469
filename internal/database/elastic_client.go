package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/hrms_gateway/internal/domain"
)

// ElasticSearchClient stores archived audit logs in one Elasticsearch index.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
}

// NewElasticSearchClient creates a client for Elasticsearch 7.x. Sniffing and
// health checks are off so single-node and proxied clusters work.
func NewElasticSearchClient(url, index string, opts ...elastic.ClientOptionFunc) (*ElasticSearchClient, error) {
	all := append([]elastic.ClientOptionFunc{
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	}, opts...)
	client, err := elastic.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return &ElasticSearchClient{client: client, index: index}, nil
}

// Index is the target index name.
func (es *ElasticSearchClient) Index() string { return es.index }

// BulkIndexAuditLogs indexes logs using the audit id as document id, so
// archiving the same page twice overwrites instead of duplicating.
func (es *ElasticSearchClient) BulkIndexAuditLogs(ctx context.Context, logs []domain.AuditLog) error {
	bulkRequest := es.client.Bulk()
	for _, log := range logs {
		bulkRequest = bulkRequest.Add(elastic.NewBulkIndexRequest().
			Index(es.index).
			Id(strconv.Itoa(log.ID)).
			Doc(log))
	}
	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}
	if bulkResponse.Errors {
		for _, item := range bulkResponse.Failed() {
			if item.Error != nil {
				return fmt.Errorf("bulk item %s failed: %s", item.Id, item.Error.Reason)
			}
		}
		return fmt.Errorf("bulk index reported errors")
	}
	return nil
}

// GetAuditLog reads one archived log back.
func (es *ElasticSearchClient) GetAuditLog(ctx context.Context, id int) (*domain.AuditLog, error) {
	result, err := es.client.Get().
		Index(es.index).
		Id(strconv.Itoa(id)).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log %d: %w", id, err)
	}
	if !result.Found {
		return nil, fmt.Errorf("audit log %d not found", id)
	}

	var log domain.AuditLog
	if err := json.Unmarshal(result.Source, &log); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit log %d: %w", id, err)
	}
	return &log, nil
}

// Close stops background goroutines of the underlying client.
func (es *ElasticSearchClient) Close() {
	es.client.Stop()
}
