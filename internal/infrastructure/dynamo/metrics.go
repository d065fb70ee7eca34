package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MetricRepo maintains daily event counters.
// PK: date (YYYY-MM-DD in the configured timezone), SK: "event#origin".
// Counters are upserted with an ADD expression, mirroring the reporting
// side's ON CONFLICT increment. Writes are best-effort: the caller logs
// failures and never retries.
type MetricRepo struct {
	client    *dynamodb.Client
	tableName string
	origin    string
	loc       *time.Location
}

func NewMetricRepo(client *dynamodb.Client, tableName, origin, timezone string) (*MetricRepo, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load metrics timezone %q: %w", timezone, err)
	}
	return &MetricRepo{client: client, tableName: tableName, origin: origin, loc: loc}, nil
}

// Increment bumps the counter for event on today's date bucket.
func (r *MetricRepo) Increment(ctx context.Context, event string) error {
	date := time.Now().In(r.loc).Format("2006-01-02")
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"date":  &types.AttributeValueMemberS{Value: date},
			"event": &types.AttributeValueMemberS{Value: event + "#" + r.origin},
		},
		UpdateExpression: aws.String("ADD #v :one SET #o = :origin"),
		ExpressionAttributeNames: map[string]string{
			"#v": "value",
			"#o": "origin",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":    &types.AttributeValueMemberN{Value: "1"},
			":origin": &types.AttributeValueMemberS{Value: r.origin},
		},
	})
	if err != nil {
		return fmt.Errorf("increment metric %s: %w", event, err)
	}
	return nil
}
