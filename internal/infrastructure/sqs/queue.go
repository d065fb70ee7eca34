package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/exposure-verify-api/internal/config"
	"github.com/exposure-verify-api/internal/domain"
)

// Queue is the delivery-queue producer. Jobs are sent fire-once with no
// retry here; at-least-once semantics and redelivery belong to the external
// consumer.
type Queue struct {
	client   *sqs.Client
	queueURL string
}

func NewQueue(cfg *config.Config) (*Queue, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	clientOpts := []func(*sqs.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return &Queue{
		client:   sqs.NewFromConfig(awsCfg, clientOpts...),
		queueURL: cfg.DeliveryQueueURL,
	}, nil
}

// Enqueue publishes one delivery job.
func (q *Queue) Enqueue(ctx context.Context, job *domain.DeliveryJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delivery job: %w", err)
	}
	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("enqueue delivery job: %v: %w", err, domain.ErrDelivery)
	}
	return nil
}
