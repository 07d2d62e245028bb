package repository

import (
	"context"

	"github.com/proforma-service/internal/domain"
)

// StreamRepository - Redis Streams access for run requests and notifications
type StreamRepository interface {
	// ConsumeStream reads new messages for a consumer group member until ctx is done
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup creates the group and the stream if missing; an existing group is not an error
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream JSON-encodes data into the "data" field of a new entry
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
