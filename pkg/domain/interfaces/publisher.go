package interfaces

import (
	"context"

	"github.com/argus-sec/argus/pkg/domain/model"
)

// EventPublisher emits report lifecycle events to an external broker
type EventPublisher interface {
	Publish(ctx context.Context, event *model.ReportEvent) error
	Close() error
}
