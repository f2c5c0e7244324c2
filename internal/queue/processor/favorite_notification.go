package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bloghub/backend/internal/queue/task"
	"github.com/bloghub/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type favoriteNotificationProcessor struct {
	workers *worker.Workers
}

func NewFavoriteNotificationProcessor(workers *worker.Workers) *favoriteNotificationProcessor {
	return &favoriteNotificationProcessor{
		workers: workers,
	}
}

func (p *favoriteNotificationProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.FavoriteNotification
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process favorite notification task json unmarshal failed: %w", err)
	}

	if err = p.workers.FavoriteNotifier.NotifyPostAuthor(ctx, data.PostID, data.UserID); err != nil {
		return fmt.Errorf("notify post author failed: %w", err)
	}

	return nil
}
