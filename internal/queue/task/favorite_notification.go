package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	FavoriteNotificationTaskName  = "favoriteNotificationTask"
	FavoriteNotificationQueueName = "favoriteNotificationQueue"
)

type FavoriteNotification struct {
	PostID uuid.UUID `json:"post_id"`
	UserID uuid.UUID `json:"user_id"`
}

func NewFavoriteNotificationTask(postID, userID uuid.UUID) (*asynq.Task, error) {
	data := FavoriteNotification{
		PostID: postID,
		UserID: userID,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		FavoriteNotificationTaskName,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(FavoriteNotificationQueueName),
	), nil
}
