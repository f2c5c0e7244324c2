package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bloghub/backend/internal/queue/task"
	"github.com/bloghub/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type verificationEmailProcessor struct {
	workers *worker.Workers
}

func NewVerificationEmailProcessor(workers *worker.Workers) *verificationEmailProcessor {
	return &verificationEmailProcessor{
		workers: workers,
	}
}

func (p *verificationEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.VerificationEmail
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process verification email task json unmarshal failed: %w", err)
	}

	if err := p.workers.EmailSender.SendUserVerificationEmail(ctx, data.Email, data.Code); err != nil {
		return fmt.Errorf("send user verification email failed: %w", err)
	}

	return nil
}
