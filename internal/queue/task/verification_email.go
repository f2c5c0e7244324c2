package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	VerificationEmailTaskName  = "verificationEmailTask"
	VerificationEmailQueueName = "verificationEmailQueue"
)

type VerificationEmail struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func NewVerificationEmailTask(email string, code string) (*asynq.Task, error) {
	data := VerificationEmail{
		Email: email,
		Code:  code,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		VerificationEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(VerificationEmailQueueName),
	), nil
}
