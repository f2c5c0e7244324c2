package worker

import (
	"context"

	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/service"
	emailProvider "github.com/bloghub/backend/pkg/email"

	"github.com/google/uuid"
)

type Workers struct {
	EmailSender      EmailSender
	FavoriteNotifier FavoriteNotifier
}

type Deps struct {
	Services      *service.Services
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendUserVerificationEmail(ctx context.Context, email string, verificationCode string) error
}

type FavoriteNotifier interface {
	NotifyPostAuthor(ctx context.Context, postID, userID uuid.UUID) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender:      newEmailSender(deps.EmailProvider, deps.Config.Email),
		FavoriteNotifier: newFavoriteNotifier(deps.Services, deps.EmailProvider, deps.Config.Email),
	}
}
