package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/service"
	emailProvider "github.com/bloghub/backend/pkg/email"

	"github.com/google/uuid"
)

type favoriteNotifier struct {
	services *service.Services
	sender   emailProvider.Sender
	config   config.EmailConfig
}

func newFavoriteNotifier(
	services *service.Services,
	sender emailProvider.Sender,
	config config.EmailConfig,
) *favoriteNotifier {
	return &favoriteNotifier{
		services: services,
		sender:   sender,
		config:   config,
	}
}

type favoriteNotificationInput struct {
	PostTitle     string
	ReaderName    string
	FavoriteCount int64
}

// NotifyPostAuthor emails the post's author that someone starred their post.
// A post or user deleted between the toggle and the task run is not an error
// worth retrying: the notification is simply dropped.
func (n *favoriteNotifier) NotifyPostAuthor(ctx context.Context, postID, userID uuid.UUID) error {
	if !n.config.Enabled {
		return nil
	}

	post, err := n.services.Posts.GetByID(ctx, postID, nil)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return nil
		}
		return fmt.Errorf("get post for notification failed: %w", err)
	}

	reader, err := n.services.Users.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("get reader for notification failed: %w", err)
	}

	author, err := n.services.Users.GetOneByID(ctx, post.Post.AuthorID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("get author for notification failed: %w", err)
	}

	templateInput := favoriteNotificationInput{
		PostTitle:     post.Post.Title,
		ReaderName:    reader.Name,
		FavoriteCount: post.FavoriteCount,
	}
	sendInput := emailProvider.SendEmailInput{
		Subject: "Your post got a new star",
		To:      author.Email,
	}

	if err := sendInput.GenerateBodyFromHTML(n.config.Templates.FavoriteNotified, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := n.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
