package worker

import (
	"context"
	"testing"

	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/domain"
	"github.com/bloghub/backend/internal/service"
	emailProvider "github.com/bloghub/backend/pkg/email"
	mockEmail "github.com/bloghub/backend/pkg/email/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postsServiceStub struct {
	post *service.PostWithStats
	err  error
}

func (s *postsServiceStub) Create(context.Context, uuid.UUID, string, string) (*domain.Post, error) {
	return nil, nil
}

func (s *postsServiceStub) GetByID(context.Context, uuid.UUID, *uuid.UUID) (*service.PostWithStats, error) {
	return s.post, s.err
}

func (s *postsServiceStub) GetAll(context.Context, int, int, *uuid.UUID) ([]service.PostWithStats, int64, error) {
	return nil, 0, nil
}

func (s *postsServiceStub) Count(context.Context) (int64, error) {
	return 0, nil
}

type usersServiceStub struct {
	users map[uuid.UUID]*domain.User
}

func (s *usersServiceStub) SignUp(context.Context, service.SignUpInput) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (s *usersServiceStub) SignIn(context.Context, service.SignInInput) (*service.Tokens, error) {
	return nil, nil
}

func (s *usersServiceStub) Verify(context.Context, uuid.UUID, string) error {
	return nil
}

func (s *usersServiceStub) Refresh(context.Context, uuid.UUID, string, string) (*service.Tokens, error) {
	return nil, nil
}

func (s *usersServiceStub) GetOneByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return user, nil
}

func (s *usersServiceStub) Count(context.Context) (int64, error) {
	return 0, nil
}

func enabledEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Enabled: true,
		Templates: config.EmailTemplates{
			Verification:     "verification.html",
			FavoriteNotified: "favorite_notification.html",
		},
	}
}

func TestFavoriteNotifier_SendsEmailToAuthor(t *testing.T) {
	authorID := uuid.New()
	readerID := uuid.New()
	postID := uuid.New()

	services := &service.Services{
		Posts: &postsServiceStub{
			post: &service.PostWithStats{
				Post:          &domain.Post{ID: postID, AuthorID: authorID, Title: "Why toggles are hard"},
				FavoriteCount: 3,
			},
		},
		Users: &usersServiceStub{
			users: map[uuid.UUID]*domain.User{
				authorID: {ID: authorID, Name: "Author", Email: "author@example.com"},
				readerID: {ID: readerID, Name: "Reader", Email: "reader@example.com"},
			},
		},
	}

	sender := new(mockEmail.EmailSender)
	sender.On("Send", mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "author@example.com" && inp.Body != ""
	})).Return(nil)

	notifier := newFavoriteNotifier(services, sender, enabledEmailConfig())

	err := notifier.NotifyPostAuthor(context.Background(), postID, readerID)
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestFavoriteNotifier_DropsWhenPostGone(t *testing.T) {
	services := &service.Services{
		Posts: &postsServiceStub{err: service.ErrPostNotFound},
		Users: &usersServiceStub{},
	}

	sender := new(mockEmail.EmailSender)
	notifier := newFavoriteNotifier(services, sender, enabledEmailConfig())

	err := notifier.NotifyPostAuthor(context.Background(), uuid.New(), uuid.New())
	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestFavoriteNotifier_SkipsWhenEmailDisabled(t *testing.T) {
	sender := new(mockEmail.EmailSender)
	notifier := newFavoriteNotifier(&service.Services{}, sender, config.EmailConfig{Enabled: false})

	err := notifier.NotifyPostAuthor(context.Background(), uuid.New(), uuid.New())
	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestEmailSender_SendsVerificationCode(t *testing.T) {
	sender := new(mockEmail.EmailSender)
	sender.On("Send", mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "new-user@example.com" && inp.Body != ""
	})).Return(nil)

	s := newEmailSender(sender, enabledEmailConfig())

	err := s.SendUserVerificationEmail(context.Background(), "new-user@example.com", "123456")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}
