package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/pkg/apperror"
)

const notificationListLimit = 20

// Notifier pushes stored notifications to connected clients.
type Notifier interface {
	NotifyUser(userID uuid.UUID, n *domain.NotificationView)
}

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	notifier         Notifier
}

func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *NotificationService) SetNotifier(n Notifier) {
	s.notifier = n
}

type NotifyInput struct {
	RecipientID uuid.UUID
	Actor       *domain.User
	Kind        domain.NotificationKind
	PostID      *uuid.UUID
	Message     string
}

type NotificationList struct {
	Notifications []domain.NotificationView `json:"notifications"`
	UnreadCount   int                       `json:"unreadCount"`
}

// Notify stores an unread notification for the recipient. Users are never
// notified about their own actions.
func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) error {
	if input.RecipientID == input.Actor.ID {
		return nil
	}

	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: input.RecipientID,
		ActorID:     input.Actor.ID,
		PostID:      input.PostID,
		Kind:        input.Kind,
		Message:     input.Message,
		CreatedAt:   time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return apperror.Internal("creating notification", err)
	}

	logrus.WithFields(logrus.Fields{
		"recipient": n.RecipientID,
		"actor":     n.ActorID,
		"kind":      n.Kind,
	}).Debug("notification stored")

	if s.notifier != nil {
		s.notifier.NotifyUser(n.RecipientID, &domain.NotificationView{
			Notification: *n,
			Actor:        input.Actor.Summary(),
		})
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) (*NotificationList, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, apperror.Internal("listing notifications", err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("counting unread notifications", err)
	}

	actors := make(map[uuid.UUID]domain.UserSummary)
	views := make([]domain.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		actor, ok := actors[n.ActorID]
		if !ok {
			u, err := s.userRepo.GetByID(ctx, n.ActorID)
			if err != nil {
				return nil, apperror.Internal("getting notification actor", err)
			}
			actor = domain.UserSummary{ID: n.ActorID}
			if u != nil {
				actor = u.Summary()
			}
			actors[n.ActorID] = actor
		}
		views = append(views, domain.NotificationView{Notification: n, Actor: actor})
	}

	return &NotificationList{Notifications: views, UnreadCount: unread}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("counting unread notifications", err)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	ok, err := s.notificationRepo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return apperror.Internal("marking notification read", err)
	}
	if !ok {
		return apperror.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("marking notifications read", err)
	}
	return n, nil
}
