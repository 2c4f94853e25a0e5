package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/pkg/apperror"
)

type InteractionService struct {
	interactionRepo repository.InteractionRepository
	postRepo        repository.PostRepository
	userRepo        repository.UserRepository
	notifications   *NotificationService
}

func NewInteractionService(
	interactionRepo repository.InteractionRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *InteractionService {
	return &InteractionService{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type RepostResult struct {
	Reposted      bool `json:"reposted"`
	RetweetsCount int  `json:"retweetsCount"`
}

// BookmarkResult carries no count: bookmarks are private to their owner.
type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}

func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*LikeResult, error) {
	state, err := s.toggle(ctx, domain.InteractionLike, userID, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: state.Active, LikesCount: state.Count}, nil
}

func (s *InteractionService) ToggleRepost(ctx context.Context, userID, postID uuid.UUID) (*RepostResult, error) {
	state, err := s.toggle(ctx, domain.InteractionRetweet, userID, postID)
	if err != nil {
		return nil, err
	}
	return &RepostResult{Reposted: state.Active, RetweetsCount: state.Count}, nil
}

func (s *InteractionService) ToggleBookmark(ctx context.Context, userID, postID uuid.UUID) (*BookmarkResult, error) {
	state, err := s.toggle(ctx, domain.InteractionBookmark, userID, postID)
	if err != nil {
		return nil, err
	}
	return &BookmarkResult{Bookmarked: state.Active}, nil
}

func (s *InteractionService) toggle(ctx context.Context, kind domain.InteractionKind, userID, postID uuid.UUID) (domain.ToggleState, error) {
	state, err := s.interactionRepo.Toggle(ctx, kind, userID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ToggleState{}, apperror.NotFound("tweet not found")
		}
		return domain.ToggleState{}, apperror.Internal("toggling "+string(kind), err)
	}

	// removing a fact is silent, and bookmarks never notify
	if !state.Active || kind == domain.InteractionBookmark {
		return state, nil
	}

	// the toggle is already committed, so a notification failure is only logged
	if err := s.notifyAuthor(ctx, kind, userID, postID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind":    kind,
			"user_id": userID,
			"post_id": postID,
		}).Error("interaction notification failed")
	}
	return state, nil
}

func (s *InteractionService) notifyAuthor(ctx context.Context, kind domain.InteractionKind, userID, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return apperror.Internal("getting post", err)
	}
	if post == nil || post.UserID == userID {
		return nil
	}

	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperror.Internal("getting actor", err)
	}
	if actor == nil {
		return apperror.NotFound("user not found")
	}

	var (
		notifKind domain.NotificationKind
		verb      string
	)
	switch kind {
	case domain.InteractionLike:
		notifKind, verb = domain.NotificationLike, "liked"
	case domain.InteractionRetweet:
		notifKind, verb = domain.NotificationRetweet, "retweeted"
	}

	return s.notifications.Notify(ctx, NotifyInput{
		RecipientID: post.UserID,
		Actor:       actor,
		Kind:        notifKind,
		PostID:      &post.ID,
		Message:     fmt.Sprintf("%s %s your tweet", actor.DisplayName, verb),
	})
}
