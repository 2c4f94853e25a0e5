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

const suggestedUsersLimit = 3

var ErrSelfFollow = apperror.InvalidArg("you cannot follow yourself")

// UserService owns profiles and the follow graph.
type UserService struct {
	userRepo      repository.UserRepository
	followRepo    repository.FollowRepository
	postRepo      repository.PostRepository
	notifications *NotificationService
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	notifications *NotificationService,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		followRepo:    followRepo,
		postRepo:      postRepo,
		notifications: notifications,
	}
}

type ProfileResponse struct {
	User        domain.UserView `json:"user"`
	IsFollowing bool            `json:"isFollowing"`
}

type FollowResult struct {
	Following      bool `json:"following"`
	FollowersCount int  `json:"followersCount"`
}

// Profile returns a user by username as seen by viewerID.
func (s *UserService) Profile(ctx context.Context, viewerID uuid.UUID, username string) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal("getting user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	view, err := s.View(ctx, user)
	if err != nil {
		return nil, err
	}

	following, err := s.IsFollowing(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{User: *view, IsFollowing: following}, nil
}

// View attaches live follower, following and tweet counts.
func (s *UserService) View(ctx context.Context, user *domain.User) (*domain.UserView, error) {
	followers, err := s.FollowersOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowingOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	tweets, err := s.postRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal("counting tweets", err)
	}

	return &domain.UserView{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
		TweetsCount:    tweets,
	}, nil
}

// ToggleFollow follows followedID if followerID does not follow them yet,
// otherwise unfollows. Only the follow side notifies.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followedID uuid.UUID) (*FollowResult, error) {
	if followerID == followedID {
		return nil, ErrSelfFollow
	}

	state, err := s.followRepo.Toggle(ctx, followerID, followedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Internal("toggling follow", err)
	}

	if state.Active {
		s.notifyFollow(ctx, followerID, followedID)
	}

	return &FollowResult{Following: state.Active, FollowersCount: state.Count}, nil
}

func (s *UserService) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	created, err := s.followRepo.Create(ctx, followerID, followedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Internal("creating follow", err)
	}
	if created {
		s.notifyFollow(ctx, followerID, followedID)
	}
	return nil
}

func (s *UserService) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	if _, err := s.followRepo.Delete(ctx, followerID, followedID); err != nil {
		return apperror.Internal("deleting follow", err)
	}
	return nil
}

func (s *UserService) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	ok, err := s.followRepo.Exists(ctx, followerID, followedID)
	if err != nil {
		return false, apperror.Internal("checking follow", err)
	}
	return ok, nil
}

func (s *UserService) FollowersOf(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("counting followers", err)
	}
	return n, nil
}

func (s *UserService) FollowingOf(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("counting following", err)
	}
	return n, nil
}

// Suggested lists a few users userID does not follow yet, newest first.
func (s *UserService) Suggested(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	users, err := s.userRepo.ListSuggested(ctx, userID, suggestedUsersLimit)
	if err != nil {
		return nil, apperror.Internal("listing suggested users", err)
	}
	return summaries(users), nil
}

// notifyFollow runs after the follow is committed, so a failure is logged
// rather than returned.
func (s *UserService) notifyFollow(ctx context.Context, followerID, followedID uuid.UUID) {
	err := s.sendFollowNotification(ctx, followerID, followedID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"follower": followerID,
			"followed": followedID,
		}).Error("follow notification failed")
	}
}

func (s *UserService) sendFollowNotification(ctx context.Context, followerID, followedID uuid.UUID) error {
	actor, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return apperror.Internal("getting follower", err)
	}
	if actor == nil {
		return apperror.NotFound("user not found")
	}

	return s.notifications.Notify(ctx, NotifyInput{
		RecipientID: followedID,
		Actor:       actor,
		Kind:        domain.NotificationFollow,
		Message:     fmt.Sprintf("%s started following you", actor.DisplayName),
	})
}

func summaries(users []domain.User) []domain.UserSummary {
	out := make([]domain.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out
}
