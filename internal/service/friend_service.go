package service

import (
	"context"

	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
//
// Per unordered pair of users the states are: none, pending (directed) and
// friends. Every transition is validated here. The unique index on the
// ordered (requester, addressee) pair rejects same-direction duplicate sends;
// two concurrent opposite-direction sends can leave a pending row each way,
// which either side resolves normally.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// resolveTarget maps a username to the user record, treating self-reference as
// a validation error.
func (s *FriendService) resolveTarget(ctx context.Context, userID uint, username string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	if target.ID == userID {
		return nil, models.NewValidationError("Cannot perform friend actions on yourself")
	}
	return target, nil
}

// SendRequest sends a friend request to the named user.
func (s *FriendService) SendRequest(ctx context.Context, userID uint, to string) (*models.Friendship, error) {
	target, err := s.resolveTarget(ctx, userID, to)
	if err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			return nil, models.NewConflictError("You are already friends")
		case models.FriendshipStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewConflictError("Friend request already sent")
			}
			return nil, models.NewConflictError("This user has already sent you a friend request")
		}
	}

	friendship := &models.Friendship{
		RequesterID: userID,
		AddresseeID: target.ID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}
	return s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, target.ID)
}

// CancelRequest withdraws the caller's own outgoing pending request to the
// named user.
func (s *FriendService) CancelRequest(ctx context.Context, userID uint, to string) error {
	target, err := s.resolveTarget(ctx, userID, to)
	if err != nil {
		return err
	}

	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, target.ID)
	if err != nil {
		return err
	}
	if friendship == nil || friendship.Status != models.FriendshipStatusPending || friendship.RequesterID != userID {
		return models.NewNotFoundError("Friend request", 0)
	}

	return s.friendRepo.Delete(ctx, friendship.ID)
}

// incomingRequest loads the pending request sent by the named user to the
// caller.
func (s *FriendService) incomingRequest(ctx context.Context, userID uint, from string) (*models.Friendship, error) {
	sender, err := s.resolveTarget(ctx, userID, from)
	if err != nil {
		return nil, err
	}

	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, sender.ID)
	if err != nil {
		return nil, err
	}
	if friendship == nil || friendship.Status != models.FriendshipStatusPending || friendship.AddresseeID != userID {
		return nil, models.NewNotFoundError("Friend request", 0)
	}
	return friendship, nil
}

// AcceptRequest accepts the incoming pending request from the named user.
func (s *FriendService) AcceptRequest(ctx context.Context, userID uint, from string) (*models.Friendship, error) {
	friendship, err := s.incomingRequest(ctx, userID, from)
	if err != nil {
		return nil, err
	}

	if err := s.friendRepo.UpdateStatus(ctx, friendship.ID, models.FriendshipStatusAccepted); err != nil {
		return nil, err
	}

	friendship.Status = models.FriendshipStatusAccepted
	return friendship, nil
}

// RejectRequest declines the incoming pending request from the named user,
// returning the pair to a clean slate.
func (s *FriendService) RejectRequest(ctx context.Context, userID uint, from string) error {
	friendship, err := s.incomingRequest(ctx, userID, from)
	if err != nil {
		return err
	}
	return s.friendRepo.Delete(ctx, friendship.ID)
}

// RemoveFriend dissolves an accepted friendship with the named user.
func (s *FriendService) RemoveFriend(ctx context.Context, userID uint, friend string) error {
	target, err := s.resolveTarget(ctx, userID, friend)
	if err != nil {
		return err
	}

	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, target.ID)
	if err != nil {
		return err
	}
	if friendship == nil || friendship.Status != models.FriendshipStatusAccepted {
		return models.NewNotFoundError("Friendship", 0)
	}

	return s.friendRepo.Delete(ctx, friendship.ID)
}

// ListFriends returns the caller's friends.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// ListRequests returns the caller's incoming and outgoing pending requests.
func (s *FriendService) ListRequests(ctx context.Context, userID uint) (incoming, outgoing []models.Friendship, err error) {
	incoming, err = s.friendRepo.GetPendingRequests(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	outgoing, err = s.friendRepo.GetSentRequests(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return incoming, outgoing, nil
}
