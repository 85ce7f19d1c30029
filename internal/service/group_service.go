package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// GroupService manages expense-sharing groups.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create makes a new group owned by creatorID. The creator is always a member.
func (s *GroupService) Create(ctx context.Context, creatorID, name string, memberIDs []string) (*models.Group, error) {
	group := &models.Group{
		Name:      name,
		CreatedBy: creatorID,
		MemberIDs: ensureMember(memberIDs, creatorID),
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("group created", "group_id", group.ID, "name", name, "members", len(group.MemberIDs))
	return group, nil
}

// Get retrieves a group the caller belongs to.
func (s *GroupService) Get(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}
	return group, nil
}

// ListForUser retrieves every group the user belongs to.
func (s *GroupService) ListForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsForUser(ctx, userID)
}

// AddMembers adds users to a group the caller belongs to.
func (s *GroupService) AddMembers(ctx context.Context, userID, groupID string, memberIDs []string) (*models.Group, error) {
	group, err := s.Get(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddGroupMembers(ctx, groupID, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to add members: %w", err)
	}

	slog.Info("group members added", "group_id", group.ID, "added", len(memberIDs))
	return s.store.GetGroup(ctx, groupID)
}

func ensureMember(memberIDs []string, userID string) []string {
	for _, id := range memberIDs {
		if id == userID {
			return memberIDs
		}
	}
	return append(memberIDs, userID)
}
