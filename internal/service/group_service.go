package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avasquez/tally/internal/models"
	"github.com/avasquez/tally/internal/notify"
	"github.com/avasquez/tally/internal/storage"
)

// GroupService is the group registry: it owns group lifecycle and
// membership.
//
// Unknown IDs yield absent results (nil group, nil error), never faults.
// Business-rule no-ops (duplicate member add, removing a member who is not
// there) return the unchanged group plus an advisory notification.
type GroupService struct {
	repos    *Repositories
	notifier notify.Notifier
}

// NewGroupService creates a new GroupService over the shared repositories.
func NewGroupService(repos *Repositories, notifier notify.Notifier) *GroupService {
	return &GroupService{repos: repos, notifier: notifier}
}

// ListGroupsForUser returns every group whose member list contains the user,
// in storage order.
func (s *GroupService) ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	groups, err := s.repos.Groups.Load(ctx)
	if err != nil {
		slog.Error("ListGroupsForUser failed", "user_id", userID, "error", err)
		return nil, err
	}

	matched := []models.Group{}
	for _, g := range groups {
		if g.Member(userID) != nil {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

// GetGroup retrieves a group by ID. Returns (nil, nil) if no group matches.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	groups, err := s.repos.Groups.Load(ctx)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}

	for i := range groups {
		if groups[i].ID == groupID {
			return &groups[i], nil
		}
	}
	return nil, nil
}

// CreateGroup creates a group with the creator seeded as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, name, description string, creator models.GroupMember) (*models.Group, error) {
	slog.Info("CreateGroup request", "name", name, "creator", creator.UserID)

	now := time.Now().UTC()
	creator.JoinedAt = now
	group := models.Group{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedBy:   creator.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Members:     []models.GroupMember{creator},
	}

	_, err := s.repos.Groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		return append(groups, group), nil
	})
	if err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		s.notifier.Notify(notify.Notification{
			Title:       "Failed to create group",
			Description: "There was an error creating your group",
			Severity:    notify.SeverityError,
		})
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID)
	s.notifier.Notify(notify.Notification{
		Title:       "Group created",
		Description: fmt.Sprintf("%s has been created successfully", name),
		Severity:    notify.SeverityInfo,
	})

	return &group, nil
}

// AddMember adds a member to the group and bumps its UpdatedAt.
//
// Adding a user who is already a member is a policy no-op, not an error: the
// group is returned unchanged with a warning notification. Returns (nil,
// nil) if the group does not exist.
func (s *GroupService) AddMember(ctx context.Context, groupID string, member models.GroupMember) (*models.Group, error) {
	slog.Info("AddMember request", "group_id", groupID, "user_id", member.UserID)

	var result *models.Group
	duplicate := false

	_, err := s.repos.Groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		for i := range groups {
			if groups[i].ID != groupID {
				continue
			}

			if groups[i].Member(member.UserID) != nil {
				duplicate = true
				g := groups[i]
				result = &g
				return nil, storage.ErrNoChange
			}

			member.JoinedAt = time.Now().UTC()
			groups[i].Members = append(groups[i].Members, member)
			groups[i].UpdatedAt = time.Now().UTC()
			g := groups[i]
			result = &g
			return groups, nil
		}
		return nil, storage.ErrNoChange
	})
	if err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "error", err)
		s.notifier.Notify(notify.Notification{
			Title:       "Failed to add member",
			Description: "There was an error adding the member to your group",
			Severity:    notify.SeverityError,
		})
		return nil, err
	}

	if duplicate {
		s.notifier.Notify(notify.Notification{
			Title:       "Member already exists",
			Description: "This user is already a member of the group",
			Severity:    notify.SeverityWarning,
		})
		return result, nil
	}
	if result == nil {
		return nil, nil
	}

	slog.Info("Member added", "group_id", groupID, "user_id", member.UserID)
	s.notifier.Notify(notify.Notification{
		Title:       "Member added",
		Description: fmt.Sprintf("%s has been added to the group", member.DisplayName),
		Severity:    notify.SeverityInfo,
	})

	return result, nil
}

// RemoveMember removes a member from the group. Removing a user who is not a
// member returns the group unchanged (already satisfied, not an error).
//
// If removal empties the member list the group itself is deleted, its
// expenses are cascaded away, and (nil, nil) is returned to signal the group
// no longer exists. Returns (nil, nil) if the group does not exist.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	slog.Info("RemoveMember request", "group_id", groupID, "user_id", userID)

	var result *models.Group
	var removed *models.GroupMember
	emptied := false

	_, err := s.repos.Groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		for i := range groups {
			if groups[i].ID != groupID {
				continue
			}

			m := groups[i].Member(userID)
			if m == nil {
				g := groups[i]
				result = &g
				return nil, storage.ErrNoChange
			}
			rm := *m
			removed = &rm

			members := make([]models.GroupMember, 0, len(groups[i].Members)-1)
			for _, existing := range groups[i].Members {
				if existing.UserID != userID {
					members = append(members, existing)
				}
			}

			// Zero members is not a valid persisted state: delete the group.
			if len(members) == 0 {
				emptied = true
				return append(groups[:i], groups[i+1:]...), nil
			}

			groups[i].Members = members
			groups[i].UpdatedAt = time.Now().UTC()
			g := groups[i]
			result = &g
			return groups, nil
		}
		return nil, storage.ErrNoChange
	})
	if err != nil {
		slog.Error("RemoveMember failed", "group_id", groupID, "error", err)
		s.notifier.Notify(notify.Notification{
			Title:       "Failed to remove member",
			Description: "There was an error removing the member from your group",
			Severity:    notify.SeverityError,
		})
		return nil, err
	}

	if emptied {
		if err := s.cascadeExpenses(ctx, groupID); err != nil {
			slog.Error("RemoveMember cascade failed", "group_id", groupID, "error", err)
			return nil, err
		}
		slog.Info("Group deleted after last member removed", "group_id", groupID)
		s.notifier.Notify(notify.Notification{
			Title:       "Group deleted",
			Description: "Group has been deleted as it has no members",
			Severity:    notify.SeverityInfo,
		})
		return nil, nil
	}
	if removed == nil {
		return result, nil
	}

	slog.Info("Member removed", "group_id", groupID, "user_id", userID)
	s.notifier.Notify(notify.Notification{
		Title:       "Member removed",
		Description: fmt.Sprintf("%s has been removed from the group", removed.DisplayName),
		Severity:    notify.SeverityInfo,
	})

	return result, nil
}

// DeleteGroup removes the group and cascades deletion of every expense that
// references it. Under the single-writer model the cascade is one logical
// unit: no caller observes the group gone while its expenses remain.
// Returns false if the group does not exist.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) (bool, error) {
	slog.Info("DeleteGroup request", "group_id", groupID)

	found := false
	_, err := s.repos.Groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		kept := make([]models.Group, 0, len(groups))
		for _, g := range groups {
			if g.ID == groupID {
				found = true
				continue
			}
			kept = append(kept, g)
		}
		if !found {
			return nil, storage.ErrNoChange
		}
		return kept, nil
	})
	if err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		s.notifier.Notify(notify.Notification{
			Title:       "Failed to delete group",
			Description: "There was an error deleting your group",
			Severity:    notify.SeverityError,
		})
		return false, err
	}
	if !found {
		return false, nil
	}

	if err := s.cascadeExpenses(ctx, groupID); err != nil {
		slog.Error("DeleteGroup cascade failed", "group_id", groupID, "error", err)
		return false, err
	}

	slog.Info("Group deleted", "group_id", groupID)
	s.notifier.Notify(notify.Notification{
		Title:       "Group deleted",
		Description: "Group has been deleted successfully",
		Severity:    notify.SeverityInfo,
	})

	return true, nil
}

// cascadeExpenses removes every expense referencing the group.
func (s *GroupService) cascadeExpenses(ctx context.Context, groupID string) error {
	_, err := s.repos.Expenses.Update(ctx, func(expenses []models.SharedExpense) ([]models.SharedExpense, error) {
		kept := make([]models.SharedExpense, 0, len(expenses))
		changed := false
		for _, e := range expenses {
			if e.GroupID == groupID {
				changed = true
				continue
			}
			kept = append(kept, e)
		}
		if !changed {
			return nil, storage.ErrNoChange
		}
		return kept, nil
	})
	return err
}
