package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
)

// GroupService manages groups
type GroupService interface {
	ListGroups(ctx context.Context) ([]*models.Group, error)
	GetGroup(ctx context.Context, id int64) (*models.Group, error)
	CreateGroup(ctx context.Context, creatorID int64, req *dto.CreateGroupRequest) (*models.Group, error)
	UpdateGroup(ctx context.Context, id int64, req *dto.UpdateGroupRequest) error
	DeleteGroup(ctx context.Context, id int64) error
}

type groupServiceImpl struct {
	groupRepo repositories.IGroupRepository
	stats     StatsInvalidator
	logger    zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repositories.IGroupRepository, stats StatsInvalidator, logger zerolog.Logger) GroupService {
	return &groupServiceImpl{
		groupRepo: groupRepo,
		stats:     invalidatorOrNoop(stats),
		logger:    logger,
	}
}

func (s *groupServiceImpl) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing groups: %w", err)
	}
	return groups, nil
}

func (s *groupServiceImpl) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

// CreateGroup records creatorID, taken from the caller's token, as the creator
func (s *groupServiceImpl) CreateGroup(ctx context.Context, creatorID int64, req *dto.CreateGroupRequest) (*models.Group, error) {
	name := trimmed(&req.GroupName)
	if *name == "" {
		return nil, apperrors.NewValidationError("group_name is required")
	}

	group := &models.Group{
		GroupName:   *name,
		Description: req.Description,
		CreatedBy:   &creatorID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("groupID", group.ID).Int64("createdBy", creatorID).Msg("Group created")
	s.stats.Invalidate(ctx)
	return group, nil
}

func (s *groupServiceImpl) UpdateGroup(ctx context.Context, id int64, req *dto.UpdateGroupRequest) error {
	name := trimmed(req.GroupName)
	if name != nil && *name == "" {
		return apperrors.NewValidationError("group_name cannot be empty")
	}
	if name == nil && req.Description == nil {
		return apperrors.NewValidationError("no fields to update")
	}

	if err := s.groupRepo.Update(ctx, id, name, req.Description); err != nil {
		return err
	}
	s.logger.Info().Int64("groupID", id).Msg("Group updated")
	return nil
}

// DeleteGroup removes the group; memberships go with it
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, id int64) error {
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("groupID", id).Msg("Group deleted")
	s.stats.Invalidate(ctx)
	return nil
}

// MemberService manages group memberships
type MemberService interface {
	ListMembers(ctx context.Context, groupID *int64) ([]*models.GroupMember, error)
	GetMember(ctx context.Context, id int64) (*models.GroupMember, error)
	AddMember(ctx context.Context, req *dto.AddMemberRequest) (*models.GroupMember, error)
	UpdateMemberRole(ctx context.Context, id int64, role *string) error
	RemoveMember(ctx context.Context, id int64) error
}

type memberServiceImpl struct {
	memberRepo repositories.IGroupMemberRepository
	logger     zerolog.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repositories.IGroupMemberRepository, logger zerolog.Logger) MemberService {
	return &memberServiceImpl{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (s *memberServiceImpl) ListMembers(ctx context.Context, groupID *int64) ([]*models.GroupMember, error) {
	members, err := s.memberRepo.List(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error listing group members: %w", err)
	}
	return members, nil
}

func (s *memberServiceImpl) GetMember(ctx context.Context, id int64) (*models.GroupMember, error) {
	return s.memberRepo.GetByID(ctx, id)
}

// AddMember adds a user to a group. Unknown group or user and duplicate
// membership are reported by the database constraints.
func (s *memberServiceImpl) AddMember(ctx context.Context, req *dto.AddMemberRequest) (*models.GroupMember, error) {
	role, err := memberRole(req.Role)
	if err != nil {
		return nil, err
	}

	member := &models.GroupMember{
		GroupID: req.GroupID,
		UserID:  req.UserID,
		Role:    role,
	}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("groupID", member.GroupID).
		Int64("userID", member.UserID).
		Str("role", string(role)).
		Msg("Member added")
	return member, nil
}

// UpdateMemberRole sets the role; a missing role resets it to Member
func (s *memberServiceImpl) UpdateMemberRole(ctx context.Context, id int64, role *string) error {
	r, err := memberRole(role)
	if err != nil {
		return err
	}
	if err := s.memberRepo.UpdateRole(ctx, id, r); err != nil {
		return err
	}
	s.logger.Info().Int64("memberID", id).Str("role", string(r)).Msg("Member role updated")
	return nil
}

func (s *memberServiceImpl) RemoveMember(ctx context.Context, id int64) error {
	if err := s.memberRepo.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("memberID", id).Msg("Member removed")
	return nil
}

func memberRole(role *string) (models.MemberRole, error) {
	if role == nil || *role == "" {
		return models.MemberRoleMember, nil
	}
	r := models.MemberRole(*role)
	if !r.Valid() {
		return "", apperrors.NewValidationError("invalid member role")
	}
	return r, nil
}
