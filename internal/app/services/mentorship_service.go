package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/helpers"
)

// MentorshipService manages mentorships between users
type MentorshipService interface {
	ListMentorships(ctx context.Context) ([]*models.Mentorship, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Mentorship, error)
	GetMentorship(ctx context.Context, id int64) (*models.Mentorship, error)
	CreateMentorship(ctx context.Context, req *dto.CreateMentorshipRequest) (*models.Mentorship, error)
	ApplyForMentorship(ctx context.Context, menteeID int64, req *dto.ApplyMentorshipRequest) (*models.Mentorship, error)
	UpdateMentorship(ctx context.Context, id int64, req *dto.UpdateMentorshipRequest) (*models.Mentorship, error)
	DeleteMentorship(ctx context.Context, id int64) error
}

type mentorshipServiceImpl struct {
	mentorshipRepo repositories.IMentorshipRepository
	userRepo       repositories.IUserRepository
	stats          StatsInvalidator
	now            clock
	logger         zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	mentorshipRepo repositories.IMentorshipRepository,
	userRepo repositories.IUserRepository,
	stats StatsInvalidator,
	logger zerolog.Logger,
) MentorshipService {
	return &mentorshipServiceImpl{
		mentorshipRepo: mentorshipRepo,
		userRepo:       userRepo,
		stats:          invalidatorOrNoop(stats),
		now:            time.Now,
		logger:         logger,
	}
}

func (s *mentorshipServiceImpl) ListMentorships(ctx context.Context) ([]*models.Mentorship, error) {
	items, err := s.mentorshipRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing mentorships: %w", err)
	}
	return items, nil
}

// ListByUser returns the mentorships where userID is mentor or mentee
func (s *mentorshipServiceImpl) ListByUser(ctx context.Context, userID int64) ([]*models.Mentorship, error) {
	items, err := s.mentorshipRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing mentorships for user: %w", err)
	}
	return items, nil
}

func (s *mentorshipServiceImpl) GetMentorship(ctx context.Context, id int64) (*models.Mentorship, error) {
	return s.mentorshipRepo.GetByID(ctx, id)
}

// CreateMentorship is the admin path. Status defaults to Active, an empty
// status included, and the start date to today.
func (s *mentorshipServiceImpl) CreateMentorship(ctx context.Context, req *dto.CreateMentorshipRequest) (*models.Mentorship, error) {
	status := models.MentorshipActive
	if v := trimmed(req.Status); v != nil && *v != "" {
		status = models.MentorshipStatus(*v)
		if !status.Valid() {
			return nil, apperrors.ErrInvalidMentorshipStatus
		}
	}

	m := &models.Mentorship{
		MentorID:    req.MentorID,
		MenteeID:    req.MenteeID,
		Title:       trimmed(req.Title),
		Description: req.Description,
		Status:      status,
	}
	if err := s.applyDates(m, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	return m, s.insert(ctx, m)
}

// ApplyForMentorship is the mentee path; the request always starts Pending
func (s *mentorshipServiceImpl) ApplyForMentorship(ctx context.Context, menteeID int64, req *dto.ApplyMentorshipRequest) (*models.Mentorship, error) {
	m := &models.Mentorship{
		MentorID:    req.MentorID,
		MenteeID:    menteeID,
		Title:       trimmed(req.Title),
		Description: req.Description,
		Status:      models.MentorshipPending,
	}
	if err := s.applyDates(m, req.StartDate, nil); err != nil {
		return nil, err
	}

	return m, s.insert(ctx, m)
}

func (s *mentorshipServiceImpl) applyDates(m *models.Mentorship, start, end *string) error {
	m.StartDate = helpers.Today(s.now())
	if start != nil && *start != "" {
		d, err := helpers.ParseDate(*start)
		if err != nil {
			return apperrors.NewValidationError("start_date: " + err.Error())
		}
		m.StartDate = d
	}
	if end != nil && *end != "" {
		d, err := helpers.ParseDate(*end)
		if err != nil {
			return apperrors.NewValidationError("end_date: " + err.Error())
		}
		m.EndDate = &d
	}
	return checkDates(m)
}

func checkDates(m *models.Mentorship) error {
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return apperrors.NewValidationError("end_date cannot be before start_date")
	}
	return nil
}

func (s *mentorshipServiceImpl) insert(ctx context.Context, m *models.Mentorship) error {
	if err := s.checkParties(ctx, m.MentorID, m.MenteeID); err != nil {
		return err
	}
	if err := s.mentorshipRepo.Create(ctx, m); err != nil {
		return err
	}

	s.logger.Info().
		Int64("mentorshipID", m.ID).
		Int64("mentorID", m.MentorID).
		Int64("menteeID", m.MenteeID).
		Str("status", string(m.Status)).
		Msg("Mentorship created")
	s.stats.Invalidate(ctx)
	return nil
}

// checkParties enforces mentor != mentee and that both users exist
func (s *mentorshipServiceImpl) checkParties(ctx context.Context, mentorID, menteeID int64) error {
	if mentorID <= 0 || menteeID <= 0 {
		return apperrors.NewValidationError("mentor_id and mentee_id are required")
	}
	if mentorID == menteeID {
		return apperrors.ErrSelfMentorship
	}
	for _, id := range []int64{mentorID, menteeID} {
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMentorship merges the supplied fields into the stored row. The status
// allowlist is checked before anything is read or written.
func (s *mentorshipServiceImpl) UpdateMentorship(ctx context.Context, id int64, req *dto.UpdateMentorshipRequest) (*models.Mentorship, error) {
	patch, err := buildMentorshipPatch(req)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	current, err := s.mentorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*current)
	if err := checkDates(&merged); err != nil {
		return nil, err
	}
	if merged.MentorID == merged.MenteeID {
		return nil, apperrors.ErrSelfMentorship
	}
	if patch.MentorID != nil || patch.MenteeID != nil {
		if err := s.checkParties(ctx, merged.MentorID, merged.MenteeID); err != nil {
			return nil, err
		}
	}

	if err := s.mentorshipRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("mentorshipID", id).Str("status", string(merged.Status)).Msg("Mentorship updated")
	s.stats.Invalidate(ctx)
	return &merged, nil
}

func buildMentorshipPatch(req *dto.UpdateMentorshipRequest) (models.MentorshipPatch, error) {
	var patch models.MentorshipPatch
	if req == nil {
		return patch, nil
	}

	if req.Status != nil {
		status := models.MentorshipStatus(*req.Status)
		if !status.Valid() {
			return patch, apperrors.ErrInvalidMentorshipStatus
		}
		patch.Status = &status
	}
	if req.MentorID != nil {
		if *req.MentorID <= 0 {
			return patch, apperrors.NewValidationError("mentor_id must be positive")
		}
		patch.MentorID = req.MentorID
	}
	if req.MenteeID != nil {
		if *req.MenteeID <= 0 {
			return patch, apperrors.NewValidationError("mentee_id must be positive")
		}
		patch.MenteeID = req.MenteeID
	}
	if req.StartDate != nil {
		d, err := helpers.ParseDate(*req.StartDate)
		if err != nil {
			return patch, apperrors.NewValidationError("start_date: " + err.Error())
		}
		patch.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := helpers.ParseDate(*req.EndDate)
		if err != nil {
			return patch, apperrors.NewValidationError("end_date: " + err.Error())
		}
		patch.EndDate = &d
	}
	patch.Title = trimmed(req.Title)
	patch.Description = req.Description
	return patch, nil
}

func (s *mentorshipServiceImpl) DeleteMentorship(ctx context.Context, id int64) error {
	if err := s.mentorshipRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("mentorshipID", id).Msg("Mentorship deleted")
	s.stats.Invalidate(ctx)
	return nil
}
