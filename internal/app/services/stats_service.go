package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/helpers"
)

const (
	statsOverviewKey   = "stats:overview"
	statsTopMentorsKey = "stats:top-mentors"
	statsActivityKey   = "stats:activity"

	DefaultTopMentorsLimit = 5
	MaxTopMentorsLimit     = 50
	DefaultActivityLimit   = 5
	MaxActivityLimit       = 50
)

// StatsCache is the subset of the Redis cache the stats use. Misses and
// Redis failures look the same.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, keys ...string) error
}

// StatsService serves the dashboard aggregations
type StatsService interface {
	StatsInvalidator
	Overview(ctx context.Context) (*dto.StatsOverview, error)
	TopMentors(ctx context.Context, limit int) ([]dto.TopMentor, error)
	RecentActivity(ctx context.Context, userID *int64, limit int) ([]dto.ActivityItem, error)
}

type statsServiceImpl struct {
	userRepo       repositories.IUserRepository
	mentorshipRepo repositories.IMentorshipRepository
	statsRepo      repositories.IStatsRepository
	cache          StatsCache
	ttl            time.Duration
	now            clock
	logger         zerolog.Logger
}

// NewStatsService creates a new StatsService. A nil cache disables caching.
func NewStatsService(
	userRepo repositories.IUserRepository,
	mentorshipRepo repositories.IMentorshipRepository,
	statsRepo repositories.IStatsRepository,
	cache StatsCache,
	ttl time.Duration,
	logger zerolog.Logger,
) StatsService {
	return &statsServiceImpl{
		userRepo:       userRepo,
		mentorshipRepo: mentorshipRepo,
		statsRepo:      statsRepo,
		cache:          cache,
		ttl:            ttl,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *statsServiceImpl) Overview(ctx context.Context) (*dto.StatsOverview, error) {
	var cached dto.StatsOverview
	if s.cacheGet(ctx, statsOverviewKey, &cached) {
		return &cached, nil
	}

	users, err := s.userRepo.List(ctx, repositories.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("error loading users: %w", err)
	}
	mentorships, err := s.mentorshipRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading mentorships: %w", err)
	}
	counts, err := s.statsRepo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading counts: %w", err)
	}

	overview := BuildOverview(users, mentorships, counts)
	s.cacheSet(ctx, statsOverviewKey, overview)
	return &overview, nil
}

// TopMentors caches the full ranking and slices it per request
func (s *statsServiceImpl) TopMentors(ctx context.Context, limit int) ([]dto.TopMentor, error) {
	limit = helpers.ClampLimit(limit, DefaultTopMentorsLimit, MaxTopMentorsLimit)

	var ranking []dto.TopMentor
	if !s.cacheGet(ctx, statsTopMentorsKey, &ranking) {
		users, err := s.userRepo.List(ctx, repositories.UserFilter{})
		if err != nil {
			return nil, fmt.Errorf("error loading users: %w", err)
		}
		mentorships, err := s.mentorshipRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("error loading mentorships: %w", err)
		}
		ranking = RankMentors(users, mentorships)
		s.cacheSet(ctx, statsTopMentorsKey, ranking)
	}

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

// RecentActivity caches the sorted mentorship rows; the user filter and the
// time-ago labels are applied per request since they depend on the caller and the clock.
func (s *statsServiceImpl) RecentActivity(ctx context.Context, userID *int64, limit int) ([]dto.ActivityItem, error) {
	limit = helpers.ClampLimit(limit, DefaultActivityLimit, MaxActivityLimit)

	var rows []*models.Mentorship
	if !s.cacheGet(ctx, statsActivityKey, &rows) {
		var err error
		rows, err = s.mentorshipRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("error loading mentorships: %w", err)
		}
		sortByRecency(rows)
		s.cacheSet(ctx, statsActivityKey, rows)
	}

	return ActivityFeed(rows, userID, s.now(), limit), nil
}

// Invalidate drops every cached aggregation
func (s *statsServiceImpl) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsOverviewKey, statsTopMentorsKey, statsActivityKey); err != nil {
		s.logger.Warn().Err(err).Msg("Could not invalidate cached stats")
	}
}

func (s *statsServiceImpl) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.GetJSON(ctx, key, dst)
}

func (s *statsServiceImpl) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	s.cache.SetJSON(ctx, key, value, s.ttl)
}

// BuildOverview totals users by role and mentorships by status. Every known
// role and status is present in the maps, zero or not.
func BuildOverview(users []*models.User, mentorships []*models.Mentorship, counts repositories.TableCounts) dto.StatsOverview {
	overview := dto.StatsOverview{
		TotalUsers:          len(users),
		UsersByRole:         make(map[string]int, len(models.RoleTypes)),
		TotalMentorships:    len(mentorships),
		MentorshipsByStatus: make(map[string]int, len(models.MentorshipStatuses)),
		TotalGroups:         counts.Groups,
		TotalThreads:        counts.Threads,
		TotalReplies:        counts.Replies,
	}
	for _, r := range models.RoleTypes {
		overview.UsersByRole[string(r)] = 0
	}
	for _, st := range models.MentorshipStatuses {
		overview.MentorshipsByStatus[string(st)] = 0
	}
	for _, u := range users {
		overview.UsersByRole[string(u.Role)]++
	}
	for _, m := range mentorships {
		overview.MentorshipsByStatus[string(m.Status)]++
	}
	return overview
}

// RankMentors orders mentors by their Active and Completed mentorships,
// most first, ties to the lower user id. Mentors with none are left out.
func RankMentors(users []*models.User, mentorships []*models.Mentorship) []dto.TopMentor {
	counts := make(map[int64]int)
	for _, m := range mentorships {
		if m.Status == models.MentorshipActive || m.Status == models.MentorshipCompleted {
			counts[m.MentorID]++
		}
	}

	ranking := make([]dto.TopMentor, 0, len(counts))
	for _, u := range users {
		n := counts[u.ID]
		if n == 0 {
			continue
		}
		ranking = append(ranking, dto.TopMentor{
			UserID:          u.ID,
			Name:            u.FullName(),
			Username:        u.Username,
			JobTitle:        u.JobTitle,
			ProfileImage:    u.ProfileImage,
			MentorshipCount: n,
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].MentorshipCount != ranking[j].MentorshipCount {
			return ranking[i].MentorshipCount > ranking[j].MentorshipCount
		}
		return ranking[i].UserID < ranking[j].UserID
	})
	return ranking
}

// ActivityAction labels a mentorship status for the activity feed
func ActivityAction(status models.MentorshipStatus) string {
	switch status {
	case models.MentorshipCompleted:
		return "Mentorship completed"
	case models.MentorshipActive:
		return "Mentorship ongoing"
	case models.MentorshipPending:
		return "Mentorship request sent"
	case models.MentorshipRejected:
		return "Mentorship request rejected"
	default:
		return "Mentorship updated"
	}
}

// ActivityFeed returns up to limit items, newest first, optionally only
// those involving userID.
func ActivityFeed(mentorships []*models.Mentorship, userID *int64, now time.Time, limit int) []dto.ActivityItem {
	rows := make([]*models.Mentorship, 0, len(mentorships))
	for _, m := range mentorships {
		if userID != nil && !m.Involves(*userID) {
			continue
		}
		rows = append(rows, m)
	}
	sortByRecency(rows)

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	items := make([]dto.ActivityItem, 0, len(rows))
	for _, m := range rows {
		items = append(items, dto.ActivityItem{
			MentorshipID: m.ID,
			MentorID:     m.MentorID,
			MenteeID:     m.MenteeID,
			Status:       string(m.Status),
			Action:       ActivityAction(m.Status),
			TimeAgo:      helpers.TimeAgo(m.UpdatedAt, now),
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return items
}

// sortByRecency orders by updated_at descending, ties to the higher id
func sortByRecency(rows []*models.Mentorship) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
			return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
}
