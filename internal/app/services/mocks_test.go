package services

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/auth"
)

// MockUserRepository is a mock implementation of IUserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]*models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, patch models.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastActive(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByRole(ctx context.Context, role models.RoleType) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

// MockMentorshipRepository is a mock implementation of IMentorshipRepository.
type MockMentorshipRepository struct {
	mock.Mock
}

func (m *MockMentorshipRepository) List(ctx context.Context) ([]*models.Mentorship, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentorship), args.Error(1)
}

func (m *MockMentorshipRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Mentorship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentorship), args.Error(1)
}

func (m *MockMentorshipRepository) GetByID(ctx context.Context, id int64) (*models.Mentorship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentorship), args.Error(1)
}

func (m *MockMentorshipRepository) Create(ctx context.Context, ms *models.Mentorship) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMentorshipRepository) Update(ctx context.Context, ms *models.Mentorship) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMentorshipRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGroupRepository is a mock implementation of IGroupRepository.
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Group), args.Error(1)
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) Create(ctx context.Context, g *models.Group) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepository) Update(ctx context.Context, id int64, groupName, description *string) error {
	args := m.Called(ctx, id, groupName, description)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGroupMemberRepository is a mock implementation of IGroupMemberRepository.
type MockGroupMemberRepository struct {
	mock.Mock
}

func (m *MockGroupMemberRepository) List(ctx context.Context, groupID *int64) ([]*models.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) GetByID(ctx context.Context, id int64) (*models.GroupMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) Add(ctx context.Context, gm *models.GroupMember) error {
	args := m.Called(ctx, gm)
	return args.Error(0)
}

func (m *MockGroupMemberRepository) UpdateRole(ctx context.Context, id int64, role models.MemberRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockGroupMemberRepository) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockForumRepository is a mock implementation of IForumRepository.
type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) ListThreads(ctx context.Context) ([]*models.ForumThread, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ForumThread), args.Error(1)
}

func (m *MockForumRepository) GetThread(ctx context.Context, id int64) (*models.ForumThread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumThread), args.Error(1)
}

func (m *MockForumRepository) CreateThread(ctx context.Context, t *models.ForumThread) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockForumRepository) DeleteThread(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockForumRepository) ListReplies(ctx context.Context, threadID *int64) ([]*models.ForumReply, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ForumReply), args.Error(1)
}

func (m *MockForumRepository) GetReply(ctx context.Context, id int64) (*models.ForumReply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumReply), args.Error(1)
}

func (m *MockForumRepository) CreateReply(ctx context.Context, r *models.ForumReply) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockForumRepository) DeleteReply(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatsRepository is a mock implementation of IStatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Counts(ctx context.Context) (repositories.TableCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(repositories.TableCounts), args.Error(1)
}

// MockFileStorage is a mock implementation of filestorage.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) SaveFileWithPath(fh *multipart.FileHeader, subPath string) (string, error) {
	args := m.Called(fh, subPath)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteFile(fileURL string) error {
	args := m.Called(fileURL)
	return args.Error(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateAccessToken(user *models.User) (*auth.AccessToken, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AccessToken), args.Error(1)
}

// MockTokenRevoker is a mock implementation of TokenRevoker.
type MockTokenRevoker struct {
	mock.Mock
}

func (m *MockTokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

// MockInvalidator counts stats invalidations. A nil *MockInvalidator ignores them.
type MockInvalidator struct {
	calls int
}

func (m *MockInvalidator) Invalidate(context.Context) {
	if m != nil {
		m.calls++
	}
}

// memCache is an in-memory StatsCache that round-trips values through JSON
// the way the Redis client does.
type memCache struct {
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst interface{}) bool {
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) {
	raw, err := json.Marshal(value)
	if err == nil {
		c.data[key] = raw
	}
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}
