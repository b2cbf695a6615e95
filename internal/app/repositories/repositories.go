package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/mentorhub/internal/app/models"
)

// psql builds every query with PostgreSQL $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// UserFilter holds the optional predicates for listing users; all are ANDed
type UserFilter struct {
	Role   *models.RoleType
	Status *models.UserStatus
	Search *string
}

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id int64, patch models.UserPatch) error
	Delete(ctx context.Context, id int64) error
	TouchLastActive(ctx context.Context, id int64) error
	ExistsByRole(ctx context.Context, role models.RoleType) (bool, error)
}

// IMentorshipRepository defines mentorship persistence
type IMentorshipRepository interface {
	List(ctx context.Context) ([]*models.Mentorship, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Mentorship, error)
	GetByID(ctx context.Context, id int64) (*models.Mentorship, error)
	Create(ctx context.Context, m *models.Mentorship) error
	Update(ctx context.Context, m *models.Mentorship) error
	Delete(ctx context.Context, id int64) error
}

// IGroupRepository defines group persistence
type IGroupRepository interface {
	List(ctx context.Context) ([]*models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	Create(ctx context.Context, g *models.Group) error
	Update(ctx context.Context, id int64, groupName, description *string) error
	Delete(ctx context.Context, id int64) error
}

// IGroupMemberRepository defines group membership persistence
type IGroupMemberRepository interface {
	List(ctx context.Context, groupID *int64) ([]*models.GroupMember, error)
	GetByID(ctx context.Context, id int64) (*models.GroupMember, error)
	Add(ctx context.Context, m *models.GroupMember) error
	UpdateRole(ctx context.Context, id int64, role models.MemberRole) error
	Remove(ctx context.Context, id int64) error
}

// IForumRepository defines forum thread and reply persistence
type IForumRepository interface {
	ListThreads(ctx context.Context) ([]*models.ForumThread, error)
	GetThread(ctx context.Context, id int64) (*models.ForumThread, error)
	CreateThread(ctx context.Context, t *models.ForumThread) error
	DeleteThread(ctx context.Context, id int64) error
	ListReplies(ctx context.Context, threadID *int64) ([]*models.ForumReply, error)
	GetReply(ctx context.Context, id int64) (*models.ForumReply, error)
	CreateReply(ctx context.Context, r *models.ForumReply) error
	DeleteReply(ctx context.Context, id int64) error
}

// TableCounts holds row counts the stats overview needs besides users and mentorships
type TableCounts struct {
	Groups  int
	Threads int
	Replies int
}

// IStatsRepository reads the raw rows the stats aggregations run over
type IStatsRepository interface {
	Counts(ctx context.Context) (TableCounts, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	MentorshipRepository  *MentorshipRepository
	GroupRepository       *GroupRepository
	GroupMemberRepository *GroupMemberRepository
	ForumRepository       *ForumRepository
	StatsRepository       *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		MentorshipRepository:  NewMentorshipRepository(db),
		GroupRepository:       NewGroupRepository(db),
		GroupMemberRepository: NewGroupMemberRepository(db),
		ForumRepository:       NewForumRepository(db),
		StatsRepository:       NewStatsRepository(db),
	}
}
