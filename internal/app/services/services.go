package services

import (
	"context"
	"strings"
	"time"

	"github.com/yigit/mentorhub/internal/pkg/websocket"
)

// Services defined in this package:
// - UserService: user CRUD and profile images
// - AuthService: login, logout and the current identity
// - MentorshipService: mentorship lifecycle and the status allowlist
// - GroupService / MemberService: groups and their memberships
// - ForumService: threads and replies
// - StatsService: cached dashboard aggregations

// StatsInvalidator drops cached aggregations after a write changes the data
// they were computed from.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

func invalidatorOrNoop(inv StatsInvalidator) StatsInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}

// ForumEventPublisher pushes forum changes to live subscribers
type ForumEventPublisher interface {
	Publish(event websocket.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(websocket.Event) {}

func publisherOrNoop(p ForumEventPublisher) ForumEventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

// clock is swapped in tests
type clock func() time.Time

// normalizeEmail lowercases so stored emails agree with the case-insensitive unique index
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
