// Package store resolves permission sets from memory or Redis.
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mediaconsole/internal/permissions"
	id "mediaconsole/pkg/domain"
	"mediaconsole/pkg/platform/sentinel"
)

// Redis reads grants from one Redis set per member:
//
//	permissions:{partnerID}:{userID} -> {CONTENT_INGEST_CLIP_MEDIA, ...}
type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func Key(partnerID id.PartnerID, userID id.UserID) string {
	return fmt.Sprintf("permissions:%s:%s", partnerID, userID)
}

func (s *Redis) Grant(ctx context.Context, partnerID id.PartnerID, userID id.UserID, ps ...permissions.Permission) error {
	if len(ps) == 0 {
		return nil
	}
	members := make([]any, len(ps))
	for i, p := range ps {
		members[i] = string(p)
	}
	if err := s.client.SAdd(ctx, Key(partnerID, userID), members...).Err(); err != nil {
		return fmt.Errorf("grant permissions: %w", err)
	}
	return nil
}

func (s *Redis) Revoke(ctx context.Context, partnerID id.PartnerID, userID id.UserID, ps ...permissions.Permission) error {
	if len(ps) == 0 {
		return nil
	}
	members := make([]any, len(ps))
	for i, p := range ps {
		members[i] = string(p)
	}
	if err := s.client.SRem(ctx, Key(partnerID, userID), members...).Err(); err != nil {
		return fmt.Errorf("revoke permissions: %w", err)
	}
	return nil
}

// Permissions returns the member's set. A missing key is an empty set.
func (s *Redis) Permissions(ctx context.Context, partnerID id.PartnerID, userID id.UserID) (permissions.Set, error) {
	raw, err := s.client.SMembers(ctx, Key(partnerID, userID)).Result()
	if err != nil {
		return permissions.Set{}, fmt.Errorf("read permissions: %w: %w", sentinel.ErrUnavailable, err)
	}
	return permissions.Parse(raw), nil
}
