package branch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const settingsCacheTTL = 5 * time.Minute

// Service serves branch configuration, caching validated settings in
// Redis for a short TTL. The cache is best-effort: any Redis failure
// falls straight through to the database.
type Service struct {
	repo  *Repository
	redis *redis.Client
}

// NewService creates a new branch service
func NewService(repo *Repository, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

func settingsCacheKey(branchID uuid.UUID) string {
	return fmt.Sprintf("branch:settings:%s", branchID)
}

// Settings returns the validated configuration for a branch
func (s *Service) Settings(ctx context.Context, branchID uuid.UUID) (*Settings, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, settingsCacheKey(branchID)).Bytes(); err == nil {
			var settings Settings
			if err := json.Unmarshal(cached, &settings); err == nil {
				return &settings, nil
			}
		}
	}

	settings, err := s.repo.GetSettings(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		payload, err := json.Marshal(settings)
		if err == nil {
			if err := s.redis.Set(ctx, settingsCacheKey(branchID), payload, settingsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("branch_id", branchID.String()).Msg("Failed to cache branch settings")
			}
		}
	}
	return settings, nil
}

// InvalidateSettings drops the cached settings for a branch
func (s *Service) InvalidateSettings(ctx context.Context, branchID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, settingsCacheKey(branchID)).Err(); err != nil {
		log.Warn().Err(err).Str("branch_id", branchID.String()).Msg("Failed to invalidate settings cache")
	}
}

// LaserRooms returns the active laser rooms of a branch in display order
func (s *Service) LaserRooms(ctx context.Context, branchID uuid.UUID) ([]LaserRoom, error) {
	return s.repo.ListLaserRooms(ctx, branchID)
}

// EventRooms returns the active event rooms of a branch in display order
func (s *Service) EventRooms(ctx context.Context, branchID uuid.UUID) ([]EventRoom, error) {
	return s.repo.ListEventRooms(ctx, branchID)
}
