package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisSlotsKeyPrefix prefixes cached free-slot lists, keyed by doctor
// and calendar date: slots:<doctor_id>:<yyyy-mm-dd>
const RedisSlotsKeyPrefix = "slots:"

// SlotCacheService caches computed free-slot lists in Redis.
//
// The cache is best effort: a miss or a Redis failure degrades to
// recomputing the slots from PostgreSQL. Entries expire on their own at
// the end of the cached day, and are invalidated eagerly whenever a
// booking or an availability change would make them stale.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	maxTTL      time.Duration
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger, maxTTL time.Duration) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
		maxTTL:      maxTTL,
	}
}

// Get returns the cached slot list for a doctor and date, or false on a
// miss. A corrupt entry is dropped and treated as a miss.
func (s *SlotCacheService) Get(ctx context.Context, doctorID uuid.UUID, date string) ([]string, bool) {
	key := s.key(doctorID, date)

	raw, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read slot cache %s: %+v", key, err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		s.log.Warnf("Corrupt slot cache entry %s, dropping: %+v", key, err)
		s.redisClient.Del(ctx, key)
		return nil, false
	}

	return slots, true
}

// Set stores a slot list with a TTL that ends when the cached day does,
// so stale entries cannot outlive the date they describe.
func (s *SlotCacheService) Set(ctx context.Context, doctorID uuid.UUID, date string, slots []string) error {
	key := s.key(doctorID, date)

	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("marshal slots for %s: %w", key, err)
	}

	ttl := s.calculateTTL(date)
	if err := s.redisClient.Set(ctx, key, raw, ttl).Err(); err != nil {
		s.log.Warnf("Failed to write slot cache %s: %+v", key, err)
		return fmt.Errorf("write slot cache %s: %w", key, err)
	}

	s.log.Debugf("Cached %d slots for %s (TTL=%v)", len(slots), key, ttl)
	return nil
}

// Invalidate drops the cached slots for a single doctor and date.
// Called after a booking or a cancellation touches that day.
func (s *SlotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID, date string) {
	key := s.key(doctorID, date)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to invalidate slot cache %s: %+v", key, err)
	}
}

// InvalidateDoctor drops every cached date for a doctor. Called when the
// doctor's availability windows change, since that affects all days.
func (s *SlotCacheService) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	pattern := fmt.Sprintf("%s%s:*", RedisSlotsKeyPrefix, doctorID.String())

	iter := s.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warnf("Failed to scan slot cache keys for doctor %s: %+v", doctorID, err)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to invalidate %d slot cache keys for doctor %s: %+v", len(keys), doctorID, err)
		return
	}

	s.log.Debugf("Invalidated %d cached dates for doctor %s", len(keys), doctorID)
}

func (s *SlotCacheService) key(doctorID uuid.UUID, date string) string {
	return fmt.Sprintf("%s%s:%s", RedisSlotsKeyPrefix, doctorID.String(), date)
}

// calculateTTL returns time until the end of the cached date, capped so
// a far-future date does not pin an entry for weeks.
func (s *SlotCacheService) calculateTTL(date string) time.Duration {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Minute
	}

	ttl := time.Until(day.AddDate(0, 0, 1))
	if ttl <= 0 {
		return time.Minute
	}
	if s.maxTTL > 0 && ttl > s.maxTTL {
		return s.maxTTL
	}

	return ttl
}
