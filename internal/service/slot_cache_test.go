package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestSlotCache(maxTTL time.Duration) *SlotCacheService {
	return NewSlotCacheService(nil, logrus.New(), maxTTL)
}

func TestSlotCacheKey(t *testing.T) {
	s := newTestSlotCache(24 * time.Hour)
	doctorID := uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002")

	key := s.key(doctorID, "2026-09-07")
	assert.Equal(t, "slots:a3bb189e-8bf9-3888-9912-ace4e6543002:2026-09-07", key)
}

func TestCalculateTTLTomorrow(t *testing.T) {
	s := newTestSlotCache(0)
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	ttl := s.calculateTTL(tomorrow)
	assert.Greater(t, ttl, 24*time.Hour)
	assert.LessOrEqual(t, ttl, 48*time.Hour)
}

func TestCalculateTTLCapped(t *testing.T) {
	s := newTestSlotCache(6 * time.Hour)
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	assert.Equal(t, 6*time.Hour, s.calculateTTL(nextWeek))
}

func TestCalculateTTLPastDate(t *testing.T) {
	s := newTestSlotCache(24 * time.Hour)

	assert.Equal(t, time.Minute, s.calculateTTL("2020-01-01"))
}

func TestCalculateTTLUnparsableDate(t *testing.T) {
	s := newTestSlotCache(24 * time.Hour)

	assert.Equal(t, time.Minute, s.calculateTTL("not-a-date"))
}
