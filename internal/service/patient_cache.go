package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"patient-records-service/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis key prefix for cached patient responses
const patientCacheKeyPrefix = "patient:"

// PatientCache is a read-through cache of shaped patient responses. It is
// strictly advisory: every failure degrades to a database read and is only
// logged, never surfaced.
type PatientCache interface {
	Get(ctx context.Context, id uuid.UUID) *dto.PatientResponse
	Set(ctx context.Context, patient *dto.PatientResponse)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type patientCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewPatientCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) PatientCache {
	return &patientCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func (c *patientCache) Get(ctx context.Context, id uuid.UUID) *dto.PatientResponse {
	data, err := c.redisClient.Get(ctx, patientCacheKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read patient cache: %+v", err)
		}
		return nil
	}

	var patient dto.PatientResponse
	if err := json.Unmarshal(data, &patient); err != nil {
		c.log.Warnf("Failed to decode cached patient: %+v", err)
		return nil
	}
	return &patient
}

func (c *patientCache) Set(ctx context.Context, patient *dto.PatientResponse) {
	data, err := json.Marshal(patient)
	if err != nil {
		c.log.Warnf("Failed to encode patient for cache: %+v", err)
		return
	}

	if err := c.redisClient.Set(ctx, patientCacheKeyPrefix+patient.ID.String(), data, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write patient cache: %+v", err)
	}
}

func (c *patientCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.redisClient.Del(ctx, patientCacheKeyPrefix+id.String()).Err(); err != nil {
		c.log.Warnf("Failed to invalidate patient cache: %+v", err)
	}
}
