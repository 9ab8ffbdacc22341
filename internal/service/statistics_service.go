package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"risk_assessment_backend/internal/engine"
	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	assessmentStatsKey = "stats:assessments"
	adminStatsKey      = "stats:admin"
	recentWindowDays   = 30
)

var ErrCacheMiss = errors.New("cache miss")

// StatsCache 统计结果缓存
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisStatsCache struct {
	Client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{Client: client}
}

func (c *RedisStatsCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisStatsCache) Delete(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// AssessmentStatistics 评估汇总，按风险等级的计数总是包含全部六个等级（含 EXTREMO）
type AssessmentStatistics struct {
	Total       int64                      `json:"total"`
	ByRiskLevel map[engine.RiskLevel]int64 `json:"byRiskLevel"`
	ByBranch    BranchStatistics           `json:"byBranch"`
	Last30Days  int64                      `json:"last30Days"`
}

type BranchStatistics struct {
	IdeationDetail int64 `json:"ideationDetail"`
	DeathWishOnly  int64 `json:"deathWishOnly"`
	Behavior       int64 `json:"behavior"`
}

// AdminStatistics 管理后台首页数据
type AdminStatistics struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalPsychologists int64 `json:"totalPsychologists"`
	TotalStudents      int64 `json:"totalStudents"`
	TotalAssessments   int64 `json:"totalAssessments"`
}

type StatisticsService struct {
	Assessments AssessmentStore
	Users       UserStore
	Students    StudentStore
	Cache       StatsCache

	ttl atomic.Int64
	now func() time.Time
}

func NewStatisticsService(assessments AssessmentStore, users UserStore, students StudentStore, cache StatsCache, ttl time.Duration) *StatisticsService {
	s := &StatisticsService{
		Assessments: assessments,
		Users:       users,
		Students:    students,
		Cache:       cache,
		now:         time.Now,
	}
	s.SetCacheTTL(ttl)
	return s
}

// SetCacheTTL 配置热更新时调用，0 表示不缓存
func (s *StatisticsService) SetCacheTTL(ttl time.Duration) {
	s.ttl.Store(int64(ttl))
}

func (s *StatisticsService) CacheTTL() time.Duration {
	return time.Duration(s.ttl.Load())
}

func (s *StatisticsService) AssessmentStatistics(ctx context.Context) (*AssessmentStatistics, error) {
	var stats AssessmentStatistics
	if s.cached(ctx, assessmentStatsKey, &stats) {
		return &stats, nil
	}

	total, err := s.Assessments.Count(ctx)
	if err != nil {
		return nil, err
	}
	byLevel, err := s.Assessments.CountByRiskLevel(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := s.Assessments.CountByBranch(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Assessments.CountSince(ctx, s.now().AddDate(0, 0, -recentWindowDays))
	if err != nil {
		return nil, err
	}

	stats = AssessmentStatistics{
		Total:       total,
		ByRiskLevel: make(map[engine.RiskLevel]int64, len(engine.RiskLevels())),
		ByBranch: BranchStatistics{
			IdeationDetail: branches.IdeationDetail,
			DeathWishOnly:  branches.DeathWishOnly,
			Behavior:       branches.Behavior,
		},
		Last30Days: recent,
	}
	for _, level := range engine.RiskLevels() {
		stats.ByRiskLevel[level] = byLevel[string(level)]
	}

	s.store(ctx, assessmentStatsKey, stats)
	return &stats, nil
}

func (s *StatisticsService) AdminStatistics(ctx context.Context) (*AdminStatistics, error) {
	var stats AdminStatistics
	if s.cached(ctx, adminStatsKey, &stats) {
		return &stats, nil
	}

	users, err := s.Users.CountActive(ctx, "")
	if err != nil {
		return nil, err
	}
	psychologists, err := s.Users.CountActive(ctx, model.Psychologist)
	if err != nil {
		return nil, err
	}
	students, err := s.Students.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	assessments, err := s.Assessments.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats = AdminStatistics{
		TotalUsers:         users + students,
		TotalPsychologists: psychologists,
		TotalStudents:      students,
		TotalAssessments:   assessments,
	}
	s.store(ctx, adminStatsKey, stats)
	return &stats, nil
}

// Invalidate 缓存删除失败只记录日志
func (s *StatisticsService) Invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, assessmentStatsKey, adminStatsKey); err != nil {
		logger.Log.Warn("failed to invalidate statistics cache", zap.Error(err))
	}
}

func (s *StatisticsService) cached(ctx context.Context, key string, dst interface{}) bool {
	if s.Cache == nil || s.CacheTTL() <= 0 {
		return false
	}
	data, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Log.Warn("statistics cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Log.Warn("statistics cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *StatisticsService) store(ctx context.Context, key string, v interface{}) {
	ttl := s.CacheTTL()
	if s.Cache == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Log.Warn("statistics cache write failed", zap.String("key", key), zap.Error(err))
	}
}
