package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"CasinoTracker/internal/cache"
	"CasinoTracker/internal/config"
	"CasinoTracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsHandler 统计与结果feed接口，响应经缓存记忆
type StatsHandler struct {
	statsService *service.StatsService
	cache        cache.Provider
	cfg          *config.Config
	logger       *logrus.Logger
}

func NewStatsHandler(statsService *service.StatsService, cacheProvider cache.Provider, cfg *config.Config, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		cache:        cacheProvider,
		cfg:          cfg,
		logger:       logger,
	}
}

// GetGameStats 单个游戏的窗口统计
// GET /api/games/:id/stats?duration=24
func (h *StatsHandler) GetGameStats(c *gin.Context) {
	gameID := c.Param("id")
	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "24"))

	cacheKey := fmt.Sprintf("stats:%s:%d", gameID, duration)
	h.cachedJSON(c, cacheKey, h.cfg.Cache.GameResultsTTL, func(ctx context.Context) (interface{}, error) {
		return h.statsService.GetGameStats(ctx, gameID, duration)
	})
}

// GetGameResults 单个游戏的结果feed
// GET /api/games/:id/results?duration=24&limit=100
func (h *StatsHandler) GetGameResults(c *gin.Context) {
	gameID := c.Param("id")
	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "24"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	cacheKey := fmt.Sprintf("results:%s:%d:%d", gameID, duration, limit)
	h.cachedJSON(c, cacheKey, h.cfg.Cache.GameResultsTTL, func(ctx context.Context) (interface{}, error) {
		return h.statsService.GetGameResults(ctx, gameID, duration, limit)
	})
}

// CacheStatus 查看当前缓存配置
// GET /api/cache/status
func (h *StatsHandler) CacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cacheType": h.cfg.Cache.Provider,
		"config": gin.H{
			"cacheProvider":           h.cfg.Cache.Provider,
			"gameResultsCacheSeconds": h.cfg.Cache.GameResultsTTL,
			"biggestWinsCacheSeconds": h.cfg.Cache.BiggestWinsTTL,
		},
	})
}

// cachedJSON 缓存优先的响应封装：缓存不可用时降级为直查并告警，不影响响应
func (h *StatsHandler) cachedJSON(c *gin.Context, cacheKey string, ttlSeconds int, fetch func(ctx context.Context) (interface{}, error)) {
	ctx := c.Request.Context()

	if cached, err := h.cache.Get(ctx, cacheKey); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		h.logger.WithError(err).Warnf("缓存不可用，跳过缓存: %s", cacheKey)
	}

	data, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Casino game not found."})
			return
		}
		h.logger.WithError(err).Errorf("读侧查询失败: %s", cacheKey)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game statistics."})
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		h.logger.WithError(err).Error("序列化响应失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game statistics."})
		return
	}
	if err := h.cache.Set(ctx, cacheKey, string(body), time.Duration(ttlSeconds)*time.Second); err != nil {
		h.logger.WithError(err).Warnf("缓存不可用，写入失败: %s", cacheKey)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
