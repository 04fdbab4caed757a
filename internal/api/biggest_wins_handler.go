package api

import (
	"context"
	"fmt"
	"strconv"

	"CasinoTracker/internal/cache"
	"CasinoTracker/internal/config"
	"CasinoTracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BiggestWinsHandler 公共大奖榜接口
type BiggestWinsHandler struct {
	stats *StatsHandler // 复用缓存封装
	wins  *service.BiggestWinsService
}

func NewBiggestWinsHandler(wins *service.BiggestWinsService, cacheProvider cache.Provider, cfg *config.Config, logger *logrus.Logger) *BiggestWinsHandler {
	return &BiggestWinsHandler{
		stats: &StatsHandler{cache: cacheProvider, cfg: cfg, logger: logger},
		wins:  wins,
	}
}

// Latest 最近的大奖榜
// GET /api/biggest-wins/latest?size=4&duration=1
func (h *BiggestWinsHandler) Latest(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "4"))
	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "1"))

	cacheKey := fmt.Sprintf("biggest-wins:%d:%d", size, duration)
	h.stats.cachedJSON(c, cacheKey, h.stats.cfg.Cache.BiggestWinsTTL, func(ctx context.Context) (interface{}, error) {
		return h.wins.Latest(ctx, size, duration)
	})
}
