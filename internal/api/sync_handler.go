package api

import (
	"net/http"

	"CasinoTracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler 手动触发一轮同步（正常情况下由调度器周期驱动）
type SyncHandler struct {
	syncService *service.SyncService
	logger      *logrus.Logger
}

func NewSyncHandler(syncService *service.SyncService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{syncService: syncService, logger: logger}
}

// RunSync 立即执行一轮完整同步
// POST /sync/run
func (h *SyncHandler) RunSync(c *gin.Context) {
	if err := h.syncService.RunSyncCycle(c.Request.Context()); err != nil {
		h.logger.Errorf("手动同步失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "同步成功"})
}
