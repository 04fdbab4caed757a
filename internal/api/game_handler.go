package api

import (
	"errors"
	"net/http"

	"CasinoTracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameHandler 游戏目录查询接口
type GameHandler struct {
	gameRepo repository.GameRepository
	logger   *logrus.Logger
}

func NewGameHandler(gameRepo repository.GameRepository, logger *logrus.Logger) *GameHandler {
	return &GameHandler{gameRepo: gameRepo, logger: logger}
}

// ListGames 全部游戏列表
// GET /api/games
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.gameRepo.ListGames(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("查询游戏列表失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch casino games."})
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGame 单个游戏详情
// GET /api/games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.gameRepo.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Casino game not found."})
			return
		}
		h.logger.WithError(err).Error("查询游戏失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch casino game."})
		return
	}
	c.JSON(http.StatusOK, game)
}
