package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/cache"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httpresp"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/validators"
)

type BlockedSlotHandler struct {
	db         *gorm.DB
	availCache *cache.Availability
}

func NewBlockedSlotHandler(db *gorm.DB, availCache *cache.Availability) *BlockedSlotHandler {
	return &BlockedSlotHandler{db: db, availCache: availCache}
}

type CreateBlockRequest struct {
	BlockDate string `json:"block_date" binding:"required"`
	BlockTime string `json:"block_time"` // vazio = dia inteiro
	Reason    string `json:"reason"`
}

func (h *BlockedSlotHandler) List(c *gin.Context) {
	q := h.db.Order("block_date ASC, block_time ASC")

	if date := c.Query("date"); date != "" {
		if !validators.IsISODate(date) {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("block_date = ?", date)
	}

	var blocks []models.BlockedSlot
	if err := q.Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar bloqueios.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockedSlotHandler) Create(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsISODate(req.BlockDate) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	if req.BlockTime != "" && !validators.IsHourMinute(req.BlockTime) {
		httperr.BadRequest(c, "invalid_time", "Hora inválida.")
		return
	}

	block := models.BlockedSlot{
		BlockDate: req.BlockDate,
		BlockTime: req.BlockTime,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	h.availCache.Invalidate(c.Request.Context(), req.BlockDate)

	c.JSON(http.StatusCreated, block)
}

func (h *BlockedSlotHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var block models.BlockedSlot
	if err := h.db.First(&block, uint(id)).Error; err != nil {
		httperr.NotFound(c, "block_not_found", "Bloqueio não encontrado.")
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erro ao remover bloqueio.")
		return
	}

	h.availCache.Invalidate(c.Request.Context(), block.BlockDate)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
