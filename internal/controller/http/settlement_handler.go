package http

import (
	"net/http"

	"clubhub/internal/entity"
	"clubhub/internal/usecase"
	"clubhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SettlementHandler struct {
	settlementUseCase usecase.SettlementUseCase
	logger            *logger.Logger
}

func NewSettlementHandler(settlementUseCase usecase.SettlementUseCase, logger *logger.Logger) *SettlementHandler {
	return &SettlementHandler{
		settlementUseCase: settlementUseCase,
		logger:            logger,
	}
}

type SettlementRequest struct {
	EventID    string `json:"event_id" binding:"required"`
	Kind       string `json:"kind" binding:"required,oneof=membership bonus-purchase"`
	MemberID   string `json:"member_id" binding:"required"`
	PackageID  string `json:"package_id"`
	PaymentRef string `json:"payment_ref"`
}

// ApplySettlement godoc
// @Summary      Apply payment settlement
// @Description  Idempotently apply an asynchronous payment confirmation; replays are absorbed
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SettlementRequest true "Settlement event"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /settlements [post]
func (h *SettlementHandler) ApplySettlement(c *gin.Context) {
	var req SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := &entity.SettlementEvent{
		EventID:    req.EventID,
		Kind:       entity.SettlementKind(req.Kind),
		MemberID:   req.MemberID,
		PackageID:  req.PackageID,
		PaymentRef: req.PaymentRef,
	}

	if err := h.settlementUseCase.Apply(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "applied"})
}
