package http

import (
	"net/http"
	"strconv"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/internal/usecase"
	"clubhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	commissionUseCase usecase.CommissionUseCase
	logger            *logger.Logger
}

func NewCommissionHandler(commissionUseCase usecase.CommissionUseCase, logger *logger.Logger) *CommissionHandler {
	return &CommissionHandler{
		commissionUseCase: commissionUseCase,
		logger:            logger,
	}
}

type UpdateCommissionRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved paid"`
}

type ExportCommissionsRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// ListCommissions godoc
// @Summary      List commission records
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        professional_id query string false "Professional ID"
// @Param        status query string false "Status"
// @Success      200  {object}  map[string]interface{}
// @Router       /commissions [get]
func (h *CommissionHandler) ListCommissions(c *gin.Context) {
	filter := persistent.CommissionListFilter{
		ProfessionalID: c.Query("professional_id"),
		Status:         entity.CommissionStatus(c.Query("status")),
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.commissionUseCase.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commissions": records, "count": len(records)})
}

// UpdateCommission godoc
// @Summary      Update commission status
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Commission ID"
// @Param        request body UpdateCommissionRequest true "New status"
// @Success      200  {object}  entity.CommissionRecord
// @Router       /admin/commissions/{id} [patch]
func (h *CommissionHandler) UpdateCommission(c *gin.Context) {
	var req UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.commissionUseCase.UpdateStatus(c.Request.Context(), c.Param("id"), entity.CommissionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ExportCommissions godoc
// @Summary      Export commission report
// @Description  Write a CSV of commission records in [from,to) to report storage
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ExportCommissionsRequest true "Report window"
// @Success      200  {object}  map[string]string
// @Router       /admin/commissions/export [post]
func (h *CommissionHandler) ExportCommissions(c *gin.Context) {
	var req ExportCommissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := time.Parse(time.RFC3339, req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
		return
	}

	url, err := h.commissionUseCase.ExportCSV(c.Request.Context(), from.UTC(), to.UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report_url": url})
}
