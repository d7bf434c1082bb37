package http

import (
	"net/http"
	"strconv"

	"clubhub/internal/usecase"
	"clubhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletUseCase usecase.WalletUseCase
	logger        *logger.Logger
}

func NewWalletHandler(walletUseCase usecase.WalletUseCase, logger *logger.Logger) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
		logger:        logger,
	}
}

type AdminCreditRequest struct {
	Amount      int    `json:"amount" binding:"required,min=1"`
	Description string `json:"description"`
}

// GetWallet godoc
// @Summary      Get wallet
// @Description  Get the bonos balance for the authenticated member
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Wallet
// @Router       /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	memberID := c.GetString("user_id")

	wallet, err := h.walletUseCase.GetWallet(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetTransactions godoc
// @Summary      Get wallet transactions
// @Description  Ledger history for the authenticated member, oldest first
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of transactions"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	memberID := c.GetString("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transactions, err := h.walletUseCase.GetTransactions(c.Request.Context(), memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// AdminCredit godoc
// @Summary      Credit a member's wallet
// @Description  Manual bonos grant by an administrator
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        member_id path string true "Member ID"
// @Param        request body AdminCreditRequest true "Credit amount"
// @Success      200  {object}  entity.Transaction
// @Failure      400  {object}  map[string]string
// @Router       /admin/wallets/{member_id}/credit [post]
func (h *WalletHandler) AdminCredit(c *gin.Context) {
	var req AdminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.walletUseCase.AdminCredit(c.Request.Context(), c.Param("member_id"), req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// VerifyLedger godoc
// @Summary      Verify wallet ledger
// @Description  Replay a member's transactions and compare with the stored balance
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        member_id path string true "Member ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/wallets/{member_id}/verify [get]
func (h *WalletHandler) VerifyLedger(c *gin.Context) {
	ok, err := h.walletUseCase.VerifyLedger(c.Request.Context(), c.Param("member_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consistent": ok})
}
