package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/service/sales"
)

// SalesHandler serves the client base and sale endpoints.
type SalesHandler struct {
	svc    *sales.Service
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(svc *sales.Service, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

// ListClients returns the client base.
func (h *SalesHandler) ListClients(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListClients())
}

type createClientRequest struct {
	Name    string `json:"nom" binding:"required"`
	Address string `json:"adresse"`
	Phone   string `json:"tel" binding:"required"`
}

// CreateClient registers a buyer.
func (h *SalesHandler) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid client payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	client, err := h.svc.CreateClient(req.Name, req.Address, req.Phone)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// DeleteClient removes a buyer; sale history keeps its name snapshots.
func (h *SalesHandler) DeleteClient(c *gin.Context) {
	if err := h.svc.DeleteClient(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSales returns all sales, most recent first.
func (h *SalesHandler) ListSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListSales())
}

type recordSaleRequest struct {
	ClientID   string   `json:"clientId" binding:"required"`
	ChickenIDs []string `json:"pouletIds" binding:"required"`
	IsCredit   bool     `json:"isCredit"`
	DueDate    string   `json:"dueDate"`
}

// RecordSale sells the selected chickens to a client in one atomic step.
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sale, err := h.svc.RecordSale(sales.SaleInput{
		ClientID:   req.ClientID,
		ChickenIDs: req.ChickenIDs,
		IsCredit:   req.IsCredit,
		DueDate:    req.DueDate,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// MarkPaid settles a credit sale.
func (h *SalesHandler) MarkPaid(c *gin.Context) {
	sale, err := h.svc.MarkCreditPaid(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// DueCredits lists unpaid credit sales due within the reminder window.
func (h *SalesHandler) DueCredits(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.DueCredits(sales.DefaultReminderWindow))
}
