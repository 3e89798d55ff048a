package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/service/stock"
)

// StockHandler serves the stock batch and chicken unit endpoints.
type StockHandler struct {
	svc    *stock.Service
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc *stock.Service, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

// List returns every stock batch.
func (h *StockHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

// Get returns one stock batch.
func (h *StockHandler) Get(c *gin.Context) {
	batch, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type createStockBatchRequest struct {
	Name        string  `json:"nom" binding:"required"`
	PricePerKg  float64 `json:"prixKg"`
	InitialCost float64 `json:"coutInitial"`
}

// Create opens a stock batch without production backing.
func (h *StockHandler) Create(c *gin.Context) {
	var req createStockBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock batch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.svc.CreateBatch(req.Name, req.PricePerKg, req.InitialCost)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

type addChickenRequest struct {
	TagNo    string  `json:"numero" binding:"required"`
	WeightKg float64 `json:"poids"`
	Price    float64 `json:"prix"`
}

// AddChicken appends an unsold unit to the batch.
func (h *StockHandler) AddChicken(c *gin.Context) {
	var req addChickenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chicken payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.svc.AddChicken(c.Param("id"), req.TagNo, req.WeightKg, req.Price)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

// RemoveChicken deletes an unsold unit from the batch.
func (h *StockHandler) RemoveChicken(c *gin.Context) {
	batch, err := h.svc.RemoveChicken(c.Param("id"), c.Param("chickenId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// Delete removes a non-finalized stock batch entirely.
func (h *StockHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBatch(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Finalize locks a fully sold stock batch.
func (h *StockHandler) Finalize(c *gin.Context) {
	batch, err := h.svc.Finalize(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}
