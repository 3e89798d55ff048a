package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/service/production"
)

// ProductionHandler serves the production batch endpoints.
type ProductionHandler struct {
	svc    *production.Service
	logger *zap.Logger
}

// NewProductionHandler constructs the HTTP handler adapter.
func NewProductionHandler(svc *production.Service, logger *zap.Logger) *ProductionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionHandler{svc: svc, logger: logger}
}

// List returns every production batch.
func (h *ProductionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

// Get returns one production batch.
func (h *ProductionHandler) Get(c *gin.Context) {
	batch, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type createBatchRequest struct {
	Name       string  `json:"nom" binding:"required"`
	StartDate  string  `json:"dateMisePlace" binding:"required"`
	Chicks     int     `json:"nbPoussinsInitial" binding:"required"`
	ChickPrice float64 `json:"prixAchatPoussin"`
}

// Create opens a new production batch.
func (h *ProductionHandler) Create(c *gin.Context) {
	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.svc.CreateBatch(req.Name, req.StartDate, req.Chicks, req.ChickPrice)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

type recordDayRequest struct {
	Date        string  `json:"date" binding:"required"`
	Deaths      int     `json:"mort"`
	FeedGrams   float64 `json:"conso"`
	FeedKg      float64 `json:"quantite"`
	WeightGrams float64 `json:"poidsReel"`
	Note        string  `json:"note"`
}

// RecordDay appends one daily observation to the batch.
func (h *ProductionHandler) RecordDay(c *gin.Context) {
	var req recordDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid daily record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.svc.RecordDay(c.Param("id"), production.DayInput{
		Date:        req.Date,
		Deaths:      req.Deaths,
		FeedGrams:   req.FeedGrams,
		FeedKg:      req.FeedKg,
		WeightGrams: req.WeightGrams,
		Note:        req.Note,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

type recordExpenseRequest struct {
	Label  string  `json:"libelle" binding:"required"`
	Amount float64 `json:"montant"`
	Date   string  `json:"date" binding:"required"`
}

// RecordExpense appends an expense to the batch.
func (h *ProductionHandler) RecordExpense(c *gin.Context) {
	var req recordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.svc.RecordExpense(c.Param("id"), req.Label, req.Amount, req.Date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

type toggleVaccinationRequest struct {
	Index *int `json:"index" binding:"required"`
}

// ToggleVaccination flips one programme step's completion flag.
func (h *ProductionHandler) ToggleVaccination(c *gin.Context) {
	var req toggleVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid vaccination payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.svc.ToggleVaccination(c.Param("id"), *req.Index)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type closeBatchRequest struct {
	PricePerKg float64 `json:"prixKg"`
}

// Close closes the batch and opens its empty stock batch.
func (h *ProductionHandler) Close(c *gin.Context) {
	var req closeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.logger.Warn("invalid close payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, stockBatch, err := h.svc.CloseAndTransfer(c.Param("id"), req.PricePerKg)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productionBatch": batch, "stockBatch": stockBatch})
}

// Growth returns the growth curve of the batch against the breed reference.
func (h *ProductionHandler) Growth(c *gin.Context) {
	points, err := h.svc.GrowthCurve(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
