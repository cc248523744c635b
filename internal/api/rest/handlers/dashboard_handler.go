package handlers

import (
	"context"
	"net/http"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
)

// StatsProvider источник сводки для главной страницы
type StatsProvider interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

// DashboardHandler сводка и каталог для админки
type DashboardHandler struct {
	stats   StatsProvider
	catalog Catalog
	log     *logger.Logger
}

func NewDashboardHandler(stats StatsProvider, catalog Catalog, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{stats: stats, catalog: catalog, log: log}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero dei dati")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *DashboardHandler) GetProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero dei prodotti")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
