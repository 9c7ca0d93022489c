package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Partners *services.PartnerService
	Stats    *services.StatsService
}

func NewAdminController(partners *services.PartnerService, stats *services.StatsService) *AdminController {
	return &AdminController{Partners: partners, Stats: stats}
}

// GET /admin/partners
func (ac *AdminController) ListPartners(c *gin.Context) {
	rows, err := ac.Partners.Directory()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rows})
}

// DELETE /admin/partners/:id
func (ac *AdminController) DeletePartner(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ac.Partners.Remove(id); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /admin/stats
func (ac *AdminController) DashboardStats(c *gin.Context) {
	stats, err := ac.Stats.Stats()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, stats)
}
