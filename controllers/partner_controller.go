package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PartnerController struct {
	Svc    *services.PartnerService
	Orders *services.OrderService
}

func NewPartnerController(svc *services.PartnerService, orders *services.OrderService) *PartnerController {
	return &PartnerController{Svc: svc, Orders: orders}
}

type availabilityReq struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// PATCH /partners/availability
func (pc *PartnerController) UpdateAvailability(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req availabilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p, err := pc.Svc.SetAvailability(uid, *req.IsAvailable)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"partner": p})
}

type locationReq struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

// PATCH /partners/location
func (pc *PartnerController) UpdateLocation(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := pc.Svc.ReportLocation(uid, req.Lat, req.Lng); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// GET /partners/orders?status=
func (pc *PartnerController) MyOrders(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	orders, err := pc.Svc.OrdersFor(uid, c.Query("status"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /partners/orders/:id/status
func (pc *PartnerController) UpdateOrderStatus(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	partner, err := pc.Svc.Repo.GetByUserID(uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Forbidden(c, "no partner profile")
			return
		}
		resp.ServerError(c, err)
		return
	}

	order, err := pc.Orders.PartnerChangeStatus(partner.ID, id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, order)
}
