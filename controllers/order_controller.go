package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc    *services.OrderService
	Assign *services.AssignmentService
}

func NewOrderController(svc *services.OrderService, assign *services.AssignmentService) *OrderController {
	return &OrderController{Svc: svc, Assign: assign}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var in services.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Svc.Create(in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders?status=
func (oc *OrderController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	orders, err := oc.Svc.List(c.Query("status"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := oc.Svc.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

type patchOrderReq struct {
	Status string `json:"status"`
	services.OrderInput
}

// PATCH /orders/:id — {status} is a transition request; anything else
// is a field update with full create validation.
func (oc *OrderController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req patchOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if req.Status != "" {
		order, err := oc.Svc.AdminChangeStatus(id, req.Status)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		resp.OK(c, order)
		return
	}

	order, err := oc.Svc.Update(id, req.OrderInput)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id
func (oc *OrderController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := oc.Svc.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

type assignReq struct {
	PartnerID uint `json:"partnerId" binding:"required"`
}

// POST /orders/:id/assign
func (oc *OrderController) AssignPartner(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Assign.Assign(id, req.PartnerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, order)
}
