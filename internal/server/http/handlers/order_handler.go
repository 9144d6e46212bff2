package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/server/http/dto"
	"github.com/scandent/orline/internal/usecase"
)

// OrderHandler manages order intake and lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Prepare handles POST /api/orders. The order is not persisted yet: the
// response carries a confirmation token and the draft summary.
func (h *OrderHandler) Prepare(c *gin.Context) {
	var req dto.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	form := usecase.IntakeForm{
		Patient:      req.Patient,
		Referred:     req.Referred,
		Study:        model.StudyTag(req.Study),
		StudyDetails: req.StudyDetails,
		CBCT:         req.CBCT,
		Delivery:     req.Delivery,
		DoctorNotes:  req.DoctorNotes,
	}

	token, draft, err := h.facade.PrepareOrder(c.Request.Context(), CurrentUserID(c), form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PrepareResponse{
		ConfirmToken: token,
		Draft:        toOrderResponse(draft),
	})
}

// Confirm handles POST /api/orders/confirm. Accepting persists the draft
// untouched; canceling discards it and returns the doctor to editing.
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, created, err := h.facade.ConfirmOrder(c.Request.Context(), CurrentUserID(c), req.Token, req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders with search, status and sort query parameters.
func (h *OrderHandler) List(c *gin.Context) {
	opts := usecase.ProjectionOptions{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	}

	orders, kpis, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		KPIs: dto.KPIResponse{
			Total:     kpis.Total,
			Pending:   kpis.Pending,
			Process:   kpis.Process,
			Ready:     kpis.Ready,
			Delivered: kpis.Delivered,
		},
	}
	for i := range orders {
		response.Orders = append(response.Orders, toOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, links, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderDetailResponse{
		Order: toOrderResponse(order),
		Links: toLinkResponses(links),
	})
}

// Update handles PATCH /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), CurrentUserID(c), c.Param("id"), model.OrderStatus(req.Status), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}
