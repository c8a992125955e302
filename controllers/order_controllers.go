package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/middlewares"
	"github.com/smalltable/catering-app/services"
	"github.com/smalltable/catering-app/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Service: services.NewOrderService(db)}
}

// CreateOrder -> compose and persist an order with a frozen total.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	identity := middlewares.CurrentIdentity(c)
	order, err := oc.Service.CreateOrder(identity, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> list orders visible to the caller, newest first.
// Customers see their own, vendors the orders addressed to them, admins all.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	orders, err := oc.Service.ListOrders(identity, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order including items and addons.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	identity := middlewares.CurrentIdentity(c)
	order, err := oc.Service.GetOrder(identity, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder patches guests_count, note or status. A guests change
// recomputes the total from the frozen item/addon rows.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	var patch services.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	identity := middlewares.CurrentIdentity(c)
	order, err := oc.Service.UpdateOrder(identity, id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder removes a still-new order together with its rows.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	identity := middlewares.CurrentIdentity(c)
	if err := oc.Service.DeleteOrder(identity, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}
