package rest

import (
	"encoding/json"
	"marketplace-service/internal/core/domain"
	usecases_port "marketplace-service/internal/core/port/usecases_port"
	"net/http"
)

const maxOrderBodyBytes = 1 << 16

type OrderHandler struct {
	listOrdersUC   usecases_port.ListOrdersUseCase
	getOrderUC     usecases_port.GetOrderUseCase
	updateStatusUC usecases_port.UpdateOrderStatusUseCase
}

func NewOrderHandler(listOrdersUC usecases_port.ListOrdersUseCase,
	getOrderUC usecases_port.GetOrderUseCase,
	updateStatusUC usecases_port.UpdateOrderStatusUseCase) *OrderHandler {
	return &OrderHandler{
		listOrdersUC:   listOrdersUC,
		getOrderUC:     getOrderUC,
		updateStatusUC: updateStatusUC,
	}
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.OrderListFilter{
		Page:  queryInt(query.Get("page"), 1),
		Limit: queryInt(query.Get("limit"), 0),
	}
	if rawStatus := query.Get("status"); rawStatus != "" {
		status, err := domain.ParseOrderStatus(rawStatus)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		filter.Status = status
	}

	page, err := h.listOrdersUC.Execute(r.Context(), sessionFrom(r), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	orders := make([]OrderResponse, len(page.Orders))
	for i, o := range page.Orders {
		orders[i] = toOrderResponse(o)
	}

	RespondWithJSON(w, http.StatusOK, OrderListResponse{
		Success:    true,
		Orders:     orders,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderID")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid order id.")
		return
	}

	order, err := h.getOrderUC.Execute(r.Context(), sessionFrom(r), orderID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, OrderEnvelope{Success: true, Order: toOrderResponse(*order)})
}

func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderID")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid order id.")
		return
	}

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBodyBytes)).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	order, err := h.updateStatusUC.Execute(r.Context(), sessionFrom(r), domain.UpdateOrderStatusCommand{
		OrderID:        orderID,
		Status:         status,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, OrderEnvelope{Success: true, Order: toOrderResponse(*order)})
}
