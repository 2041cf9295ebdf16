package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sellora-backend/models"
	"sellora-backend/repository"
	"sellora-backend/service"
)

// OrderController handles HTTP requests for order placement, listing,
// status and payment transitions, invoices, and administrative line edits
type OrderController struct {
	repository repository.OrderRepositoryInterface
	service    *service.OrderService
	invoices   *service.InvoiceService
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, svc *service.OrderService, invoices *service.InvoiceService) *OrderController {
	return &OrderController{
		repository: repo,
		service:    svc,
		invoices:   invoices,
	}
}

// Orders handles POST /api/orders (checkout) and GET /api/orders (listing)
func (c *OrderController) Orders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Orders: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodPost:
		c.place(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *OrderController) place(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Orders: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	auth := AuthFrom(r)
	owner := ownerFromRequest(r)

	order, err := c.service.PlaceOrder(r.Context(), auth, owner, &req)
	if err != nil {
		log.Printf("❌ Orders: Error placing order: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Orders: Placed order id=%d total=%d", order.Order.ID, order.Order.TotalAmount)
	respondJSON(w, http.StatusCreated, order)
}

func (c *OrderController) list(w http.ResponseWriter, r *http.Request) {
	auth := requireCustomer(w, r)
	if auth == nil {
		return
	}

	// Staff see every order; customers only their own
	customerID := auth.CustomerID
	if auth.IsStaff {
		customerID = 0
	}

	orders, err := c.repository.List(r.Context(), customerID)
	if err != nil {
		log.Printf("❌ Orders: Error listing orders: %v", err)
		respondError(w, err)
		return
	}
	if orders == nil {
		orders = []models.OrderListItem{}
	}
	respondJSON(w, http.StatusOK, models.OrderListResponse{Orders: orders})
}

// OrderDetail routes /api/orders/{id} and its sub-resources:
// {id}/status, {id}/pay, {id}/invoice, {id}/items, {id}/items/{itemId}
func (c *OrderController) OrderDetail(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 OrderDetail: Received %s request to %s", r.Method, r.URL.Path)

	path := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if path == "" {
		http.Error(w, "order id parameter is required", http.StatusBadRequest)
		return
	}

	parts := strings.Split(path, "/")
	orderID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		log.Printf("❌ OrderDetail: Invalid order id: %s", parts[0])
		http.Error(w, "invalid order id parameter", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.get(w, r, orderID)

	case len(parts) == 2 && parts[1] == "status":
		if r.Method != http.MethodPatch && r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.updateStatus(w, r, orderID)

	case len(parts) == 2 && parts[1] == "pay":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.pay(w, r, orderID)

	case len(parts) == 2 && parts[1] == "invoice":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.invoice(w, r, orderID)

	case len(parts) == 2 && parts[1] == "items":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.addItem(w, r, orderID)

	case len(parts) == 3 && parts[1] == "items":
		itemID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.Error(w, "invalid item id parameter", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPut, http.MethodPatch:
			c.updateItem(w, r, orderID, itemID)
		case http.MethodDelete:
			c.removeItem(w, r, orderID, itemID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}

	default:
		http.Error(w, "invalid path format", http.StatusBadRequest)
	}
}

// canViewOrder allows staff, the owning customer, or nobody else
func (c *OrderController) canViewOrder(w http.ResponseWriter, r *http.Request, order *models.OrderDetail) bool {
	auth := AuthFrom(r)
	if auth == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return false
	}
	if auth.IsStaff || order.Order.CustomerID == auth.CustomerID {
		return true
	}
	// Hide existence from other customers
	http.Error(w, repository.ErrOrderNotFound.Error(), http.StatusNotFound)
	return false
}

func (c *OrderController) get(w http.ResponseWriter, r *http.Request, orderID int64) {
	order, err := c.repository.GetByID(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !c.canViewOrder(w, r, order) {
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (c *OrderController) updateStatus(w http.ResponseWriter, r *http.Request, orderID int64) {
	if !requireStaff(w, r) {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ OrderDetail: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.repository.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		log.Printf("❌ OrderDetail: Error updating status: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ OrderDetail: Order id=%d status=%s", orderID, order.Order.Status.StatusCode)
	respondJSON(w, http.StatusOK, order)
}

func (c *OrderController) pay(w http.ResponseWriter, r *http.Request, orderID int64) {
	if !requireStaff(w, r) {
		return
	}

	var req models.PayOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ OrderDetail: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.repository.MarkPaid(r.Context(), orderID, req.TransactionID, req.PaymentMethod)
	if err != nil {
		log.Printf("❌ OrderDetail: Error recording payment: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("💰 OrderDetail: Order id=%d marked paid txn=%s", orderID, order.Order.Payment.TransactionID)
	respondJSON(w, http.StatusOK, order)
}

func (c *OrderController) invoice(w http.ResponseWriter, r *http.Request, orderID int64) {
	order, err := c.repository.GetByID(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !c.canViewOrder(w, r, order) {
		return
	}

	pdf, err := c.invoices.GeneratePDF(r.Context(), orderID)
	if err != nil {
		log.Printf("❌ OrderDetail: Error generating invoice PDF: %v", err)
		http.Error(w, "failed to generate invoice", http.StatusInternalServerError)
		return
	}

	log.Printf("📋 OrderDetail: Generated invoice PDF for order id=%d (%d bytes)", orderID, len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, orderID))
	w.Write(pdf)
}

func (c *OrderController) addItem(w http.ResponseWriter, r *http.Request, orderID int64) {
	if !requireStaff(w, r) {
		return
	}

	var req models.AddOrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ OrderDetail: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.repository.AddItem(r.Context(), orderID, &req)
	if err != nil {
		log.Printf("❌ OrderDetail: Error adding item: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("➕ OrderDetail: Added item to order id=%d, total=%d", orderID, order.Order.TotalAmount)
	respondJSON(w, http.StatusOK, order)
}

func (c *OrderController) updateItem(w http.ResponseWriter, r *http.Request, orderID, itemID int64) {
	if !requireStaff(w, r) {
		return
	}

	var req models.UpdateOrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ OrderDetail: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.repository.UpdateItemQuantity(r.Context(), orderID, itemID, req.Quantity)
	if err != nil {
		log.Printf("❌ OrderDetail: Error updating item: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("🔄 OrderDetail: Updated item id=%d on order id=%d, total=%d", itemID, orderID, order.Order.TotalAmount)
	respondJSON(w, http.StatusOK, order)
}

func (c *OrderController) removeItem(w http.ResponseWriter, r *http.Request, orderID, itemID int64) {
	if !requireStaff(w, r) {
		return
	}

	order, err := c.repository.RemoveItem(r.Context(), orderID, itemID)
	if err != nil {
		log.Printf("❌ OrderDetail: Error removing item: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("🗑️ OrderDetail: Removed item id=%d from order id=%d, total=%d", itemID, orderID, order.Order.TotalAmount)
	respondJSON(w, http.StatusOK, order)
}
