package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/halaqahq/halaqa/internal/middleware"
	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/service"
)

// PaymentHandler serves payment recording and payment history.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type makePaymentRequest struct {
	CycleNumber int `json:"cycle_number"`
}

// MakePayment handles POST /api/groups/{id}/payments.
func (h *PaymentHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	var req makePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	payment, err := h.paymentService.MakePayment(r.Context(), userID, mux.Vars(r)["id"], req.CycleNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// GetMyPayments handles GET /api/groups/{id}/payments and returns the
// caller's payments toward the group.
func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	payments, err := h.paymentService.GetUserPayments(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	if payments == nil {
		payments = []*models.CyclePayment{}
	}
	writeJSON(w, http.StatusOK, payments)
}
