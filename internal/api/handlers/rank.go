package handlers

import (
	"net/http"

	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

// ClassifyBalance ranks the display balance given in the balance query parameter.
func (h *Handler) ClassifyBalance(r *http.Request) (*Result, error) {
	balance := r.URL.Query().Get("balance")
	if balance == "" {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "balance is required")
	}
	return NewResult(services.ClassifyBalance(balance)), nil
}
