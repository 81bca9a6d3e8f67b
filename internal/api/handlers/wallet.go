package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const addressParam = "address"

// GetFees godoc
// GET /v1/wallets/{address}/fees
// Served from the local cache when present, otherwise the whole history is aggregated.
func (h *Handler) GetFees(r *http.Request) (*Result, error) {
	report, err := h.svc.GetFees(r.Context(), chi.URLParam(r, addressParam))
	if err != nil {
		return nil, err
	}
	return NewResult(report), nil
}

// Resync godoc
// POST /v1/wallets/{address}/resync
// Rejected with 429 while the cooldown of the previous re-sync runs.
func (h *Handler) Resync(r *http.Request) (*Result, error) {
	report, err := h.svc.Resync(r.Context(), chi.URLParam(r, addressParam))
	if err != nil {
		return nil, err
	}
	return NewResult(report), nil
}

func (h *Handler) GetCooldown(r *http.Request) (*Result, error) {
	status, err := h.svc.GetCooldown(r.Context(), chi.URLParam(r, addressParam))
	if err != nil {
		return nil, err
	}
	return NewResult(status), nil
}

func (h *Handler) GetSyncStatus(r *http.Request) (*Result, error) {
	status, err := h.svc.GetSyncStatus(r.Context(), chi.URLParam(r, addressParam))
	if err != nil {
		return nil, err
	}
	return NewResult(status), nil
}

func (h *Handler) GetWalletRank(r *http.Request) (*Result, error) {
	walletRank, err := h.svc.GetWalletRank(r.Context(), chi.URLParam(r, addressParam))
	if err != nil {
		return nil, err
	}
	return NewResult(walletRank), nil
}
