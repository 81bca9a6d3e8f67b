package handlers

import (
	"net/http"
)

func (h *Handler) HealthCheck(r *http.Request) (*Result, error) {
	if err := h.svc.DoHealthCheck(r.Context()); err != nil {
		return nil, err
	}
	return NewResult("Server is up and running"), nil
}
