package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"fxsummary/internal/domain"
)

type QueryValidator interface {
	ValidateQuery(start, end, breakdown string) (domain.DateRange, domain.Breakdown, error)
}

type SummaryService interface {
	Summary(ctx context.Context, rng domain.DateRange, breakdown domain.Breakdown) (domain.Summary, domain.Origin, error)
}

type Handler struct {
	validator QueryValidator
	service   SummaryService
}

func NewRateHandler(validator QueryValidator, service SummaryService) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}
