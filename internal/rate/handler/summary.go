package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fxsummary/internal/domain"

	"github.com/sirupsen/logrus"
)

// RateSourceHeader names the tier that served the series: cache, remote or snapshot.
const RateSourceHeader = "X-Rate-Source"

type DailyRateResponse struct {
	Date      string   `json:"date" example:"2025-07-02"`
	Rate      float64  `json:"rate" example:"1.08"`
	PctChange *float64 `json:"pct_change" example:"-1.8181818181818"`
}

type TotalsResponse struct {
	StartRate      float64 `json:"start_rate" example:"1.1"`
	EndRate        float64 `json:"end_rate" example:"1.12"`
	TotalPctChange float64 `json:"total_pct_change" example:"1.8181818181818"`
	MeanRate       float64 `json:"mean_rate" example:"1.1"`
}

type SummaryResponse struct {
	Days   []DailyRateResponse `json:"days"`
	Totals TotalsResponse      `json:"totals"`
}

// GetSummary godoc
// @Summary Rate summary over a date range
// @Description Daily rates, day-over-day percent change and range totals for the configured currency pair
// @Tags Rates
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD), inclusive"
// @Param end query string true "End date (YYYY-MM-DD), inclusive"
// @Param breakdown query string false "day or none" Enums(day, none) default(none)
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, breakdown, err := h.validator.ValidateQuery(q.Get("start"), q.Get("end"), q.Get("breakdown"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, origin, err := h.service.Summary(r.Context(), rng, breakdown)
	if err != nil {
		status, msg := mapSummaryError(err)
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetSummary", "range": rng.Key(), "breakdown": breakdown}).Error(msg)
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(RateSourceHeader, string(origin))
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toSummaryResponse(summary))
}

func mapSummaryError(err error) (int, string) {
	var missing *domain.MissingCurrencyError
	switch {
	case errors.Is(err, domain.ErrSnapshotMissing):
		return http.StatusServiceUnavailable, "rates unavailable: local fallback file not found"
	case errors.Is(err, domain.ErrSnapshotCorrupt):
		return http.StatusServiceUnavailable, "rates unavailable: local fallback file unreadable"
	case errors.As(err, &missing):
		return http.StatusInternalServerError, missing.Error()
	case errors.Is(err, domain.ErrEmptySeries):
		return http.StatusInternalServerError, domain.ErrEmptySeries.Error()
	default:
		return http.StatusInternalServerError, "ups, couldn't build rate summary this time"
	}
}

func toSummaryResponse(s domain.Summary) SummaryResponse {
	res := SummaryResponse{
		Totals: TotalsResponse{
			StartRate:      s.Totals.StartRate,
			EndRate:        s.Totals.EndRate,
			TotalPctChange: s.Totals.TotalPctChange,
			MeanRate:       s.Totals.MeanRate,
		},
	}
	if s.Days != nil {
		res.Days = make([]DailyRateResponse, 0, len(s.Days))
		for _, d := range s.Days {
			res.Days = append(res.Days, DailyRateResponse{Date: d.Date, Rate: d.Rate, PctChange: d.PctChange})
		}
	}
	return res
}
