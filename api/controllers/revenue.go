package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/testmart-backend/api/responses"
	"github.com/angelmondragon/testmart-backend/api/validators"
	revenuesvc "github.com/angelmondragon/testmart-backend/internal/revenue"
	"github.com/angelmondragon/testmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
)

// RevenueByPeriod handles GET /api/sales/revenue?period=day|month|year.
// Unsupported periods yield an empty list rather than an error.
func RevenueByPeriod(svc revenuesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "revenue service unavailable"))
			return
		}

		period := strings.TrimSpace(r.URL.Query().Get("period"))
		if period == "" {
			period = string(enums.RevenuePeriodDay)
		}

		rows, err := svc.RevenueByPeriod(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

func RevenueComparison(svc revenuesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "revenue service unavailable"))
			return
		}

		comparePeriods, err := validators.ParseOptionalQueryInt(r, "compare_periods")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.RevenueComparison(r.Context(), revenuesvc.ComparisonInput{
			Period:         strings.TrimSpace(r.URL.Query().Get("period")),
			Category:       validators.ParseOptionalQueryString(r, "category"),
			ComparePeriods: comparePeriods,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
