package controllers

import (
	"net/http"

	"github.com/angelmondragon/testmart-backend/api/responses"
	"github.com/angelmondragon/testmart-backend/api/validators"
	salessvc "github.com/angelmondragon/testmart-backend/internal/sales"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
	"github.com/angelmondragon/testmart-backend/pkg/types"
)

// createSaleRequest deliberately has no total: the amount is always priced
// server side.
type createSaleRequest struct {
	ProductID *int64      `json:"product_id" validate:"required"`
	Quantity  *int        `json:"quantity" validate:"required"`
	SaleDate  *types.Date `json:"sale_date" validate:"required"`
}

// CreateSale handles POST /api/sales.
func CreateSale(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var payload createSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, *payload.ProductID)
		}

		sale, err := svc.CreateSale(ctx, salessvc.CreateSaleInput{
			ProductID: *payload.ProductID,
			Quantity:  *payload.Quantity,
			SaleDate:  payload.SaleDate.Time,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// ListSales handles GET /api/sales. Every filter is optional and date bounds
// are inclusive.
func ListSales(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		filter, err := parseSalesFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sales, err := svc.ListSales(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sales)
	}
}

func parseSalesFilter(r *http.Request) (salessvc.ListFilter, error) {
	productID, err := validators.ParseOptionalQueryID(r, "product_id")
	if err != nil {
		return salessvc.ListFilter{}, err
	}
	start, err := validators.ParseOptionalQueryDate(r, "start_date")
	if err != nil {
		return salessvc.ListFilter{}, err
	}
	end, err := validators.ParseOptionalQueryDate(r, "end_date")
	if err != nil {
		return salessvc.ListFilter{}, err
	}
	return salessvc.ListFilter{
		ProductID: productID,
		Category:  validators.ParseOptionalQueryString(r, "category"),
		StartDate: start,
		EndDate:   end,
	}, nil
}
