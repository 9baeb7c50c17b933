package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/api/responses"
	"github.com/mercatus-labs/mercatus-backend/api/validators"
	productsvc "github.com/mercatus-labs/mercatus-backend/internal/products"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
)

type createProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       *string         `json:"description,omitempty"`
	SKU               string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode           *string         `json:"barcode,omitempty"`
	CategoryID        *uuid.UUID      `json:"category_id,omitempty"`
	SupplierID        *uuid.UUID      `json:"supplier_id,omitempty"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity" validate:"min=0"`
	MinStockThreshold int             `json:"min_stock_threshold" validate:"min=0"`
	Images            []string        `json:"images,omitempty"`
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, userID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), storeID, &userID, productsvc.CreateInput{
			Name:              payload.Name,
			Description:       payload.Description,
			SKU:               payload.SKU,
			Barcode:           payload.Barcode,
			CategoryID:        payload.CategoryID,
			SupplierID:        payload.SupplierID,
			CostPrice:         payload.CostPrice,
			SellingPrice:      payload.SellingPrice,
			StockQuantity:     payload.StockQuantity,
			MinStockThreshold: payload.MinStockThreshold,
			Images:            payload.Images,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), storeID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListProducts returns the active catalogue, optionally filtered by ?q=.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if query := validators.QueryString(r, "q"); query != "" {
			list, err := svc.Search(r.Context(), storeID, query)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, list)
			return
		}
		list, err := svc.ListActive(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updateProductRequest struct {
	Name              *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description,omitempty"`
	SKU               *string          `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Barcode           *string          `json:"barcode,omitempty"`
	CategoryID        *uuid.UUID       `json:"category_id,omitempty"`
	SupplierID        *uuid.UUID       `json:"supplier_id,omitempty"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty"`
	StockQuantity     *int             `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	MinStockThreshold *int             `json:"min_stock_threshold,omitempty" validate:"omitempty,min=0"`
	Images            []string         `json:"images,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), storeID, id, productsvc.UpdateInput{
			Name:              payload.Name,
			Description:       payload.Description,
			SKU:               payload.SKU,
			Barcode:           payload.Barcode,
			CategoryID:        payload.CategoryID,
			SupplierID:        payload.SupplierID,
			CostPrice:         payload.CostPrice,
			SellingPrice:      payload.SellingPrice,
			StockQuantity:     payload.StockQuantity,
			MinStockThreshold: payload.MinStockThreshold,
			Images:            payload.Images,
			IsActive:          payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), storeID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
