package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
)

type variantResponse struct {
	SKU             string           `json:"sku"`
	ColorCode       string           `json:"color_code"`
	ColorName       string           `json:"color_name"`
	Size            string           `json:"size"`
	Stock           int              `json:"stock"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	PriceAdjustment decimal.Decimal  `json:"price_adjustment"`
	Images          []string         `json:"images,omitempty"`
}

type productResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	BasePrice    decimal.Decimal   `json:"base_price"`
	DiscountPct  int               `json:"discount_pct"`
	FinalPrice   *decimal.Decimal  `json:"final_price,omitempty"`
	Stock        int               `json:"stock"`
	DefaultImage string            `json:"default_image,omitempty"`
	Variants     []variantResponse `json:"variants,omitempty"`
}

func toProductResponse(p *catalog.Product) productResponse {
	resp := productResponse{
		ID:           p.ID,
		Name:         p.Name,
		BasePrice:    p.BasePrice,
		DiscountPct:  p.DiscountPct,
		FinalPrice:   p.FinalPrice,
		Stock:        p.Stock,
		DefaultImage: p.DefaultImage,
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, variantResponse{
			SKU:             v.SKU,
			ColorCode:       v.ColorCode,
			ColorName:       v.ColorName,
			Size:            v.Size,
			Stock:           v.Stock,
			Price:           v.Price,
			PriceAdjustment: v.PriceAdjustment,
			Images:          v.Images,
		})
	}
	return resp
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}
