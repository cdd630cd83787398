package handlers

import (
	"errors"
	"net/http"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/handlers/render"
	"github.com/boomtruck/siteapi/internal/logger"
	"github.com/boomtruck/siteapi/internal/service/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
	logger  logger.Logger
}

func NewCatalog(c *catalog.Service, l logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, logger: l}
}

// PublicHandler serves the read-only catalog consumed by the marketing pages.
func (h *CatalogHandler) PublicHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", h.listProducts)
	mux.HandleFunc("GET /products/{slug}", h.getProduct)
	mux.HandleFunc("GET /regions", h.listRegions)
	mux.HandleFunc("GET /regions/{slug}", h.getRegion)

	return mux
}

// AdminHandler serves the mutating routes of the admin console.
func (h *CatalogHandler) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /products", h.createProduct)
	mux.HandleFunc("PUT /products/{slug}", h.updateProduct)
	mux.HandleFunc("DELETE /products/{slug}", h.deleteProduct)
	mux.HandleFunc("POST /regions", h.createRegion)
	mux.HandleFunc("PUT /regions/{slug}", h.updateRegion)
	mux.HandleFunc("DELETE /regions/{slug}", h.deleteRegion)

	return mux
}

type productRequest struct {
	Slug        string `json:"slug" validate:"required,slug"`
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Brand       string `json:"brand" validate:"required"`
	BoomLength  string `json:"boom_length"`
	Output      string `json:"output"`
	Year        int    `json:"year" validate:"omitempty,min=1990,max=2100"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description"`
}

func (r productRequest) input() catalog.ProductInput {
	return catalog.ProductInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Brand:       r.Brand,
		BoomLength:  r.BoomLength,
		Output:      r.Output,
		Year:        r.Year,
		Price:       r.Price,
		Description: r.Description,
	}
}

type regionRequest struct {
	Slug     string   `json:"slug" validate:"required,slug"`
	Name     string   `json:"name" validate:"required,min=2,max=80"`
	Headline string   `json:"headline"`
	Cities   []string `json:"cities" validate:"required,min=1,dive,required"`
}

func (r regionRequest) input() catalog.RegionInput {
	return catalog.RegionInput{
		Slug:     r.Slug,
		Name:     r.Name,
		Headline: r.Headline,
		Cities:   r.Cities,
	}
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSON(w, products)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSON(w, product)
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	data, err := render.BindAndValidate[productRequest](w, r)
	if err != nil {
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), data.input())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSONWithStatus(w, product, http.StatusCreated)
}

func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	data, err := render.BindAndValidate[productRequest](w, r)
	if err != nil {
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), r.PathValue("slug"), data.input())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSON(w, product)
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("slug")); err != nil {
		h.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) listRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.catalog.ListRegions(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSON(w, regions)
}

func (h *CatalogHandler) getRegion(w http.ResponseWriter, r *http.Request) {
	region, err := h.catalog.GetRegion(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSON(w, region)
}

func (h *CatalogHandler) createRegion(w http.ResponseWriter, r *http.Request) {
	data, err := render.BindAndValidate[regionRequest](w, r)
	if err != nil {
		return
	}

	region, err := h.catalog.CreateRegion(r.Context(), data.input())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSONWithStatus(w, region, http.StatusCreated)
}

func (h *CatalogHandler) updateRegion(w http.ResponseWriter, r *http.Request) {
	data, err := render.BindAndValidate[regionRequest](w, r)
	if err != nil {
		return
	}

	region, err := h.catalog.UpdateRegion(r.Context(), r.PathValue("slug"), data.input())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	render.JSON(w, region)
}

func (h *CatalogHandler) deleteRegion(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteRegion(r.Context(), r.PathValue("slug")); err != nil {
		h.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		render.ServiceError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrAlreadyExists):
		render.ServiceError(w, "Slug already in use", http.StatusConflict)
	default:
		h.logger.Error("catalog request failed", "error", err.Error())
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}
