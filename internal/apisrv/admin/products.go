package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	gerr "github.com/jekabolt/retail-dashboard/internal/errors"
)

type productRequest struct {
	*entity.ProductInsert
}

func (p *productRequest) Bind(r *http.Request) error {
	if p.ProductInsert == nil {
		return errors.New("missing product fields")
	}
	return p.ValidateProductInsert()
}

type productResponse struct {
	Product *entity.Product `json:"product"`
}

func (rd *productResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func productIdParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad product id %q", gerr.ErrBadRequest, chi.URLParam(r, "id"))
	}
	return id, nil
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := &productRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(ctx, "validation add product request failed",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	id, err := s.products.AddProduct(ctx, data.ProductInsert)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create a product",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrRender(r, err))
		return
	}
	prd, err := s.products.GetProductById(ctx, id)
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.Render(w, r, &productResponse{Product: prd})
}

func (s *Server) getProductById(w http.ResponseWriter, r *http.Request) {
	id, err := productIdParam(r)
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	prd, err := s.products.GetProductById(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, &productResponse{Product: prd})
}

func (s *Server) deleteProductById(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := productIdParam(r)
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	if err := s.products.DeleteProductById(ctx, id); err != nil {
		slog.Default().ErrorContext(ctx, "can't delete product",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrRender(r, err))
		return
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			slog.Default().WarnContext(ctx, "can't invalidate product cache",
				slog.Int("id", id),
				slog.String("err", err.Error()),
			)
		}
	}
	render.Render(w, r, statusOK)
}

func (s *Server) flushProductCache(w http.ResponseWriter, r *http.Request) {
	if err := s.cache.Flush(r.Context()); err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, statusOK)
}
