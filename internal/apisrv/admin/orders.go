package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/retail-dashboard/internal/entity"
)

type orderRequest struct {
	*entity.OrderNew
}

func (o *orderRequest) Bind(r *http.Request) error {
	if o.OrderNew == nil {
		return errors.New("missing order fields")
	}
	return o.ValidateOrderNew()
}

type orderStatusRequest struct {
	Status entity.OrderStatusName `json:"status"`
}

func (o *orderStatusRequest) Bind(r *http.Request) error {
	if !entity.ValidOrderStatuses[o.Status] {
		return errors.New("unknown order status")
	}
	return nil
}

type trackingRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

func (t *trackingRequest) Bind(r *http.Request) error {
	if t.TrackingNumber == "" {
		return errors.New("tracking_number is required")
	}
	return nil
}

type orderResponse struct {
	Order          *entity.Order `json:"order"`
	TrackingNumber string        `json:"tracking_number,omitempty"`
}

func newOrderResponse(o *entity.Order) *orderResponse {
	return &orderResponse{Order: o, TrackingNumber: o.TrackingNumber.String}
}

func (rd *orderResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := &orderRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(ctx, "validation create order request failed",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	o, err := s.orders.CreateOrder(ctx, data.OrderNew)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create order",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.Render(w, r, newOrderResponse(o))
}

func (s *Server) getOrderByUUID(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetOrderByUUID(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, newOrderResponse(o))
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := &orderStatusRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	uuid := chi.URLParam(r, "uuid")
	if err := s.orders.UpdateOrderStatus(ctx, uuid, data.Status); err != nil {
		slog.Default().ErrorContext(ctx, "can't update order status",
			slog.String("uuid", uuid),
			slog.String("status", string(data.Status)),
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, statusOK)
}

func (s *Server) setTrackingNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := &trackingRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	uuid := chi.URLParam(r, "uuid")
	if err := s.orders.SetTrackingNumber(ctx, uuid, data.TrackingNumber); err != nil {
		slog.Default().ErrorContext(ctx, "can't set tracking number",
			slog.String("uuid", uuid),
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, statusOK)
}
