package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jekabolt/retail-dashboard/internal/dto"
)

type ordersDashboardResponse struct {
	*dto.OrdersDashboard
}

func (rd *ordersDashboardResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// getOrdersDashboard handles GET /dashboard/orders?from=&to=.
func (s *Server) getOrdersDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from, to, err := dto.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"), s.loc)
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}

	d, err := s.dashboard.GetOrdersDashboard(ctx, from, to)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get orders dashboard",
			slog.Time("from", from),
			slog.Time("to", to),
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrRender(r, err))
		return
	}

	currency := ""
	if s.rates != nil {
		currency = s.rates.BaseCurrency()
	}
	render.Render(w, r, &ordersDashboardResponse{dto.ConvertEntityOrdersDashboardToDto(d, currency)})
}
