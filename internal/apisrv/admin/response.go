package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	gerr "github.com/jekabolt/retail-dashboard/internal/errors"
)

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrResponse(err error, code int) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     http.StatusText(code),
		ErrorText:      err.Error(),
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return newErrResponse(err, http.StatusBadRequest)
}

// ErrRender maps domain errors to a response. Unknown errors are internal.
func ErrRender(r *http.Request, err error) render.Renderer {
	switch {
	case errors.Is(err, gerr.ErrInvalidDateRange), errors.Is(err, gerr.ErrBadRequest):
		return newErrResponse(err, http.StatusBadRequest)
	case errors.Is(err, gerr.ProductNotFound), errors.Is(err, gerr.OrderNotFound):
		return newErrResponse(err, http.StatusNotFound)
	case errors.Is(err, gerr.ErrAdReportUnavailable), errors.Is(err, gerr.ErrBadAdReport):
		return newErrResponse(err, http.StatusBadGateway)
	default:
		slog.Default().ErrorContext(r.Context(), "internal error",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusInternalServerError,
			StatusText:     http.StatusText(http.StatusInternalServerError),
		}
	}
}

type okResponse struct {
	Status string `json:"status"`
}

func (ok *okResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

var statusOK = &okResponse{Status: "ok"}
