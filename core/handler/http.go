package handler

import (
	"log/slog"
	"net/http"
)

// HTTP adapts a pipeline handler to a standard http.Handler.
// Rendering errors are passed to errh; a nil errh falls back to a plain
// 500 response.
func HTTP(h HandlerFunc, errh ErrorHandler) http.Handler {
	if errh == nil {
		errh = func(ctx Context, err error) {
			slog.Default().ErrorContext(ctx, "request failed", "error", err)
			http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)
		resp := h(ctx)
		if resp == nil {
			return
		}
		if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
			errh(ctx, err)
		}
	})
}
