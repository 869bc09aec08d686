// Package respond writes JSON bodies and maps domain errors to status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status its kind implies. Invalid input wins over
// not found. Unknown errors are logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, category.ErrInvalid),
		errors.Is(err, transaction.ErrInvalid),
		errors.Is(err, transaction.ErrFutureDate),
		errors.Is(err, transaction.ErrCategoryTypeMismatch),
		errors.Is(err, budget.ErrInvalid),
		errors.Is(err, period.ErrInvalidSelection),
		errors.Is(err, importer.ErrNoHeader),
		errors.Is(err, importer.ErrInvalidRow):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, category.ErrNotFound),
		errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, budget.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, category.ErrInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
