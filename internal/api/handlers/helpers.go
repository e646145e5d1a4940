package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/utils"
)

// writeServiceError maps a service-layer error to an API response.
// Unknown errors never leak their internals to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("Something went wrong", err))
}
