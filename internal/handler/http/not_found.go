package http

import (
	"net/http"

	"github.com/MKhiriev/budget-keeper/internal/utils"
)

// notFound answers unknown paths and known paths called with an unsupported
// method alike, so a client cannot probe which routes exist.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
