package handlers

import (
	"net/http"

	catalogsvc "github.com/boliek/contentsafety/internal/services/catalog"
	"github.com/boliek/contentsafety/internal/transport/http/dto"
	httperrors "github.com/boliek/contentsafety/internal/transport/http/errors"
)

type AdminHandler struct {
	catalog *catalogsvc.Service
}

func NewAdminHandler(catalog *catalogsvc.Service) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// ResetContent puts every content row back into good standing. Complaint
// history survives the reset.
func (h *AdminHandler) ResetContent(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	affected, err := h.catalog.ResetAllContent(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to reset content")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ResetContentResponse{OK: true, RowsReset: affected})
}
