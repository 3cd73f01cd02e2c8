package http

import (
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buildInfo := h.services.AppInfoService.GetBuildInfo(ctx)

	utils.WriteJSON(w, models.HealthResponse{
		Status:      "ok",
		Version:     h.services.AppInfoService.GetAppVersion(ctx),
		BuildDate:   buildInfo.BuildDate(),
		BuildCommit: buildInfo.BuildCommit(),
	}, http.StatusOK)
}
