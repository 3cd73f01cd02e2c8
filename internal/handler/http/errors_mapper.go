package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
)

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidDataProvided: {http.StatusBadRequest, app.MsgInvalidDataProvided},
	validators.ErrValidation:       {http.StatusBadRequest, app.MsgInvalidDataProvided},
	ErrInvalidJSON:                 {http.StatusBadRequest, app.MsgInvalidJSON},

	service.ErrWrongCredentials: {http.StatusUnauthorized, app.MsgWrongCredentials},
	service.ErrInvalidToken:     {http.StatusUnauthorized, app.MsgMissingAuthorization},
	ErrNoActorInContext:         {http.StatusUnauthorized, app.MsgMissingAuthorization},
	service.ErrForbidden:        {http.StatusForbidden, app.MsgMissingAdminPermissions},

	store.ErrEmailAlreadyExists: {http.StatusConflict, app.MsgEmailAlreadyRegistered},
	store.ErrNoUserWasFound:     {http.StatusNotFound, app.MsgUserNotFound},
}

func statusFromError(err error) (int, string) {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err once with the request logger and writes the mapped
// status and message.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Debug().Err(err).Int("status", status).Msg(msg)
	}

	utils.WriteMessage(w, message, status)
}
