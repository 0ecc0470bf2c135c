package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

type connectInput struct {
	ScopesAccepted bool `json:"scopesAccepted"`
}

func (h *handler) listConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := h.uc.Connection.ListConnections(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, conns)
}

func (h *handler) connectionAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	action := chi.URLParam(r, "action")

	var (
		result any
		err    error
	)

	switch action {
	case "test":
		result, err = h.uc.Connection.TestConnection(ctx, id)
	case "sync":
		result, err = h.uc.Connection.SyncConnection(ctx, id)
	case "disconnect":
		result, err = h.uc.Connection.Disconnect(ctx, id)
	case "reconnect":
		result, err = h.uc.Connection.Reconnect(ctx, id)
	case "configure":
		var input model.ConfigureInput
		if err = h.decodeBody(r, "ConfigureInput", &input, false); err == nil {
			result, err = h.uc.Connection.Configure(ctx, id, &input)
		}
	case "connect":
		var input connectInput
		if err = h.decodeBody(r, "ConnectInput", &input, false); err == nil {
			result, err = h.uc.Connection.Connect(ctx, id, input.ScopesAccepted)
		}
	default:
		err = goerr.Wrap(model.ErrNotFound, "unknown connection action", goerr.V("action", action))
	}

	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
