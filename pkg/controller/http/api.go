package http

import (
	"net/http"

	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var cred model.Credentials
	if err := h.decodeBody(r, "Credentials", &cred, false); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.uc.Auth.Login(r.Context(), &cred)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

func (h *handler) generateReleaseNote(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := h.decodeBody(r, "GenerateRequest", &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	note, err := h.uc.Generate.Generate(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, note)
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.uc.Dashboard.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dashboard)
}
