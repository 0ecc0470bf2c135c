package http

import (
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

type publishRequest struct {
	TemplateID string   `json:"templateId,omitempty"`
	TicketIDs  []string `json:"ticketIds,omitempty"`
	CommitIDs  []string `json:"commitIds,omitempty"`
}

func (h *handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.uc.Project.ListProjects(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, projects)
}

func (h *handler) createProject(w http.ResponseWriter, r *http.Request) {
	var input model.ProjectInput
	if err := h.decodeBody(r, "ProjectInput", &input, false); err != nil {
		h.fail(w, r, err)
		return
	}

	project, err := h.uc.Project.CreateProject(r.Context(), &input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, project)
}

func (h *handler) resetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.uc.Project.ResetProjects(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, projects)
}

func (h *handler) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.uc.Project.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, project)
}

func (h *handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Project.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listProjectItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Project.ListItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (h *handler) syncProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.uc.Project.SyncProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, project)
}

func (h *handler) getSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := h.uc.Project.GetSelection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sel)
}

func (h *handler) putSelection(w http.ResponseWriter, r *http.Request) {
	var sel model.Selection
	if err := h.decodeBody(r, "Selection", &sel, false); err != nil {
		h.fail(w, r, err)
		return
	}

	saved, err := h.uc.Project.PutSelection(r.Context(), chi.URLParam(r, "id"), &sel)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, saved)
}

// exportProject returns the rendered note as JSON, or as a Markdown file
// attachment when download=1 is given
func (h *handler) exportProject(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.uc.Export.Export(r.Context(), &model.ExportRequest{
		ProjectID:  chi.URLParam(r, "id"),
		TemplateID: query.Get("template"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if query.Get("download") != "1" {
		writeJSON(w, r, http.StatusOK, result)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(result.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(result.Body)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write export body", "error", err)
	}
}

func (h *handler) publishProject(w http.ResponseWriter, r *http.Request) {
	var input publishRequest
	if err := h.decodeBody(r, "PublishRequest", &input, true); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.uc.Export.Publish(r.Context(), &model.ExportRequest{
		ProjectID:  chi.URLParam(r, "id"),
		TemplateID: input.TemplateID,
		TicketIDs:  input.TicketIDs,
		CommitIDs:  input.CommitIDs,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, result)
}

// contentDisposition formats an attachment header. Non-ASCII names are
// encoded as an RFC 2231 filename* parameter.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
