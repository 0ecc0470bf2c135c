package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

type previewRequest struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

type templateContent struct {
	Content string `json:"content"`
}

type templateRename struct {
	Name string `json:"name"`
}

func (h *handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.uc.Template.ListTemplates(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, templates)
}

func (h *handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var input model.TemplateInput
	if err := h.decodeBody(r, "TemplateInput", &input, true); err != nil {
		h.fail(w, r, err)
		return
	}

	tpl, err := h.uc.Template.CreateTemplate(r.Context(), &input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, tpl)
}

func (h *handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.uc.Template.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tpl)
}

func (h *handler) updateTemplateContent(w http.ResponseWriter, r *http.Request) {
	var input templateContent
	if err := h.decodeBody(r, "TemplateContent", &input, false); err != nil {
		h.fail(w, r, err)
		return
	}

	tpl, err := h.uc.Template.UpdateTemplateContent(r.Context(), chi.URLParam(r, "id"), input.Content)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tpl)
}

func (h *handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Template.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) renameTemplate(w http.ResponseWriter, r *http.Request) {
	var input templateRename
	if err := h.decodeBody(r, "TemplateRename", &input, false); err != nil {
		h.fail(w, r, err)
		return
	}

	tpl, err := h.uc.Template.RenameTemplate(r.Context(), chi.URLParam(r, "id"), input.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tpl)
}

func (h *handler) duplicateTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.uc.Template.DuplicateTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, tpl)
}

func (h *handler) resetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.uc.Template.ResetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tpl)
}

func (h *handler) previewContent(w http.ResponseWriter, r *http.Request) {
	var input previewRequest
	if err := h.decodeBody(r, "PreviewRequest", &input, false); err != nil {
		h.fail(w, r, err)
		return
	}

	preview, err := h.uc.Template.PreviewTemplate(r.Context(), input.Content, input.Format == "html")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, preview)
}

func (h *handler) previewTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tpl, err := h.uc.Template.GetTemplate(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	preview, err := h.uc.Template.PreviewTemplate(ctx, tpl.Content, r.URL.Query().Get("format") == "html")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, preview)
}
