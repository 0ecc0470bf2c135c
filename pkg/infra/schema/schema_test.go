package schema_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/infra/schema"
)

func TestValidator_Validate(t *testing.T) {
	v, err := schema.New(context.Background())
	gt.NoError(t, err)

	tests := []struct {
		name    string
		schema  string
		body    string
		wantErr bool
	}{
		{name: "valid credentials", schema: "Credentials", body: `{"email":"demo@releasegpt.dev","password":"demo1234"}`},
		{name: "missing password", schema: "Credentials", body: `{"email":"demo@releasegpt.dev"}`, wantErr: true},
		{name: "malformed JSON", schema: "Credentials", body: `{"email":`, wantErr: true},
		{name: "empty template input", schema: "TemplateInput", body: `{}`},
		{name: "wrong type", schema: "TemplateInput", body: `{"name":42}`, wantErr: true},
		{name: "generate request", schema: "GenerateRequest", body: `{"project":{"name":"SkyRoute"},"tickets":[{"id":"t","key":"SR-1","title":"x"}],"commits":[]}`},
		{name: "generate without project", schema: "GenerateRequest", body: `{"tickets":[]}`, wantErr: true},
		{name: "commit missing hash", schema: "GenerateRequest", body: `{"project":{"name":"P"},"commits":[{"id":"c","message":"m"}]}`, wantErr: true},
		{name: "sync mode", schema: "ConfigureInput", body: `{"syncMode":"hourly"}`},
		{name: "unset sync mode", schema: "ConfigureInput", body: `{"syncMode":""}`},
		{name: "unknown sync mode", schema: "ConfigureInput", body: `{"syncMode":"weekly"}`, wantErr: true},
		{name: "selection", schema: "Selection", body: `{"tickets":["t-101"],"commits":[]}`},
		{name: "selection with numbers", schema: "Selection", body: `{"tickets":[1]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.schema, []byte(tt.body))
			if tt.wantErr {
				gt.True(t, errors.Is(err, model.ErrInvalidInput))
				return
			}
			gt.NoError(t, err)
		})
	}
}

func TestValidator_UnknownSchema(t *testing.T) {
	v, err := schema.New(context.Background())
	gt.NoError(t, err)

	err = v.Validate("Nope", []byte(`{}`))
	gt.Error(t, err)
	gt.False(t, errors.Is(err, model.ErrInvalidInput))
}

func TestValidator_HasOperation(t *testing.T) {
	v, err := schema.New(context.Background())
	gt.NoError(t, err)

	gt.True(t, v.HasOperation(http.MethodGet, "/api/templates/{id}"))
	gt.True(t, v.HasOperation(http.MethodPost, "/api/connections/{id}/{action}"))
	gt.False(t, v.HasOperation(http.MethodPatch, "/api/templates/{id}"))
	gt.False(t, v.HasOperation(http.MethodGet, "/api/unknown"))
}
