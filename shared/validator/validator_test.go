package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"todos/shared/failure"
	"todos/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name" validate:"required,notblank,max=10"`
	Done *bool  `json:"done" validate:"required"`
	Kind string `json:"kind" validate:"omitempty,oneof=a b"`
}

func boolPtr(b bool) *bool {
	return &b
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    item
		wantErr string
	}{
		{name: "valid", data: item{Name: "milk", Done: boolPtr(false)}},
		{name: "missing name", data: item{Done: boolPtr(true)}, wantErr: "name is required"},
		{name: "blank name", data: item{Name: "   ", Done: boolPtr(true)}, wantErr: "name must not be blank"},
		{name: "name too long", data: item{Name: "abcdefghijk", Done: boolPtr(true)}, wantErr: "name must be at most 10 characters"},
		{name: "missing done", data: item{Name: "milk"}, wantErr: "done is required"},
		{name: "bad kind", data: item{Name: "milk", Done: boolPtr(true), Kind: "c"}, wantErr: "kind must be one of a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("test", "required"))
	assert.Error(t, validator.ValidateVar("", "required"))
	assert.Error(t, validator.ValidateVar(" ", "notblank"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		wantErr  bool
	}{
		{name: "valid JSON", jsonBody: `{"name":"milk","done":false}`},
		{name: "unknown fields are ignored", jsonBody: `{"id":99,"name":"milk","done":true}`},
		{name: "failing rule", jsonBody: `{"name":"","done":false}`, wantErr: true},
		{name: "malformed JSON", jsonBody: `{"name":}`, wantErr: true},
		{name: "empty body", jsonBody: ``, wantErr: true},
		{name: "wrong type", jsonBody: `{"name":"milk","done":"yes"}`, wantErr: true},
		{name: "trailing whitespace", jsonBody: "{\"name\":\"milk\",\"done\":true}\n"},
		{name: "trailing garbage", jsonBody: `{"name":"milk","done":true} garbage`, wantErr: true},
		{name: "second object", jsonBody: `{"name":"milk","done":true}{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data item
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
