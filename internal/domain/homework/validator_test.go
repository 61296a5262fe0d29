package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func requireSchemaError(t *testing.T, err error, kind SchemaErrorKind, field string) {
	t.Helper()
	require.Error(t, err)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "expected *SchemaError, got %T", err)
	assert.Equal(t, kind, schemaErr.Kind)
	assert.Equal(t, field, schemaErr.Field)
}

func TestValidateResponseRejectsMalformedBodies(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		body      string
		wantKind  SchemaErrorKind
		wantField string
	}{
		{name: "list at top level", body: `[1, 2]`, wantKind: KindNotAMapping},
		{name: "string at top level", body: `"homeworks"`, wantKind: KindNotAMapping},
		{name: "missing homeworks", body: `{"current_date": 1}`, wantKind: KindMissingField, wantField: "homeworks"},
		{name: "missing both reports homeworks", body: `{}`, wantKind: KindMissingField, wantField: "homeworks"},
		{name: "missing current_date", body: `{"homeworks": []}`, wantKind: KindMissingField, wantField: "current_date"},
		{name: "homeworks is string", body: `{"homeworks": "hw", "current_date": 1}`, wantKind: KindWrongType, wantField: "homeworks"},
		{name: "homeworks is number", body: `{"homeworks": 42, "current_date": 1}`, wantKind: KindWrongType, wantField: "homeworks"},
		{name: "homeworks is object", body: `{"homeworks": {"a": 1}, "current_date": 1}`, wantKind: KindWrongType, wantField: "homeworks"},
		{name: "homeworks is null", body: `{"homeworks": null, "current_date": 1}`, wantKind: KindWrongType, wantField: "homeworks"},
		{name: "current_date is string", body: `{"homeworks": [], "current_date": "now"}`, wantKind: KindWrongType, wantField: "current_date"},
		{name: "current_date is fractional", body: `{"homeworks": [], "current_date": 1.5}`, wantKind: KindWrongType, wantField: "current_date"},
		{name: "element is not a mapping", body: `{"homeworks": [{"status": "approved"}, "x"], "current_date": 1}`, wantKind: KindWrongType, wantField: "homeworks[1]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ValidateResponse(decode(t, tc.body))
			assert.Nil(t, resp)
			requireSchemaError(t, err, tc.wantKind, tc.wantField)
		})
	}
}

func TestValidateResponseKeepsOrderAndCursor(t *testing.T) {
	t.Parallel()

	body := `{
		"homeworks": [
			{"homework_name": "hw2", "status": "reviewing"},
			{"homework_name": "hw1", "status": "approved"}
		],
		"current_date": 1700000100
	}`

	resp, err := ValidateResponse(decode(t, body))
	require.NoError(t, err)
	require.Len(t, resp.Homeworks, 2)
	assert.Equal(t, "hw2", resp.Homeworks[0]["homework_name"])
	assert.Equal(t, "hw1", resp.Homeworks[1]["homework_name"])
	assert.Equal(t, int64(1700000100), resp.CurrentDate)
}

func TestValidateResponseAcceptsPlainFloatCursor(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"homeworks":    []any{},
		"current_date": float64(1700000200),
	}
	resp, err := ValidateResponse(raw)
	require.NoError(t, err)
	assert.Empty(t, resp.Homeworks)
	assert.Equal(t, int64(1700000200), resp.CurrentDate)
}

func TestValidateResponseNil(t *testing.T) {
	t.Parallel()

	_, err := ValidateResponse(nil)
	requireSchemaError(t, err, KindNotAMapping, "")
}
