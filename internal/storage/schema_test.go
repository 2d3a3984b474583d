// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package storage_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamside/streamside/internal/storage"
	"github.com/streamside/streamside/pkg/errutil"
)

func TestGenerateSchema(t *testing.T) {
	data, err := storage.GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, storage.SchemaID, schema["$id"])
	assert.Equal(t, "Streamside Session Document", schema["title"])
	assert.Contains(t, schema, "properties")
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantCode string
	}{
		{
			name: "valid document",
			data: `{
				"version": 1,
				"clientId": "01J8ZQ6W8B2N3R4T5V6X7Y8Z9A",
				"savedAt": "2026-08-28T12:00:00Z",
				"session": {"isLoggedIn": false}
			}`,
		},
		{
			name:     "empty input",
			data:     "",
			wantCode: "STORAGE_CORRUPT",
		},
		{
			name:     "not JSON",
			data:     "{nope",
			wantCode: "STORAGE_CORRUPT",
		},
		{
			name:     "wrong field type",
			data:     `{"version":"one","clientId":"x","savedAt":"2026-08-28T12:00:00Z","session":{"isLoggedIn":false}}`,
			wantCode: "STORAGE_CORRUPT",
		},
		{
			name:     "missing session",
			data:     `{"version":1,"clientId":"x","savedAt":"2026-08-28T12:00:00Z"}`,
			wantCode: "STORAGE_CORRUPT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storage.ValidateDocument([]byte(tt.data))
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, tt.wantCode)
		})
	}
}
