package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitlens/internal/apperr"
	"commitlens/internal/config"
	"commitlens/internal/models"
)

var catalog = []config.Repository{
	{Name: "widgets", Owner: "acme", Repo: "widgets", Branch: "main"},
}

func TestValidateSummarizeRequest(t *testing.T) {
	v := New(catalog)

	tests := []struct {
		name     string
		req      *models.SummarizeRequest
		wantKind apperr.Kind
	}{
		{
			name: "single sha is valid",
			req:  &models.SummarizeRequest{Repository: "widgets", SHA: "abc123"},
		},
		{
			name: "range is valid",
			req:  &models.SummarizeRequest{Repository: "widgets", Start: "v1.0", End: "v1.1"},
		},
		{
			name:     "nil request",
			req:      nil,
			wantKind: apperr.KindInvalidRequest,
		},
		{
			name:     "missing repository",
			req:      &models.SummarizeRequest{SHA: "abc123"},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "sha and range together",
			req:      &models.SummarizeRequest{Repository: "widgets", SHA: "abc", Start: "a", End: "b"},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "neither sha nor range",
			req:      &models.SummarizeRequest{Repository: "widgets"},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "range missing end",
			req:      &models.SummarizeRequest{Repository: "widgets", Start: "a"},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "unknown repository",
			req:      &models.SummarizeRequest{Repository: "gizmos", SHA: "abc"},
			wantKind: apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, appErr := v.ValidateSummarizeRequest(tt.req)
			if tt.wantKind == "" {
				require.Nil(t, appErr)
				assert.Equal(t, "widgets", repo.Name)
				return
			}
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantKind, appErr.Kind)
		})
	}
}

func TestValidateTrimsWhitespace(t *testing.T) {
	v := New(catalog)

	req := &models.SummarizeRequest{Repository: "  widgets  ", SHA: " abc123 "}
	repo, appErr := v.ValidateSummarizeRequest(req)

	require.Nil(t, appErr)
	assert.Equal(t, "widgets", repo.Name)
	assert.Equal(t, "abc123", req.SHA)
}
