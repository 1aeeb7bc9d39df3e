package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProjectPatch_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		wantDescription   *string
		wantClearDesc     bool
		wantClearArtifact bool
		wantEmpty         bool
	}{
		{
			name:      "empty object",
			body:      `{}`,
			wantEmpty: true,
		},
		{
			name:            "description set",
			body:            `{"description":"text"}`,
			wantDescription: strPtr("text"),
		},
		{
			name:          "description null",
			body:          `{"description":null}`,
			wantClearDesc: true,
		},
		{
			name:              "artifact link null",
			body:              `{"artifact_link": null , "name":"abc"}`,
			wantClearArtifact: true,
		},
		{
			name:      "null name keeps value",
			body:      `{"name":null}`,
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p ProjectPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantDescription, p.Description)
			assert.Equal(t, tt.wantClearDesc, p.ClearDescription)
			assert.Equal(t, tt.wantClearArtifact, p.ClearArtifactLink)
			assert.Equal(t, tt.wantEmpty, p.Empty())
		})
	}
}

func TestProjectPatch_UnmarshalJSON_Invalid(t *testing.T) {
	var p ProjectPatch
	assert.Error(t, json.Unmarshal([]byte(`{"name":1}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`[`), &p))
}

func TestProjectPatch_Apply(t *testing.T) {
	project := &Project{
		Name:         "old",
		Link:         "https://old.io",
		Description:  strPtr("keep"),
		ArtifactLink: strPtr("https://old.io/a.zip"),
	}

	ProjectPatch{Name: strPtr("new"), ClearArtifactLink: true}.Apply(project)

	assert.Equal(t, "new", project.Name)
	assert.Equal(t, "https://old.io", project.Link)
	require.NotNil(t, project.Description)
	assert.Equal(t, "keep", *project.Description)
	assert.Nil(t, project.ArtifactLink)
}

func TestNormalize(t *testing.T) {
	req := ProjectRequest{Name: "  site ", Link: " https://x.io ", ArtifactLink: strPtr(" https://x.io/b ")}
	req.Normalize()
	assert.Equal(t, "site", req.Name)
	assert.Equal(t, "https://x.io", req.Link)
	assert.Equal(t, "https://x.io/b", *req.ArtifactLink)

	patch := ProjectPatch{Name: strPtr("   "), Description: strPtr(" text ")}
	patch.Normalize()
	assert.Equal(t, "", *patch.Name)
	assert.Nil(t, patch.Link)
	assert.Equal(t, " text ", *patch.Description)
}
