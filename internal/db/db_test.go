package db

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{StepCampaignGoals, StepCompanyProfile, StepDocumentText, StepGenerationResult}

	seen := map[string]bool{}
	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
		assert.False(t, seen[step], "duplicate step %s", step)
		seen[step] = true
	}
}

func TestSchemaSQL(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS content_runs")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS run_artifacts")
	assert.Contains(t, schemaSQL, "UNIQUE (run_id, step)")
	assert.Equal(t, 2, strings.Count(schemaSQL, "CREATE TABLE"))
}

func TestRunJSON(t *testing.T) {
	run := Run{
		ID:            uuid.New(),
		WebsiteURL:    "https://example.com",
		LeadObjective: "Demo Booking",
		Status:        StatusRunning,
	}

	data, err := json.Marshal(run)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, run.ID.String(), fields["id"])
	assert.Equal(t, "running", fields["status"])
	assert.NotContains(t, fields, "completed_at")
	assert.NotContains(t, fields, "company")
}
