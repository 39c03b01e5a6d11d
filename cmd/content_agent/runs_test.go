package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/content-generator/internal/db"
)

func TestPrintRuns(t *testing.T) {
	id := uuid.New()
	runs := []db.Run{
		{
			ID:            id,
			WebsiteURL:    "https://acme.test",
			LeadObjective: "Demo Booking",
			Company:       "Acme",
			Status:        db.StatusCompleted,
			CreatedAt:     time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{ID: uuid.New(), WebsiteURL: "https://beta.test", Status: db.StatusFailed},
	}

	var buf bytes.Buffer
	printRuns(&buf, runs)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], id.String())
	assert.Contains(t, lines[1], "2024-03-01 09:30")
	assert.Contains(t, lines[2], " - ", "missing company prints a dash")
}

func TestRunsDatabase_FlagWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	old := runsDatabaseURL
	defer func() { runsDatabaseURL = old }()

	runsDatabaseURL = "postgres://flag"
	assert.Equal(t, "postgres://flag", runsDatabase())

	runsDatabaseURL = ""
	assert.Equal(t, "postgres://env", runsDatabase())
}
