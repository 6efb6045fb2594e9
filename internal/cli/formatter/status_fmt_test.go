package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/examplan/internal/contract"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func baseStatus() *contract.StatusResponse {
	return &contract.StatusResponse{
		PlanID:    "plan-1",
		PlanName:  "Bar Exam 2025",
		ShortID:   "BAR25",
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		ExamDate:  time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		RunID:     "0f9d8c7b-0000-0000-0000-000000000000",
		RunStatus: domain.RunSucceeded,
		Diagnostics: domain.RunDiagnostics{
			CoveragePct:   94.5,
			SessionCount:  42,
			StudyDayCount: 61,
			FirstSession:  "2025-01-06",
			LastSession:   "2025-03-28",
			CountsByKind:  map[string]int{"study": 12, "review": 20, "test": 8, "simulation": 2},
		},
		SessionCount:   42,
		CompletedCount: 10,
		SkippedCount:   1,
	}
}

func TestFormatStatus_SucceededRun(t *testing.T) {
	out := FormatStatus(baseStatus())

	assert.Contains(t, out, "BAR EXAM 2025 [BAR25]")
	assert.Contains(t, out, "SUCCEEDED")
	assert.Contains(t, out, "0f9d8c7b")
	assert.Contains(t, out, "61 study days")
	assert.Contains(t, out, "20 review")
	assert.Contains(t, out, "10/42 done, 1 skipped")
}

func TestFormatStatus_FailedRun(t *testing.T) {
	resp := baseStatus()
	resp.RunStatus = domain.RunFailed
	resp.FailureCode = "NO_AVAILABLE_DAYS"
	resp.FailureMsg = "no usable study days between 2025-01-06 and 2025-01-10"
	resp.SessionCount = 0
	resp.Diagnostics = domain.RunDiagnostics{}

	out := FormatStatus(resp)
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "NO_AVAILABLE_DAYS")
	assert.Contains(t, out, "no usable study days")
	assert.NotContains(t, out, "done")
}

func TestFormatStatus_WarningsAndRelaxedBalance(t *testing.T) {
	resp := baseStatus()
	resp.Diagnostics.RelaxedBalance = true
	resp.Diagnostics.Warnings = []string{"session ratio 2.31 exceeds tolerance"}

	out := FormatStatus(resp)
	assert.Contains(t, out, "balance tolerance was relaxed")
	assert.Contains(t, out, "session ratio 2.31 exceeds tolerance")
}

func TestFormatStatus_RunningRunOmitsDiagnostics(t *testing.T) {
	resp := baseStatus()
	resp.RunStatus = domain.RunRunning
	resp.SessionCount = 0

	out := FormatStatus(resp)
	assert.Contains(t, out, "RUNNING")
	assert.NotContains(t, out, "study days")
}
