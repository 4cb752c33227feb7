package doctor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

func TestRunner_AddCheck(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}

	for _, name := range names {
		check := NewMockCheck(t)
		check.EXPECT().Name().Return(name).Maybe()
		r.AddCheck(check)
	}

	if len(r.Checks()) != len(names) {
		t.Fatalf("Checks() = %d, want %d", len(r.Checks()), len(names))
	}
	for i, want := range names {
		if got := r.Checks()[i].Name(); got != want {
			t.Errorf("Checks()[%d].Name() = %q, want %q", i, got, want)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name         string
		results      []*CheckResult
		wantPassed   int
		wantInfo     int
		wantWarnings int
		wantErrors   int
	}{
		{
			name: "empty runner",
		},
		{
			name:       "single pass",
			results:    []*CheckResult{{Status: SeverityPass}},
			wantPassed: 1,
		},
		{
			name: "mixed severities",
			results: []*CheckResult{
				{Status: SeverityPass},
				{Status: SeverityPass},
				{Status: SeverityInfo},
				{Status: SeverityWarning},
				{Status: SeverityWarning},
				{Status: SeverityError},
			},
			wantPassed:   2,
			wantInfo:     1,
			wantWarnings: 2,
			wantErrors:   1,
		},
		{
			name: "all errors",
			results: []*CheckResult{
				{Status: SeverityError},
				{Status: SeverityError},
			},
			wantErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			for _, result := range tt.results {
				check := NewMockCheck(t)
				check.EXPECT().Run(mock.Anything).Return(result)
				r.AddCheck(check)
			}

			before := time.Now().UTC()
			report := r.Run(context.Background())
			after := time.Now().UTC()

			if report.Timestamp.Before(before) || report.Timestamp.After(after) {
				t.Errorf("Timestamp %v not in [%v, %v]", report.Timestamp, before, after)
			}
			if len(report.Results) != len(tt.results) {
				t.Errorf("Results count = %d, want %d", len(report.Results), len(tt.results))
			}
			want := Summary{
				Passed:   tt.wantPassed,
				Info:     tt.wantInfo,
				Warnings: tt.wantWarnings,
				Errors:   tt.wantErrors,
			}
			if report.Summary != want {
				t.Errorf("Summary = %+v, want %+v", report.Summary, want)
			}
			if report.HasErrors() != (tt.wantErrors > 0) {
				t.Errorf("HasErrors() = %v, want %v", report.HasErrors(), tt.wantErrors > 0)
			}
			if report.HasWarnings() != (tt.wantWarnings > 0) {
				t.Errorf("HasWarnings() = %v, want %v", report.HasWarnings(), tt.wantWarnings > 0)
			}
		})
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestCheckResult_JSON(t *testing.T) {
	data, err := json.Marshal(&CheckResult{Name: "payload", Status: SeverityWarning})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"status":"warning"`) {
		t.Errorf("Marshal() = %s, want status by name", data)
	}
}
