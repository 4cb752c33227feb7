package doctor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPermissionFixer_CanFix(t *testing.T) {
	tests := []struct {
		name   string
		issues []pathIssue
		want   bool
	}{
		{
			name: "no issues",
			want: false,
		},
		{
			name:   "non-fixable issue",
			issues: []pathIssue{{Path: "/opt/app", Type: "directory", Fixable: false}},
			want:   false,
		},
		{
			name: "mixed issues",
			issues: []pathIssue{
				{Path: "/opt/app", Type: "directory"},
				{Path: "/opt/app/bin", Type: "binary", Fixable: true},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &PermissionFixer{}
			f.setIssues(tt.issues)
			if got := f.CanFix(); got != tt.want {
				t.Errorf("CanFix() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPermissionFixer_Fix(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "app")
	if err := os.WriteFile(bin, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &PermissionFixer{}
	f.setIssues([]pathIssue{
		{Path: bin, Type: "binary", Fixable: true},
		{Path: filepath.Join(dir, "missing"), Type: "binary", Fixable: true},
		{Path: dir, Type: "socket", Fixable: true},
		{Path: dir, Type: "directory", Fixable: false},
	})

	results := f.Fix()
	if len(results) != 3 {
		t.Fatalf("Fix() returned %d results, want 3", len(results))
	}
	if !results[0].Fixed || results[0].Error != nil {
		t.Errorf("results[0] = %+v, want fixed", results[0])
	}
	if results[1].Fixed || results[1].Error == nil {
		t.Errorf("results[1] = %+v, want chmod failure", results[1])
	}
	if results[2].Fixed || results[2].Error == nil {
		t.Errorf("results[2] = %+v, want unknown type failure", results[2])
	}

	info, err := os.Stat(bin)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != targetPerm {
		t.Errorf("mode = %04o, want %04o", info.Mode().Perm(), targetPerm)
	}
}
