package doctor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/thoreinstein/quail/internal/config"
	"github.com/thoreinstein/quail/internal/integrity"
	"github.com/thoreinstein/quail/internal/manager"
	"github.com/thoreinstein/quail/internal/registrar"
	"github.com/thoreinstein/quail/internal/solution"
	"github.com/thoreinstein/quail/internal/source"
)

type install struct {
	srcDir      string
	installPath string
	reg         *registrar.Receipt
	sol         *solution.Manager
}

func newInstall(t *testing.T, version string) *install {
	t.Helper()
	srcDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(srcDir, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	for rel, content := range map[string]string{"app": "#!/bin/sh\n", "conf/test.txt": "conf\n"} {
		if err := os.WriteFile(filepath.Join(srcDir, filepath.FromSlash(rel)), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	installPath := filepath.Join(t.TempDir(), "app")
	app := registrar.NewApp("app", installPath, "app", "", "", "", false)
	return &install{
		srcDir:      srcDir,
		installPath: installPath,
		reg:         registrar.NewReceipt(app, t.TempDir()),
		sol:         solution.New(source.NewLocal(srcDir, version), installPath),
	}
}

func (in *install) manager(t *testing.T) *manager.Manager {
	t.Helper()
	m, err := manager.New(in.reg, in.sol)
	if err != nil {
		t.Fatalf("manager.New() error = %v", err)
	}
	return m
}

func TestConfigCheck(t *testing.T) {
	valid := &config.Config{
		Version:   config.CurrentVersion,
		Name:      "app",
		Binary:    "app",
		Registrar: "receipt",
		Source:    config.SourceConfig{Type: config.SourceLocal, Path: "/srv/app", Version: "1.0"},
	}
	tests := []struct {
		name string
		cfg  *config.Config
		want Severity
	}{
		{"nil", nil, SeverityError},
		{"invalid", &config.Config{}, SeverityError},
		{"valid", valid, SeverityPass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewConfigCheck(tt.cfg, "quail.yaml").Run(context.Background())
			if got.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", got.Status, tt.want, got.Message)
			}
		})
	}
}

func TestPayloadCheck(t *testing.T) {
	in := newInstall(t, "1.0")
	check := NewPayloadCheck(in.sol)

	if got := check.Run(context.Background()); got.Status != SeverityWarning {
		t.Errorf("before install: Status = %v, want warning", got.Status)
	}

	if _, err := in.sol.Install(context.Background()); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	got := check.Run(context.Background())
	if got.Status != SeverityPass {
		t.Errorf("after install: Status = %v, want pass", got.Status)
	}
	if got.Details["version"] != "1.0" {
		t.Errorf("Details[version] = %v, want 1.0", got.Details["version"])
	}

	if err := os.Remove(filepath.Join(in.installPath, solution.VersionFile)); err != nil {
		t.Fatal(err)
	}
	if got := check.Run(context.Background()); got.Status != SeverityError {
		t.Errorf("without marker: Status = %v, want error", got.Status)
	}
}

func TestRegistrationCheck(t *testing.T) {
	in := newInstall(t, "1.0")
	check := NewRegistrationCheck(in.reg)

	if got := check.Run(context.Background()); got.Status != SeverityWarning {
		t.Errorf("Status = %v, want warning", got.Status)
	}
	if err := in.reg.Register(); err != nil {
		t.Fatal(err)
	}
	if got := check.Run(context.Background()); got.Status != SeverityPass {
		t.Errorf("Status = %v, want pass", got.Status)
	}
}

func TestBinaryCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not checked on Windows")
	}
	in := newInstall(t, "1.0")
	check := NewBinaryCheck(in.reg)

	if got := check.Run(context.Background()); got.Status != SeverityError {
		t.Errorf("missing binary: Status = %v, want error", got.Status)
	}

	if _, err := in.sol.Install(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := check.Run(context.Background())
	if got.Status != SeverityWarning || !got.Fixable {
		t.Fatalf("non-executable: Status = %v, Fixable = %v", got.Status, got.Fixable)
	}
	if !check.CanFix() {
		t.Fatal("CanFix() = false, want true")
	}

	results := check.Fix()
	if len(results) != 1 || !results[0].Fixed {
		t.Fatalf("Fix() = %+v, want one fixed result", results)
	}
	if got := check.Run(context.Background()); got.Status != SeverityPass {
		t.Errorf("after fix: Status = %v, want pass", got.Status)
	}
	if check.CanFix() {
		t.Error("CanFix() after clean run = true, want false")
	}
}

func TestPermissionCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not checked on Windows")
	}
	dir := filepath.Join(t.TempDir(), "app")
	check := NewPermissionCheck(dir)

	if got := check.Run(context.Background()); got.Status != SeverityInfo {
		t.Errorf("missing dir: Status = %v, want info", got.Status)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o777); err != nil {
		t.Fatal(err)
	}
	if got := check.Run(context.Background()); got.Status != SeverityWarning {
		t.Fatalf("world-writable: Status = %v, want warning", got.Status)
	}
	for _, r := range check.Fix() {
		if r.Error != nil {
			t.Fatalf("Fix() error = %v", r.Error)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode after fix = %04o, want 0755", info.Mode().Perm())
	}
}

func TestIntegrityCheck(t *testing.T) {
	in := newInstall(t, "1.0")
	manifest, err := integrity.Build(in.srcDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := integrity.Save(filepath.Join(in.srcDir, integrity.ManifestName), manifest); err != nil {
		t.Fatal(err)
	}

	if got := NewIntegrityCheck(in.installPath, false).Run(context.Background()); got.Status != SeverityInfo {
		t.Errorf("disabled: Status = %v, want info", got.Status)
	}

	check := NewIntegrityCheck(in.installPath, true)
	if got := check.Run(context.Background()); got.Status != SeverityInfo {
		t.Errorf("not installed: Status = %v, want info", got.Status)
	}

	if _, err := in.sol.Install(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := check.Run(context.Background()); got.Status != SeverityPass {
		t.Errorf("clean: Status = %v, want pass (%s)", got.Status, got.Message)
	}

	target := filepath.Join(in.installPath, "conf", "test.txt")
	if err := os.WriteFile(target, []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := check.Run(context.Background())
	if got.Status != SeverityError {
		t.Fatalf("tampered: Status = %v, want error", got.Status)
	}
	files, _ := got.Details["files"].([]string)
	if len(files) != 1 || files[0] != "conf/test.txt" {
		t.Errorf("Details[files] = %v, want [conf/test.txt]", got.Details["files"])
	}
}

func TestVersionCheck(t *testing.T) {
	in := newInstall(t, "1.0")
	m := in.manager(t)

	if got := NewVersionCheck(m).Run(context.Background()); got.Status != SeverityInfo {
		t.Errorf("not installed: Status = %v, want info", got.Status)
	}
	if err := m.InstallSolution(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := NewVersionCheck(m).Run(context.Background()); got.Status != SeverityPass {
		t.Errorf("installed: Status = %v, want pass", got.Status)
	}

	newer, err := manager.New(in.reg, solution.New(source.NewLocal(in.srcDir, "1.1"), in.installPath))
	if err != nil {
		t.Fatal(err)
	}
	got := NewVersionCheck(newer).Run(context.Background())
	if got.Status != SeverityInfo {
		t.Errorf("newer source: Status = %v, want info", got.Status)
	}
	if got.Details["status"] != manager.Upgrade.String() {
		t.Errorf("Details[status] = %v, want %q", got.Details["status"], manager.Upgrade.String())
	}
	if got.Details["installed"] != "1.0" {
		t.Errorf("Details[installed] = %v, want 1.0", got.Details["installed"])
	}
}

func TestVersionCheck_UnreadableMarker(t *testing.T) {
	in := newInstall(t, "1.0")
	m := in.manager(t)
	if err := os.MkdirAll(filepath.Join(in.installPath, solution.VersionFile), 0o755); err != nil {
		t.Fatal(err)
	}

	got := NewVersionCheck(m).Run(context.Background())
	if got.Status != SeverityWarning {
		t.Errorf("Status = %v, want warning", got.Status)
	}
}
