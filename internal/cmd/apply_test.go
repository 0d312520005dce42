package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
project: home:alice:devel
package: mypkg
repourl: https://x/y.git
branch: main
token: release
debian: true
build: false
comment: managed by obshook
`)

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest failed: %v", err)
	}

	if m.Project != "home:alice:devel" || m.Package != "mypkg" {
		t.Errorf("Unexpected project/package: %s/%s", m.Project, m.Package)
	}
	if m.RepoURL != "https://x/y.git" || m.Branch != "main" {
		t.Errorf("Unexpected repourl/branch: %s/%s", m.RepoURL, m.Branch)
	}
	if !m.Debian {
		t.Error("Expected debian = true")
	}
	if m.Build == nil || *m.Build {
		t.Error("Expected build = false")
	}
	if m.Notify != nil {
		t.Error("Expected notify to be unset")
	}
}

func TestLoadManifest_BadYAML(t *testing.T) {
	path := writeManifest(t, "repourl: [unclosed")

	if _, err := loadManifest(path); err == nil {
		t.Error("Expected error for malformed manifest")
	}
}

func TestManifestMapping_DefaultsBuildAndNotifyTrue(t *testing.T) {
	m := mappingManifest{
		Project: "home:alice:devel",
		Package: "mypkg",
		RepoURL: "https://x/y.git",
		Branch:  "main",
	}

	noEnv := func(string) (string, bool) { return "", false }
	desired, err := manifestMapping(m, testSettings(), noEnv)
	if err != nil {
		t.Fatalf("manifestMapping failed: %v", err)
	}

	if !desired.Build || !desired.Notify {
		t.Error("Expected build and notify to default to true when omitted")
	}
	if desired.OBS != "build.example.org" || desired.User != "alice" {
		t.Errorf("Expected obs/user from settings, got %s/%s", desired.OBS, desired.User)
	}
}

func TestManifestMapping_BuildContextFromEnvironment(t *testing.T) {
	m := mappingManifest{
		RepoURL: "https://x/y.git",
		Branch:  "main",
	}

	desired, err := manifestMapping(m, testSettings(), buildEnv())
	if err != nil {
		t.Fatalf("manifestMapping failed: %v", err)
	}

	if desired.Project != "home:alice:devel" || desired.Package != "mypkg" {
		t.Errorf("Expected build context from environment, got %s/%s", desired.Project, desired.Package)
	}
}

func TestManifestMapping_MissingProject(t *testing.T) {
	m := mappingManifest{
		RepoURL: "https://x/y.git",
		Branch:  "main",
	}

	noEnv := func(string) (string, bool) { return "", false }
	_, err := manifestMapping(m, testSettings(), noEnv)

	var paramErr *ParamError
	if !errors.As(err, &paramErr) {
		t.Fatalf("Expected ParamError, got %T: %v", err, err)
	}
	if paramErr.Name != "project" {
		t.Errorf("Expected parameter name project, got %s", paramErr.Name)
	}
}

func TestManifestMapping_MissingRepoURL(t *testing.T) {
	m := mappingManifest{Branch: "main"}

	_, err := manifestMapping(m, testSettings(), buildEnv())

	var paramErr *ParamError
	if !errors.As(err, &paramErr) {
		t.Fatalf("Expected ParamError, got %T: %v", err, err)
	}
	if paramErr.Name != "repourl" {
		t.Errorf("Expected parameter name repourl, got %s", paramErr.Name)
	}
}
