package cmd

import (
	"errors"
	"testing"

	"obshook/pkg/hookconfig"
)

func testSettings() hookconfig.Settings {
	return hookconfig.Settings{
		BaseURL:  "https://webhooks.example.org/api",
		Username: "alice",
		Password: "secret",
		OBS:      "build.example.org",
	}
}

func buildEnv() func(string) (string, bool) {
	values := map[string]string{
		"OBS_SERVICE_PROJECT": "home:alice:devel",
		"OBS_SERVICE_PACKAGE": "mypkg",
	}
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func defaultParams() runParams {
	return runParams{
		RepoURL: "https://x/y.git",
		Branch:  "main",
		Debian:  "N",
		Dumb:    "N",
		Build:   "true",
		Notify:  "true",
	}
}

func TestDesiredMapping_Defaults(t *testing.T) {
	desired, err := desiredMapping(defaultParams(), testSettings(), buildEnv())
	if err != nil {
		t.Fatalf("desiredMapping failed: %v", err)
	}

	if desired.OBS != "build.example.org" {
		t.Errorf("Expected OBS from settings, got %s", desired.OBS)
	}
	if desired.User != "alice" {
		t.Errorf("Expected User from settings, got %s", desired.User)
	}
	if desired.Project != "home:alice:devel" || desired.Package != "mypkg" {
		t.Errorf("Expected build context from environment, got %s/%s", desired.Project, desired.Package)
	}
	if desired.Debian || desired.Dumb {
		t.Error("Expected debian and dumb to default to false")
	}
	if !desired.Build || !desired.Notify {
		t.Error("Expected build and notify to default to true")
	}
	if desired.Token != "" || desired.Comment != "" {
		t.Error("Expected token and comment to default to empty")
	}
}

func TestDesiredMapping_MissingRepoURL(t *testing.T) {
	p := defaultParams()
	p.RepoURL = ""

	_, err := desiredMapping(p, testSettings(), buildEnv())

	var paramErr *ParamError
	if !errors.As(err, &paramErr) {
		t.Fatalf("Expected ParamError, got %T: %v", err, err)
	}
	if paramErr.Name != "repourl" {
		t.Errorf("Expected parameter name repourl, got %s", paramErr.Name)
	}
}

func TestDesiredMapping_MissingBranch(t *testing.T) {
	p := defaultParams()
	p.Branch = "   "

	_, err := desiredMapping(p, testSettings(), buildEnv())

	var paramErr *ParamError
	if !errors.As(err, &paramErr) {
		t.Fatalf("Expected ParamError, got %T: %v", err, err)
	}
	if paramErr.Name != "branch" {
		t.Errorf("Expected parameter name branch, got %s", paramErr.Name)
	}
}

func TestDesiredMapping_MissingBuildContext(t *testing.T) {
	noEnv := func(string) (string, bool) { return "", false }

	_, err := desiredMapping(defaultParams(), testSettings(), noEnv)

	var paramErr *ParamError
	if !errors.As(err, &paramErr) {
		t.Fatalf("Expected ParamError, got %T: %v", err, err)
	}
	if paramErr.Name != "OBS_SERVICE_PROJECT" {
		t.Errorf("Expected parameter name OBS_SERVICE_PROJECT, got %s", paramErr.Name)
	}
}

func TestDesiredMapping_YesNoParsing(t *testing.T) {
	p := defaultParams()
	p.Debian = "Y"
	p.Dumb = "y"

	desired, err := desiredMapping(p, testSettings(), buildEnv())
	if err != nil {
		t.Fatalf("desiredMapping failed: %v", err)
	}
	if !desired.Debian || !desired.Dumb {
		t.Error("Expected Y to parse as true for debian and dumb")
	}

	p.Debian = "maybe"
	if _, err := desiredMapping(p, testSettings(), buildEnv()); err == nil {
		t.Error("Expected error for invalid Y/N value")
	}
}

func TestDesiredMapping_TrueFalseParsing(t *testing.T) {
	p := defaultParams()
	p.Build = "false"
	p.Notify = "FALSE"

	desired, err := desiredMapping(p, testSettings(), buildEnv())
	if err != nil {
		t.Fatalf("desiredMapping failed: %v", err)
	}
	if desired.Build || desired.Notify {
		t.Error("Expected false to parse as false for build and notify")
	}

	p.Build = "yes"
	if _, err := desiredMapping(p, testSettings(), buildEnv()); err == nil {
		t.Error("Expected error for invalid true/false value")
	}
}

func TestParamError_Message(t *testing.T) {
	err := &ParamError{Name: "repourl"}
	if err.Error() != "missing required parameter: repourl" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
