package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"obshook/pkg/hookconfig"
	"obshook/pkg/webhook"
)

// Environment variables set by the invoking build service that identify
// the package being processed.
const (
	envProject = "OBS_SERVICE_PROJECT"
	envPackage = "OBS_SERVICE_PACKAGE"
)

// ParamError reports a required command parameter that was not supplied.
type ParamError struct {
	Name string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Name)
}

// runParams collects the raw command parameters before validation.
type runParams struct {
	RepoURL string
	Branch  string
	Token   string
	Debian  string
	Dumb    string
	Build   string
	Notify  string
	Comment string
}

var (
	runFlags  runParams
	runOutdir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the webhook mapping for the current build package",
	Long: `Reconcile the webhook mapping for the package currently being processed
by the build service.

The project and package identifiers are taken from the OBS_SERVICE_PROJECT
and OBS_SERVICE_PACKAGE environment variables set by the build service; the
repository details come from the service parameters.

If no mapping exists for the package one is created and its hook triggered.
If a mapping exists but differs from the desired state it is updated and the
hook triggered. A mapping that already matches is left alone so no rebuild
is provoked.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.RepoURL, "repourl", "", "Git repository URL the webhook listens for (required)")
	runCmd.Flags().StringVar(&runFlags.Branch, "branch", "", "Branch whose pushes trigger a rebuild (required)")
	runCmd.Flags().StringVar(&runFlags.Token, "token", "", "Filtering token matched against incoming events")
	runCmd.Flags().StringVar(&runFlags.Debian, "debian", "N", "Package is a Debian package (Y/N)")
	runCmd.Flags().StringVar(&runFlags.Dumb, "dumb", "N", "Treat the repository as a dumb storage of tarballs (Y/N)")
	runCmd.Flags().StringVar(&runFlags.Build, "build", "true", "Trigger builds on matching events (true/false)")
	runCmd.Flags().StringVar(&runFlags.Notify, "notify", "true", "Send notifications on mapping actions (true/false)")
	runCmd.Flags().StringVar(&runFlags.Comment, "comment", "", "Free-form comment stored on the mapping")
	runCmd.Flags().StringVar(&runOutdir, "outdir", "", "Output directory passed by the build service (accepted, unused)")
}

func runRun(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	desired, err := desiredMapping(runFlags, settings, os.LookupEnv)
	if err != nil {
		return err
	}

	return reconcile(settings, desired)
}

// reconcile wires up the client and reconciler for the resolved settings
// and runs them against desired. Shared by run and apply.
func reconcile(settings hookconfig.Settings, desired webhook.Mapping) error {
	log := newLogger(settings.Debug)
	client := webhook.NewClient(settings.BaseURL, settings.Username, settings.Password, log)
	reconciler := webhook.NewReconciler(client, log)

	outcome, err := reconciler.Reconcile(context.Background(), desired)
	if err != nil {
		return err
	}

	switch outcome {
	case webhook.OutcomeUnchanged:
		fmt.Printf("✓ Mapping for %s/%s already matches, nothing to do\n", desired.Project, desired.Package)
	case webhook.OutcomeCreated:
		fmt.Printf("✓ Created mapping for %s/%s and triggered the hook\n", desired.Project, desired.Package)
	case webhook.OutcomeUpdated:
		fmt.Printf("✓ Updated mapping for %s/%s and triggered the hook\n", desired.Project, desired.Package)
	case webhook.OutcomeSkipped:
		fmt.Printf("⚠️  Service does not allow mappings for %s/%s, skipping\n", desired.Project, desired.Package)
	}
	return nil
}

// desiredMapping validates the command parameters and build-context
// environment and assembles the desired mapping record.
func desiredMapping(p runParams, settings hookconfig.Settings, lookupEnv func(string) (string, bool)) (webhook.Mapping, error) {
	if strings.TrimSpace(p.RepoURL) == "" {
		return webhook.Mapping{}, &ParamError{Name: "repourl"}
	}
	if strings.TrimSpace(p.Branch) == "" {
		return webhook.Mapping{}, &ParamError{Name: "branch"}
	}

	project, ok := lookupEnv(envProject)
	if !ok || strings.TrimSpace(project) == "" {
		return webhook.Mapping{}, &ParamError{Name: envProject}
	}
	pkg, ok := lookupEnv(envPackage)
	if !ok || strings.TrimSpace(pkg) == "" {
		return webhook.Mapping{}, &ParamError{Name: envPackage}
	}

	debian, err := parseYesNo("debian", p.Debian)
	if err != nil {
		return webhook.Mapping{}, err
	}
	dumb, err := parseYesNo("dumb", p.Dumb)
	if err != nil {
		return webhook.Mapping{}, err
	}
	build, err := parseTrueFalse("build", p.Build)
	if err != nil {
		return webhook.Mapping{}, err
	}
	notify, err := parseTrueFalse("notify", p.Notify)
	if err != nil {
		return webhook.Mapping{}, err
	}

	return webhook.Mapping{
		OBS:     settings.OBS,
		User:    settings.Username,
		RepoURL: strings.TrimSpace(p.RepoURL),
		Branch:  strings.TrimSpace(p.Branch),
		Project: strings.TrimSpace(project),
		Package: strings.TrimSpace(pkg),
		Token:   p.Token,
		Debian:  debian,
		Dumb:    dumb,
		Build:   build,
		Notify:  notify,
		Comment: p.Comment,
	}, nil
}

func parseYesNo(name, value string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "Y":
		return true, nil
	case "N", "":
		return false, nil
	}
	return false, fmt.Errorf("parameter %s must be Y or N, got %q", name, value)
}

func parseTrueFalse(name, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("parameter %s must be true or false, got %q", name, value)
}
