package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"obshook/pkg/hookconfig"
	"obshook/pkg/webhook"
)

// mappingManifest is the YAML form of a desired mapping for the apply
// command. Build and Notify are pointers so an omitted key defaults to
// true instead of false.
type mappingManifest struct {
	Project string `yaml:"project"`
	Package string `yaml:"package"`
	RepoURL string `yaml:"repourl"`
	Branch  string `yaml:"branch"`
	Token   string `yaml:"token"`
	Debian  bool   `yaml:"debian"`
	Dumb    bool   `yaml:"dumb"`
	Build   *bool  `yaml:"build"`
	Notify  *bool  `yaml:"notify"`
	Comment string `yaml:"comment"`
}

var applyCmd = &cobra.Command{
	Use:   "apply <manifest.yaml>",
	Short: "Reconcile a webhook mapping described by a YAML manifest",
	Long: `Reconcile a webhook mapping from a YAML manifest instead of service
parameters. Useful for registering mappings by hand or from scripts outside
a build-service run.

Example manifest:

  project: home:alice:devel
  package: mypkg
  repourl: https://git.example.com/alice/mypkg.git
  branch: main
  token: release
  debian: false
  build: true
  notify: true
  comment: managed by obshook

project and package may be omitted when OBS_SERVICE_PROJECT and
OBS_SERVICE_PACKAGE are set in the environment.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func runApply(_ *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	manifest, err := loadManifest(args[0])
	if err != nil {
		return err
	}

	desired, err := manifestMapping(manifest, settings, os.LookupEnv)
	if err != nil {
		return err
	}

	return reconcile(settings, desired)
}

func loadManifest(path string) (mappingManifest, error) {
	var m mappingManifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

// manifestMapping validates a manifest and assembles the desired mapping,
// falling back to the build-context environment for project and package.
func manifestMapping(m mappingManifest, settings hookconfig.Settings, lookupEnv func(string) (string, bool)) (webhook.Mapping, error) {
	if strings.TrimSpace(m.RepoURL) == "" {
		return webhook.Mapping{}, &ParamError{Name: "repourl"}
	}
	if strings.TrimSpace(m.Branch) == "" {
		return webhook.Mapping{}, &ParamError{Name: "branch"}
	}

	project := strings.TrimSpace(m.Project)
	if project == "" {
		if v, ok := lookupEnv(envProject); ok {
			project = strings.TrimSpace(v)
		}
	}
	if project == "" {
		return webhook.Mapping{}, &ParamError{Name: "project"}
	}

	pkg := strings.TrimSpace(m.Package)
	if pkg == "" {
		if v, ok := lookupEnv(envPackage); ok {
			pkg = strings.TrimSpace(v)
		}
	}
	if pkg == "" {
		return webhook.Mapping{}, &ParamError{Name: "package"}
	}

	build := true
	if m.Build != nil {
		build = *m.Build
	}
	notify := true
	if m.Notify != nil {
		notify = *m.Notify
	}

	return webhook.Mapping{
		OBS:     settings.OBS,
		User:    settings.Username,
		RepoURL: strings.TrimSpace(m.RepoURL),
		Branch:  strings.TrimSpace(m.Branch),
		Project: project,
		Package: pkg,
		Token:   m.Token,
		Debian:  m.Debian,
		Dumb:    m.Dumb,
		Build:   build,
		Notify:  notify,
		Comment: m.Comment,
	}, nil
}
