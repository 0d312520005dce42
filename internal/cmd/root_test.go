package cmd

import "testing"

func TestRootCommandSubcommands(t *testing.T) {
	want := map[string]bool{"run": false, "apply": false, "init": false}

	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("Expected subcommand %s to be registered", name)
		}
	}
}

func TestRunCommandFlagDefaults(t *testing.T) {
	cases := map[string]string{
		"repourl": "",
		"branch":  "",
		"token":   "",
		"debian":  "N",
		"dumb":    "N",
		"build":   "true",
		"notify":  "true",
		"comment": "",
		"outdir":  "",
	}

	for name, def := range cases {
		flag := runCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("Expected flag --%s to exist", name)
			continue
		}
		if flag.DefValue != def {
			t.Errorf("Expected --%s default %q, got %q", name, def, flag.DefValue)
		}
	}
}
