package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"obshook/pkg/hookconfig"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the user configuration file",
	Long:  "Interactively create ~/.obs/webhook with the webhook service credentials and endpoint",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func runInit(_ *cobra.Command, _ []string) error {
	path, err := hookconfig.UserPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("configuration file already exists at %s, use --force to overwrite", path)
	}

	reader := bufio.NewReader(os.Stdin)

	user, err := promptLine(reader, "Webhook service username")
	if err != nil {
		return err
	}
	passwd, err := promptPassword("Webhook service password")
	if err != nil {
		return err
	}
	obs, err := promptLine(reader, "OBS instance alias (e.g. build.example.org)")
	if err != nil {
		return err
	}
	baseURL, err := promptLine(reader, "Webhook service API URL (e.g. https://webhooks.example.org/api)")
	if err != nil {
		return err
	}

	content := fmt.Sprintf("%s=%s\n%s=%s\n%s=%s\n%s=%s\n",
		hookconfig.KeyUser, user,
		hookconfig.KeyPasswd, passwd,
		hookconfig.KeyOBS, obs,
		hookconfig.KeyURL, baseURL,
	)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("✅ Configuration file created at: %s\n", path)
	return nil
}

func promptLine(reader *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
