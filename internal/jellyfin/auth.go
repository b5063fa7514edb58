package jellyfin

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// PromptForAPIKey prompts for a Jellyfin API key with hidden input.
// Used when the desired-state document carries no key and no environment
// override is set.
func PromptForAPIKey() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("no api key configured and stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Jellyfin API key (Dashboard → API Keys): ")
	keyBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read api key: %w", err)
	}

	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return "", fmt.Errorf("api key cannot be empty")
	}
	return key, nil
}
