package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var saveCredentials bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify Spotify API credentials",
	Long: `Verify Spotify API credentials by requesting an access token.

Credentials are read from the environment, a .env file or the config
file. If none are found you'll be prompted for them.

With --save, working credentials are written to
~/.config/soundstats/config.yaml.

You can create credentials at: https://developer.spotify.com/dashboard`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().BoolVar(&saveCredentials, "save", false, "Save credentials to the config file")
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	e, err := loadEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(os.Stdin)

	// Prompt for client ID if not set
	if e.cfg.Spotify.ClientID == "" {
		fmt.Fprint(out, "Enter your Spotify Client ID: ")
		id, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client id: %w", err)
		}
		e.cfg.Spotify.ClientID = strings.TrimSpace(id)
	}

	// Prompt for client secret if not set
	if e.cfg.Spotify.ClientSecret == "" {
		fmt.Fprint(out, "Enter your Spotify Client Secret: ")
		secret, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
		e.cfg.Spotify.ClientSecret = strings.TrimSpace(secret)
	}

	if err := e.login(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Authenticated as client %s\n", maskSecret(e.cfg.Spotify.ClientID))

	if saveCredentials {
		path, err := e.cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Credentials saved to %s\n", path)
	}

	return nil
}

// maskSecret keeps the first and last four characters of s.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}
