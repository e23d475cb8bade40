package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Server        string
		Username      string
		Password      string
		PasswordStdin bool
		Insecure      bool
		Remember      bool
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and optionally save them",
		Long: `Log into the JIRA server and report the authenticated user.

Values not given as flags are taken from the profile and the
JIRA_ATTACH_* environment variables. With --remember the server,
username and password are written to the profile; the password is
stored encrypted.

Examples:
  # Verify the configured profile
  jira-attach login

  # Save a new profile, reading the password from stdin
  echo "$TOKEN" | jira-attach login --server https://jira.example.com \
      --username alice --password-stdin --remember`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile := c.AppConfig.Profile()
			if opts.Server != "" {
				profile.Server = strings.TrimRight(strings.TrimSpace(opts.Server), "/")
			}
			if opts.Username != "" {
				profile.Username = opts.Username
			}
			if opts.Password != "" {
				profile.Password = opts.Password
			}
			if opts.PasswordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				profile.Password = strings.TrimRight(line, "\r\n")
			}
			if cmd.Flags().Changed("insecure") {
				profile.Insecure = opts.Insecure
			}

			out, err := c.LoginUseCase().Execute(cmd.Context(), usecase.LoginInput{
				Profile:  profile,
				Remember: opts.Remember,
			})
			if err != nil {
				return err
			}

			name := out.User.DisplayName
			if name == "" {
				name = out.User.Name
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", profile.Server, name)
			if opts.Remember {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile to %s\n", c.ConfigManager.Path())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Server, "server", "", "JIRA server URL")
	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Password or API token (prefer --password-stdin)")
	cmd.Flags().BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().BoolVar(&opts.Insecure, "insecure", false, "Skip TLS certificate verification")
	cmd.Flags().BoolVar(&opts.Remember, "remember", false, "Save server, username and password to the profile")

	return cmd
}
