// Package authcmder provides the auth command for storing API tokens.
package authcmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/vidgen/pkg/cliui"
	"github.com/papercomputeco/vidgen/pkg/config"
	"github.com/papercomputeco/vidgen/pkg/credentials"
)

const authLongDesc string = `Store bearer tokens for video generation endpoints.

Tokens are stored per endpoint host in credentials.toml in the .vidgen/
directory, readable only by you. A stored token is used when neither
--token nor VIDGEN_API_TOKEN is given, and takes precedence over
api.token in config.toml.

Without an argument the configured api.endpoint is used.

Examples:
  vidgen auth                                Prompt for the configured endpoint
  vidgen auth https://api.example.com/v1     Prompt for a specific endpoint
  vidgen auth --list                         List hosts with stored tokens
  vidgen auth --remove api.example.com       Remove a stored token
  echo $TOKEN | vidgen auth                  Pipe the token from stdin`

const authShortDesc string = "Store API tokens per endpoint"

func NewAuthCmd() *cobra.Command {
	var listFlag bool
	var removeFlag string

	cmd := &cobra.Command{
		Use:   "auth [endpoint]",
		Short: authShortDesc,
		Long:  authLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			switch {
			case listFlag:
				return runList(cmd, configDir)
			case removeFlag != "":
				return runRemove(cmd, removeFlag, configDir)
			default:
				endpoint := ""
				if len(args) == 1 {
					endpoint = args[0]
				}
				return runAuth(cmd, endpoint, configDir)
			}
		},
	}

	cmd.Flags().BoolVar(&listFlag, "list", false, "List hosts with stored tokens")
	cmd.Flags().StringVar(&removeFlag, "remove", "", "Remove the stored token for a host or endpoint")

	return cmd
}

func runAuth(cmd *cobra.Command, endpoint, configDir string) error {
	if endpoint == "" {
		v, err := config.InitViper(configDir)
		if err != nil {
			return err
		}
		endpoint = v.GetString("api.endpoint")
	}

	host, err := credentials.HostOf(endpoint)
	if err != nil {
		return err
	}

	token, err := readToken(cmd, host)
	if err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.SetToken(host, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Stored token for %s %s\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(host),
		cliui.DimStyle.Render("("+mgr.GetTarget()+")"),
	)
	return nil
}

func runList(cmd *cobra.Command, configDir string) error {
	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	hosts, err := mgr.ListHosts()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(hosts) == 0 {
		fmt.Fprintf(out, "%s No stored tokens.\n", cliui.DimStyle.Render("●"))
		fmt.Fprintln(out, "Use 'vidgen auth [endpoint]' to store one.")
		return nil
	}

	for _, h := range hosts {
		fmt.Fprintf(out, "%s  %s\n", cliui.SuccessMark, cliui.KeyStyle.Render(h))
	}
	return nil
}

func runRemove(cmd *cobra.Command, target, configDir string) error {
	host, err := credentials.HostOf(target)
	if err != nil {
		return err
	}

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.RemoveToken(host); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Removed token for %s\n", cliui.SuccessMark, cliui.KeyStyle.Render(host))
	return nil
}

// readToken reads the first line of piped input, or prompts with hidden
// input when stdin is a terminal.
func readToken(cmd *cobra.Command, host string) (string, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Enter token for %s: ", host)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return string(b), nil
	}

	return firstLine(in)
}

func firstLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return "", errors.New("no input received on stdin")
}
