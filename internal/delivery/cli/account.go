package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/DRSN-tech/price-compare/internal/client"
	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/spf13/cobra"
)

func newLoginCmd(d *deps) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := readLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}

			raw, err := d.account.Login(cmd.Context(), usecase.NewLoginReq(username, password))
			if err != nil {
				return err
			}

			session := client.SessionFromToken(raw.AccessToken, raw.TokenType)
			if err := d.sessions.Save(session); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged in as %s\n", username)
			if session.ExpiresAt != nil {
				fmt.Fprintf(out, "Session expires %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "email used to log in")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := d.sessions.Clear(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := d.sessions.Load()
			if err != nil {
				return err
			}
			if session.IsGuest() {
				fmt.Fprintln(cmd.OutOrStdout(), "guest (not logged in)")
				return nil
			}

			user, err := d.account.Me(cmd.Context(), session)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func newRegisterCmd(d *deps) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := readLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}

			user, err := d.account.Register(cmd.Context(), usecase.NewRegisterReq(email, password, name))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s, run `grocer login -u %s` to sign in\n", user.Email, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// requireSession загружает сохранённую сессию; без неё команды со списками не работают.
func requireSession(d *deps) (*domain.Session, error) {
	session, err := d.sessions.Load()
	if err != nil {
		return nil, err
	}
	if session.IsGuest() {
		return nil, e.ErrUnauthorized
	}

	return session, nil
}

func readLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: %v", e.ErrMissingFields, err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
