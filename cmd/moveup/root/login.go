package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("both --username and --password are required")
			}
			if err := a.state.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			sess := a.state.Session()
			fmt.Printf("Logged in as %s (wallet %s)\n", username, sess.WalletAddress)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "MoveUp username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "MoveUp password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.state.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, profile and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			sess := a.state.Session()
			fmt.Printf("User ID: %s\nWallet:  %s\n", sess.UserID, sess.WalletAddress)

			if profile := a.state.Profile(); profile != nil {
				fmt.Printf("Name:    %s\n", profile.UserName)
			}

			points, tokens, rate := a.state.Balances()
			fmt.Printf("Points:  %s\n", formatInt(points))
			fmt.Printf("Tokens:  %s\n", formatFloat(tokens))
			fmt.Printf("Rate:    %s points per token\n", formatInt(rate))

			if member := a.state.ClanMember(); member != nil {
				if clan := a.state.Clan(); clan != nil {
					fmt.Printf("Clan:    %s (%s)\n", clan.Name, member.Role)
				}
			} else {
				fmt.Println("Clan:    none")
			}
			return nil
		},
	}
}

func formatInt(v *int) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.4f", *v)
}
