package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourname/moveup/internal/backend"
)

func newClanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clan",
		Short: "Clan membership and administration",
	}
	cmd.AddCommand(
		newClanShowCmd(),
		newClanSearchCmd(),
		newClanCreateCmd(),
		newClanJoinCmd(),
		newClanLeaveCmd(),
		newClanRequestsCmd(),
	)
	return cmd
}

func newClanShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your clan and its members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			clan := a.state.Clan()
			if clan == nil {
				fmt.Println("You are not a member of any clan")
				return nil
			}
			fmt.Printf("%s: %s (%s)\n", clan.Name, clan.Description, clan.Location)
			for _, m := range clan.Members {
				fmt.Printf("  %-20s %s\n", m.UserName, m.Role)
			}
			return nil
		},
	}
}

func newClanSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "List all clans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			clans, err := a.client.ListClans(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range clans {
				fmt.Printf("%s  %-24s %-20s %d pts\n", c.ID, c.Name, c.Location, c.ChallengePoints)
			}
			return nil
		},
	}
}

func newClanCreateCmd() *cobra.Command {
	var name, description, location string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a clan with yourself as leader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			sess := a.state.Session()
			err := a.client.CreateClan(cmd.Context(), backend.CreateClanRequest{
				UserID:      sess.UserID,
				Name:        name,
				Description: description,
				Location:    location,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Clan %q created\n", name)
			a.state.RefreshClanMembership(cmd.Context())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Clan name")
	cmd.Flags().StringVar(&description, "description", "", "Clan description")
	cmd.Flags().StringVar(&location, "location", "", "Clan location")
	return cmd
}

func newClanJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <clan-id>",
		Short: "Send a join request to a clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			sess := a.state.Session()
			if err := a.client.SendJoinRequest(cmd.Context(), args[0], sess.UserID); err != nil {
				return err
			}
			fmt.Println("Join request sent")
			return nil
		},
	}
}

func newClanLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave your current clan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			if err := a.state.LeaveClan(cmd.Context()); err != nil {
				if errors.Is(err, backend.ErrNotInClan) {
					return errors.New("you are not in a clan")
				}
				return err
			}
			fmt.Println("Left the clan")
			return nil
		},
	}
}

func newClanRequestsCmd() *cobra.Command {
	var accept, decline string

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List or resolve pending join requests (leader only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			if accept != "" {
				if err := a.client.AcceptJoinRequest(cmd.Context(), accept); err != nil {
					return err
				}
				fmt.Println("Request accepted")
				return nil
			}
			if decline != "" {
				if err := a.client.DeclineJoinRequest(cmd.Context(), decline); err != nil {
					return err
				}
				fmt.Println("Request declined")
				return nil
			}

			member := a.state.ClanMember()
			if member == nil {
				return errors.New("you are not in a clan")
			}
			requests, err := a.client.ListJoinRequests(cmd.Context(), member.ClanID)
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Println("No pending join requests")
				return nil
			}
			for _, r := range requests {
				fmt.Printf("%s  %-20s requested %s\n", r.ID, r.UserName, r.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accept, "accept", "", "Accept the join request with this id")
	cmd.Flags().StringVar(&decline, "decline", "", "Decline the join request with this id")
	return cmd
}
