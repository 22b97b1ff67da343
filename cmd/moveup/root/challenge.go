package root

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/backend"
	"github.com/yourname/moveup/internal/service"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Clan challenges",
	}
	cmd.AddCommand(newChallengeListCmd(), newChallengeCreateCmd())
	return cmd
}

func newChallengeListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your clan's challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			member := a.state.ClanMember()
			if member == nil {
				return errors.New("you are not in a clan")
			}
			challenges, err := a.client.ListChallenges(cmd.Context(), member.ClanID)
			if err != nil {
				return err
			}

			now := time.Now()
			for _, c := range challenges {
				if !all && !service.ChallengeActive(c, now) {
					continue
				}
				printChallenge(c, now)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include finished challenges")
	return cmd
}

func printChallenge(c internal.Challenge, now time.Time) {
	status := "active"
	if !service.ChallengeActive(c, now) {
		status = "ended"
	}
	fraction := service.ProgressFraction(c.TotalProgress, c.Goal)
	fmt.Printf("%-28s %-10s %s  %.0f/%.0f (%d%%)\n",
		c.ChallengeName, c.DataType, status, c.TotalProgress, c.Goal, int(fraction*100))
}

func newChallengeCreateCmd() *cobra.Command {
	var name, description, dataType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a challenge for your clan (leader only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			member := a.state.ClanMember()
			if member == nil {
				return errors.New("you are not in a clan")
			}
			if member.Role != internal.RoleLeader {
				return errors.New("only the clan leader can create challenges")
			}
			err := a.client.CreateChallenge(cmd.Context(), backend.CreateChallengeRequest{
				ClanID:               member.ClanID,
				DataType:             dataType,
				ChallengeName:        name,
				ChallengeDescription: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Challenge %q created\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Challenge name")
	cmd.Flags().StringVar(&description, "description", "", "Challenge description")
	cmd.Flags().StringVar(&dataType, "datatype", "steps", "Metric the challenge tracks")
	return cmd
}
