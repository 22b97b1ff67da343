package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourname/moveup/internal/backend"
	"github.com/yourname/moveup/internal/session"
)

func newRewardsCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show balances and reward history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}

			points, tokens, rate := a.state.Balances()
			fmt.Printf("Points: %s   Tokens: %s   Rate: %s points/token\n",
				formatInt(points), formatFloat(tokens), formatInt(rate))

			switch kind {
			case "points":
				a.state.RefreshRewardHistory(cmd.Context(), backend.RewardPoints)
				for _, r := range a.state.PointsHistory() {
					fmt.Printf("%s  +%d points\n", r.Timestamp.Format("2006-01-02 15:04"), r.Points)
				}
			case "tokens":
				a.state.RefreshRewardHistory(cmd.Context(), backend.RewardTokens)
				for _, r := range a.state.TokenHistory() {
					fmt.Printf("%s  +%d tokens\n", r.Timestamp.Format("2006-01-02 15:04"), r.Tokens)
				}
			case "":
			default:
				return fmt.Errorf("unknown history kind %q (use points or tokens)", kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "history", "", "Show a reward ledger: points or tokens")
	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert points into tokens at the server rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			message, err := a.state.ConvertPoints(cmd.Context())
			if err != nil {
				if errors.Is(err, session.ErrInsufficientPoints) {
					points, _, rate := a.state.Balances()
					return fmt.Errorf("not enough points: have %s, need %s", formatInt(points), formatInt(rate))
				}
				var serverErr *backend.ServerError
				if errors.As(err, &serverErr) && serverErr.Message != "" {
					return errors.New(serverErr.Message)
				}
				return err
			}
			fmt.Println(message)
			return nil
		},
	}
}
