package backend

import (
	"context"
	"net/http"

	"github.com/yourname/moveup/internal"
)

func (c *Client) ListChallenges(ctx context.Context, clanID string) ([]internal.Challenge, error) {
	var challenges []internal.Challenge
	if err := c.getJSON(ctx, "/api/clan/"+clanID+"/challenges", &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

type CreateChallengeRequest struct {
	ClanID               string `json:"clanId" validate:"required"`
	DataType             string `json:"dataType" validate:"required"`
	ChallengeName        string `json:"challengeName" validate:"required"`
	ChallengeDescription string `json:"challengeDescription" validate:"required"`
}

func (c *Client) CreateChallenge(ctx context.Context, req CreateChallengeRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	return c.postJSON(ctx, "/api/clan/"+req.ClanID+"/challenge", req, http.StatusCreated, nil)
}
