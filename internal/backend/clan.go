package backend

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/moveup/internal"
)

var validate = validator.New()

// FetchClanByMemberUserID looks up the caller's membership record. A 404 is
// the distinguished ErrNotInClan outcome, not a failure.
func (c *Client) FetchClanByMemberUserID(ctx context.Context, userID string) (*internal.ClanMember, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/clanmember/"+userID, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotInClan
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(resp)
	}
	var member internal.ClanMember
	if err := decodeBody(resp, &member); err != nil {
		c.logger.Errorf("failed to decode clan member: %v", err)
		return nil, err
	}
	return &member, nil
}

func (c *Client) FetchClan(ctx context.Context, clanID string) (*internal.Clan, error) {
	var clan internal.Clan
	if err := c.getJSON(ctx, "/api/clan/"+clanID, &clan); err != nil {
		return nil, err
	}
	return &clan, nil
}

func (c *Client) ListClans(ctx context.Context) ([]internal.ClanSummary, error) {
	var clans []internal.ClanSummary
	if err := c.getJSON(ctx, "/api/clan", &clans); err != nil {
		return nil, err
	}
	return clans, nil
}

type CreateClanRequest struct {
	UserID      string `json:"userId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

func (c *Client) CreateClan(ctx context.Context, req CreateClanRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	return c.postJSON(ctx, "/api/clan", req, http.StatusCreated, nil)
}

// SendJoinRequest asks the clan leader to admit userID.
func (c *Client) SendJoinRequest(ctx context.Context, clanID, userID string) error {
	return c.postJSON(ctx, "/api/clan/"+clanID+"/invite/"+userID, nil, http.StatusCreated, nil)
}

func (c *Client) ListJoinRequests(ctx context.Context, clanID string) ([]internal.JoinRequest, error) {
	var reqs []internal.JoinRequest
	if err := c.getJSON(ctx, "/api/clan/"+clanID+"/joinrequest", &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *Client) AcceptJoinRequest(ctx context.Context, requestID string) error {
	return c.postJSON(ctx, "/api/joinrequest/"+requestID+"/accept", nil, http.StatusOK, nil)
}

func (c *Client) DeclineJoinRequest(ctx context.Context, requestID string) error {
	return c.postJSON(ctx, "/api/joinrequest/"+requestID+"/decline", nil, http.StatusOK, nil)
}

func (c *Client) LeaveClan(ctx context.Context, clanID, userID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/clan/"+clanID+"/member/"+userID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.serverError(resp)
	}
	return nil
}
