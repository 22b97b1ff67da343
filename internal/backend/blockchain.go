package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/yourname/moveup/internal"
)

// RewardKind selects which history ledger to read.
type RewardKind string

const (
	RewardPoints RewardKind = "points"
	RewardTokens RewardKind = "tokens"
)

// fetchStringField extracts a single string-encoded field out of a JSON
// envelope. An absent or unparseable field is "unknown" (nil, nil) so the
// caller can render a placeholder; only transport and status failures are
// errors.
func (c *Client) fetchStringField(ctx context.Context, path, field string) (*string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(resp)
	}
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.logger.Warnf("unparseable envelope from %s: %v", path, err)
		return nil, nil
	}
	raw, ok := envelope[field]
	if !ok {
		return nil, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, nil
	}
	return &value, nil
}

func (c *Client) FetchUserPoints(ctx context.Context, address string) (*int, error) {
	s, err := c.fetchStringField(ctx, "/api/blockchain/points/"+address, "points")
	if err != nil || s == nil {
		return nil, err
	}
	points, convErr := strconv.Atoi(*s)
	if convErr != nil {
		return nil, nil
	}
	return &points, nil
}

func (c *Client) FetchTokenBalance(ctx context.Context, address string) (*float64, error) {
	s, err := c.fetchStringField(ctx, "/api/blockchain/token-balance/"+address, "balance")
	if err != nil || s == nil {
		return nil, err
	}
	balance, convErr := strconv.ParseFloat(*s, 64)
	if convErr != nil {
		return nil, nil
	}
	return &balance, nil
}

func (c *Client) FetchPointsPerTokenRate(ctx context.Context) (*int, error) {
	s, err := c.fetchStringField(ctx, "/api/blockchain/points-per-token", "pointsPerToken")
	if err != nil || s == nil {
		return nil, err
	}
	rate, convErr := strconv.Atoi(*s)
	if convErr != nil {
		return nil, nil
	}
	return &rate, nil
}

// ConvertPointsToTokens triggers the conversion and returns the server's
// message verbatim. It does not return the updated balances; callers
// re-fetch them afterwards.
func (c *Client) ConvertPointsToTokens(ctx context.Context, userID string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/blockchain/convert/"+userID, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServerError{StatusCode: resp.StatusCode, Message: body.Message}
	}
	return body.Message, nil
}

// FetchPointsHistory returns the ledger in server order; the client never
// re-sorts history.
func (c *Client) FetchPointsHistory(ctx context.Context, address string) ([]internal.PointsReward, error) {
	var history []internal.PointsReward
	if err := c.getJSON(ctx, "/api/blockchain/history/points/"+address, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *Client) FetchTokenHistory(ctx context.Context, address string) ([]internal.TokenReward, error) {
	var history []internal.TokenReward
	if err := c.getJSON(ctx, "/api/blockchain/history/tokens/"+address, &history); err != nil {
		return nil, err
	}
	return history, nil
}
