package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/yourname/moveup/internal"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against POST /api/login. A 2xx response whose body
// carries a userId field is a success; any other outcome is a failure
// surfaced with the server's message when the body carries one, or a
// generic message when it does not parse at all.
func (c *Client) Login(ctx context.Context, username, password string) (*internal.Session, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Errorf("failed to read login response: %v", err)
		return nil, &TransportError{Err: err}
	}

	var body struct {
		UserID        string `json:"userId"`
		WalletAddress string `json:"walletAddress"`
		Message       string `json:"message"`
	}
	decodeErr := json.Unmarshal(data, &body)

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if decodeErr != nil {
			c.logger.Errorf("failed to decode login response: %v", decodeErr)
			return nil, &DecodeError{Err: decodeErr}
		}
		if body.UserID != "" {
			return &internal.Session{UserID: body.UserID, WalletAddress: body.WalletAddress}, nil
		}
	}

	msg := body.Message
	if msg == "" {
		msg = "login failed"
	}
	return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
}
