package backend

import (
	"context"
	"net/http"

	"github.com/yourname/moveup/internal"
)

// FetchBenchmarks returns the user's benchmarks as stored; display ordering
// (createdAt descending) is applied by the session layer.
func (c *Client) FetchBenchmarks(ctx context.Context, userID string) ([]internal.Benchmark, error) {
	var benchmarks []internal.Benchmark
	if err := c.getJSON(ctx, "/api/demographicbenchmark/"+userID, &benchmarks); err != nil {
		return nil, err
	}
	return benchmarks, nil
}

type CreateBenchmarkRequest struct {
	UserID     string  `json:"userId" validate:"required"`
	DataValue  float64 `json:"dataValue"`
	DataTypeID int     `json:"dataTypeId" validate:"required"`
	MinAge     int     `json:"minAge" validate:"gte=0"`
	MaxAge     int     `json:"maxAge" validate:"gtefield=MinAge"`
	TimeFrame  string  `json:"timeFrame" validate:"required"`
	Gender     string  `json:"gender" validate:"required"`
	LocationID int     `json:"locationId"`
}

// CreateBenchmark asks the server to compute and persist a demographic
// comparison for the supplied aggregate value.
func (c *Client) CreateBenchmark(ctx context.Context, req CreateBenchmarkRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/demographicbenchmark", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.serverError(resp)
	}
	return nil
}
