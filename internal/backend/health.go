package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/yourname/moveup/internal"
)

type healthDataPayload struct {
	UserID         string  `json:"userId"`
	DatatypeID     int     `json:"datatypeId"`
	DataValue      float64 `json:"dataValue"`
	RecordedAt     string  `json:"recordedAt"`
	TimeZoneOffset int     `json:"timeZoneOffset"`
}

// UploadHealthMetric posts one aggregated sample. Success is HTTP 201 and
// nothing else; any other status comes back as a ServerError carrying the
// code.
func (c *Client) UploadHealthMetric(ctx context.Context, userID string, sample internal.HealthMetricSample) error {
	payload := healthDataPayload{
		UserID:         userID,
		DatatypeID:     sample.MetricID,
		DataValue:      sample.Value,
		RecordedAt:     sample.RecordedAt.Format(time.RFC3339),
		TimeZoneOffset: sample.TimeZoneOffsetMinutes,
	}
	return c.postJSON(ctx, "/api/healthdata", payload, http.StatusCreated, nil)
}
