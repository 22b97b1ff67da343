package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/backend"
	"github.com/yourname/moveup/internal/backendtest"
)

func newClient(t *testing.T) (*backend.Client, *backendtest.Server) {
	t.Helper()
	fake := backendtest.New()
	ts := httptest.NewServer(fake.Router())
	t.Cleanup(ts.Close)
	return backend.New(ts.URL, nil, internal.NewNopLogger()), fake
}

func TestLogin_Success(t *testing.T) {
	client, fake := newClient(t)
	fake.Credentials["shawn"] = "secret"
	fake.Identities["shawn"] = internal.Session{UserID: "u1", WalletAddress: "0xabc"}

	sess, err := client.Login(context.Background(), "shawn", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "0xabc", sess.WalletAddress)
}

func TestLogin_FailureSurfacesServerMessage(t *testing.T) {
	client, fake := newClient(t)
	fake.LoginMessage = "Invalid username or password"

	_, err := client.Login(context.Background(), "shawn", "wrong")
	var serverErr *backend.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "Invalid username or password", serverErr.Message)
}

func TestLogin_NonJSONFailureBodyIsGenericServerError(t *testing.T) {
	// A proxy or crashed server may answer with an HTML error page; that
	// must surface as a generic server failure, not a decode failure.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	t.Cleanup(ts.Close)

	client := backend.New(ts.URL, nil, internal.NewNopLogger())
	_, err := client.Login(context.Background(), "shawn", "secret")
	var serverErr *backend.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.StatusCode)
	assert.Equal(t, "login failed", serverErr.Message)
}

func TestLogin_TransportError(t *testing.T) {
	client := backend.New("http://127.0.0.1:1", nil, internal.NewNopLogger())
	_, err := client.Login(context.Background(), "shawn", "secret")
	var transportErr *backend.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestFetchClanByMemberUserID_NotFoundIsDistinguished(t *testing.T) {
	client, _ := newClient(t)
	_, err := client.FetchClanByMemberUserID(context.Background(), "u1")
	assert.ErrorIs(t, err, backend.ErrNotInClan)
}

func TestFetchClanByMemberUserID_Found(t *testing.T) {
	client, fake := newClient(t)
	fake.Member = &internal.ClanMember{MemberID: "m1", UserID: "u1", ClanID: "c1", UserName: "shawn", Role: internal.RoleMember}

	member, err := client.FetchClanByMemberUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "c1", member.ClanID)
}

func TestUploadHealthMetric_NonCreatedStatusIsError(t *testing.T) {
	client, fake := newClient(t)
	fake.FailUploadMetric[1] = true

	err := client.UploadHealthMetric(context.Background(), "u1", internal.HealthMetricSample{
		MetricID:   1,
		Value:      1234,
		RecordedAt: time.Now(),
	})
	var serverErr *backend.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 500, serverErr.StatusCode)

	err = client.UploadHealthMetric(context.Background(), "u1", internal.HealthMetricSample{
		MetricID:   2,
		Value:      300,
		RecordedAt: time.Now(),
	})
	assert.NoError(t, err)
	require.Len(t, fake.Uploads(), 1)
	assert.Equal(t, 2, fake.Uploads()[0].DatatypeID)
}

func TestFetchUserPoints_AbsentFieldIsUnknownNotError(t *testing.T) {
	client, fake := newClient(t)

	points, err := client.FetchUserPoints(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Nil(t, points)

	p := 250
	fake.Points = &p
	points, err = client.FetchUserPoints(context.Background(), "0xabc")
	require.NoError(t, err)
	require.NotNil(t, points)
	assert.Equal(t, 250, *points)
}

func TestFetchTokenBalance_ParsesStringEncodedFloat(t *testing.T) {
	client, fake := newClient(t)
	b := 1.25
	fake.Balance = &b

	balance, err := client.FetchTokenBalance(context.Background(), "0xabc")
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.InDelta(t, 1.25, *balance, 0.0001)
}

func TestFetchPointsHistory_PreservesServerOrder(t *testing.T) {
	client, fake := newClient(t)
	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	// Server happens to return oldest first; the client must not re-sort.
	fake.PointsHistory = []internal.PointsReward{
		{ID: "r1", WalletAddress: "0xabc", Points: 10, Timestamp: older},
		{ID: "r2", WalletAddress: "0xabc", Points: 20, Timestamp: newer},
	}

	history, err := client.FetchPointsHistory(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "r1", history[0].ID)
	assert.Equal(t, "r2", history[1].ID)
	assert.True(t, history[0].Timestamp.Equal(older))
}

func TestConvertPointsToTokens_MessagePassedThroughVerbatim(t *testing.T) {
	client, fake := newClient(t)
	fake.ConvertMessage = "Converted 500 points into 5 MUV tokens"

	message, err := client.ConvertPointsToTokens(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Converted 500 points into 5 MUV tokens", message)

	fake.ConvertStatus = 400
	fake.ConvertMessage = "Nothing to convert"
	_, err = client.ConvertPointsToTokens(context.Background(), "u1")
	var serverErr *backend.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "Nothing to convert", serverErr.Message)
}

func TestCreateClan_ValidatesBeforePosting(t *testing.T) {
	client, fake := newClient(t)
	err := client.CreateClan(context.Background(), backend.CreateClanRequest{Name: "The Dubai Warriors"})
	require.Error(t, err)
	assert.Empty(t, fake.Requests())

	err = client.CreateClan(context.Background(), backend.CreateClanRequest{
		UserID:      "u1",
		Name:        "The Dubai Warriors",
		Description: "Weekend step battles",
		Location:    "Dubai",
	})
	assert.NoError(t, err)
}

func TestFetchUserProfile_DecodesOptionalFields(t *testing.T) {
	client, fake := newClient(t)
	age := 27
	gender := "male"
	fake.Profile = &internal.UserProfile{UserName: "shawn", Age: &age, Gender: &gender}

	profile, err := client.FetchUserProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "shawn", profile.UserName)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 27, *profile.Age)
	assert.Nil(t, profile.Location)
}

func TestListChallenges_DecodesISODates(t *testing.T) {
	client, fake := newClient(t)
	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	fake.Challenges["c1"] = []internal.Challenge{{
		ID: "ch1", ClanID: "c1", ChallengeName: "Steps Challenge",
		DataType: "steps", Goal: 100000, TotalProgress: 75000,
		StartDate: end.AddDate(0, -1, 0), EndDate: end,
	}}

	challenges, err := client.ListChallenges(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, challenges, 1)
	assert.True(t, challenges[0].EndDate.Equal(end))
}

func TestServerError_Message(t *testing.T) {
	err := &backend.ServerError{StatusCode: 500, Message: "boom"}
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, errors.Is(err, backend.ErrNotInClan))
}
