package session_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/backend"
	"github.com/yourname/moveup/internal/backendtest"
	"github.com/yourname/moveup/internal/health"
	"github.com/yourname/moveup/internal/session"
	"github.com/yourname/moveup/internal/storage"
)

type fixture struct {
	state    *session.State
	fake     *backendtest.Server
	samples  storage.SampleRepository
	sessions storage.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := internal.NewNopLogger()

	fake := backendtest.New()
	fake.Credentials["shawn"] = "secret"
	fake.Identities["shawn"] = internal.Session{UserID: "u1", WalletAddress: "0xabc"}
	ts := httptest.NewServer(fake.Router())
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	samples, err := storage.NewFileSampleStorage(filepath.Join(dir, "samples.json"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = samples.Close() })

	provider := health.NewStoreProvider(samples, logger)
	require.NoError(t, provider.RequestAuthorization(context.Background()))

	sessions := storage.NewFileSessionStorage(filepath.Join(dir, "session.json"), logger)
	client := backend.New(ts.URL, nil, logger)

	return &fixture{
		state:    session.New(client, provider, sessions, logger),
		fake:     fake,
		samples:  samples,
		sessions: sessions,
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.state.Login(context.Background(), "shawn", "secret"))
}

func requestCount(requests []string, needle string) int {
	n := 0
	for _, r := range requests {
		if r == needle {
			n++
		}
	}
	return n
}

func requestIndex(requests []string, needle string) int {
	for i, r := range requests {
		if r == needle {
			return i
		}
	}
	return -1
}

func TestLoginThenLogoutRestoresEmptyState(t *testing.T) {
	f := newFixture(t)
	age := 27
	f.fake.Profile = &internal.UserProfile{UserName: "shawn", Age: &age}
	f.fake.Member = &internal.ClanMember{MemberID: "m1", UserID: "u1", ClanID: "c1", UserName: "shawn", Role: internal.RoleMember}
	f.fake.Clans["c1"] = internal.Clan{ID: "c1", Name: "The Dubai Warriors"}
	points, rate := 500, 100
	balance := 1.5
	f.fake.Points, f.fake.Rate, f.fake.Balance = &points, &rate, &balance

	f.login(t)

	require.NotNil(t, f.state.Profile())
	require.NotNil(t, f.state.Clan())
	gotPoints, gotTokens, gotRate := f.state.Balances()
	require.NotNil(t, gotPoints)
	require.NotNil(t, gotTokens)
	require.NotNil(t, gotRate)

	require.NoError(t, f.state.Logout(context.Background()))

	assert.Nil(t, f.state.Session())
	assert.False(t, f.state.Authenticated())
	assert.Nil(t, f.state.Profile())
	assert.Nil(t, f.state.ClanMember())
	assert.Nil(t, f.state.Clan())
	assert.False(t, f.state.ClanLoading())
	gotPoints, gotTokens, gotRate = f.state.Balances()
	assert.Nil(t, gotPoints)
	assert.Nil(t, gotTokens)
	assert.Nil(t, gotRate)
	assert.Empty(t, f.state.PointsHistory())
	assert.Empty(t, f.state.TokenHistory())
	assert.Empty(t, f.state.Benchmarks())

	// The persisted identity is gone too.
	sess, err := f.sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRestoreTriggersCascade(t *testing.T) {
	f := newFixture(t)
	f.fake.Profile = &internal.UserProfile{UserName: "shawn"}
	require.NoError(t, f.sessions.Save(context.Background(), &internal.Session{UserID: "u1", WalletAddress: "0xabc"}))

	require.True(t, f.state.Restore(context.Background()))
	assert.True(t, f.state.Authenticated())
	require.NotNil(t, f.state.Profile())
	assert.Equal(t, "shawn", f.state.Profile().UserName)
}

func TestRestoreWithoutPersistedIdentity(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.state.Restore(context.Background()))
	assert.Empty(t, f.fake.Requests())
}

func TestClanRefresh_NotInClanClearsStateAndLoading(t *testing.T) {
	f := newFixture(t)
	// No Member fixture: the lookup 404s.
	f.login(t)

	assert.Nil(t, f.state.ClanMember())
	assert.Nil(t, f.state.Clan())
	assert.False(t, f.state.ClanLoading())

	requests := f.fake.Requests()
	assert.Equal(t, 1, requestCount(requests, "GET /api/clanmember/u1"))
	for _, r := range requests {
		if strings.HasPrefix(r, "GET /api/clan/") {
			t.Fatalf("no clan details request expected after 404, got %s", r)
		}
	}
}

func TestClanRefresh_DetailsFetchedOnceAndAfterMembership(t *testing.T) {
	f := newFixture(t)
	f.fake.Member = &internal.ClanMember{MemberID: "m1", UserID: "u1", ClanID: "c1", UserName: "shawn", Role: internal.RoleLeader}
	f.fake.Clans["c1"] = internal.Clan{ID: "c1", Name: "The Dubai Warriors", Members: []internal.ClanMember{}}

	f.login(t)

	require.NotNil(t, f.state.ClanMember())
	require.NotNil(t, f.state.Clan())
	assert.Equal(t, "The Dubai Warriors", f.state.Clan().Name)
	assert.False(t, f.state.ClanLoading())

	requests := f.fake.Requests()
	assert.Equal(t, 1, requestCount(requests, "GET /api/clan/c1"))
	lookupIdx := requestIndex(requests, "GET /api/clanmember/u1")
	detailsIdx := requestIndex(requests, "GET /api/clan/c1")
	require.GreaterOrEqual(t, lookupIdx, 0)
	require.GreaterOrEqual(t, detailsIdx, 0)
	assert.Less(t, lookupIdx, detailsIdx, "clan details must be requested after the membership response")
}

func TestClanRefresh_LoadingFlagHeldAcrossBothSteps(t *testing.T) {
	f := newFixture(t)
	f.fake.Member = &internal.ClanMember{MemberID: "m1", UserID: "u1", ClanID: "c1", UserName: "shawn", Role: internal.RoleMember}
	f.fake.Clans["c1"] = internal.Clan{ID: "c1", Name: "The Dubai Warriors"}
	f.login(t)

	// Observe the flag from the server side while each lookup is still in
	// flight: it must be set before step 1 replies and still be set before
	// step 2 replies, so it is cleared exactly once, at the very end.
	var mu sync.Mutex
	var observed []bool
	snapshot := func() {
		mu.Lock()
		observed = append(observed, f.state.ClanLoading())
		mu.Unlock()
	}
	f.fake.BeforeClanMemberResponse = snapshot
	f.fake.BeforeClanResponse = snapshot

	f.state.RefreshClanMembership(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []bool{true, true}, observed)
	assert.False(t, f.state.ClanLoading())
}

func TestClanRefresh_DetailsFailureKeepsMemberAndClearsLoading(t *testing.T) {
	f := newFixture(t)
	// Membership references a clan the server does not know: step 2 fails.
	f.fake.Member = &internal.ClanMember{MemberID: "m1", UserID: "u1", ClanID: "ghost", UserName: "shawn", Role: internal.RoleMember}

	f.login(t)

	require.NotNil(t, f.state.ClanMember())
	assert.Nil(t, f.state.Clan())
	assert.False(t, f.state.ClanLoading())
}

func TestConvertPoints_GuardRejectsWithoutNetworkCall(t *testing.T) {
	f := newFixture(t)
	points, rate := 50, 100
	f.fake.Points, f.fake.Rate = &points, &rate
	f.login(t)

	assert.False(t, f.state.CanConvert())
	_, err := f.state.ConvertPoints(context.Background())
	assert.ErrorIs(t, err, session.ErrInsufficientPoints)

	for _, r := range f.fake.Requests() {
		assert.NotContains(t, r, "/api/blockchain/convert/")
	}
}

func TestConvertPoints_SuccessRefetchesBalances(t *testing.T) {
	f := newFixture(t)
	points, rate := 500, 100
	balance := 0.0
	f.fake.Points, f.fake.Rate, f.fake.Balance = &points, &rate, &balance
	f.fake.ConvertMessage = "Converted 500 points into 5 MUV tokens"
	f.login(t)

	require.True(t, f.state.CanConvert())
	message, err := f.state.ConvertPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Converted 500 points into 5 MUV tokens", message)

	requests := f.fake.Requests()
	convertIdx := requestIndex(requests, "POST /api/blockchain/convert/u1")
	require.GreaterOrEqual(t, convertIdx, 0)
	// One fetch from the login cascade, one from the post-convert refresh.
	assert.Equal(t, 2, requestCount(requests, "GET /api/blockchain/points/0xabc"))
	assert.Equal(t, 2, requestCount(requests, "GET /api/blockchain/token-balance/0xabc"))
	assert.Equal(t, 2, requestCount(requests, "GET /api/blockchain/points-per-token"))
}

func seedToday(t *testing.T, samples storage.SampleRepository, metric health.Metric, value float64) {
	t.Helper()
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	require.NoError(t, samples.SaveSample(context.Background(), &internal.RawSample{
		ID:        metric.String(),
		MetricID:  int(metric),
		Value:     value,
		Source:    internal.SourcePlatform,
		StartTime: startOfDay,
		EndTime:   startOfDay,
	}))
}

func TestSyncHealthData_FailureIsolation(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	seedToday(t, f.samples, health.MetricSteps, 12000)
	seedToday(t, f.samples, health.MetricCalories, 480)
	seedToday(t, f.samples, health.MetricRestingHeartRate, 58)
	seedToday(t, f.samples, health.MetricExerciseMinutes, 42)
	seedToday(t, f.samples, health.MetricDistanceKm, 8200)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	require.NoError(t, f.samples.SaveSample(context.Background(), &internal.RawSample{
		ID:        "sleep-core",
		MetricID:  int(health.MetricSleepHours),
		Stage:     internal.SleepStageCore,
		Source:    internal.SourcePlatform,
		StartTime: startOfDay,
		EndTime:   startOfDay.Add(7 * time.Hour),
	}))

	// Steps uploads are rejected server-side; the other five must land.
	f.fake.FailUploadMetric[int(health.MetricSteps)] = true

	f.state.SyncHealthData(context.Background())

	uploaded := map[int]bool{}
	for _, u := range f.fake.Uploads() {
		uploaded[u.DatatypeID] = true
	}
	assert.False(t, uploaded[int(health.MetricSteps)])
	for _, m := range []health.Metric{
		health.MetricCalories,
		health.MetricRestingHeartRate,
		health.MetricSleepHours,
		health.MetricExerciseMinutes,
		health.MetricDistanceKm,
	} {
		assert.True(t, uploaded[int(m)], "expected %s to be uploaded", m)
	}
	// The failing upload was attempted, not silently skipped.
	assert.Equal(t, 6, requestCount(f.fake.Requests(), "POST /api/healthdata"))
}

func TestSyncHealthData_MetricsWithoutDataAreSkipped(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	seedToday(t, f.samples, health.MetricSteps, 4000)

	f.state.SyncHealthData(context.Background())

	uploads := f.fake.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, int(health.MetricSteps), uploads[0].DatatypeID)
	assert.Equal(t, 4000.0, uploads[0].DataValue)
	assert.Equal(t, 1, requestCount(f.fake.Requests(), "POST /api/healthdata"))
}

func TestRefreshRewardHistory_PreservesServerOrder(t *testing.T) {
	f := newFixture(t)
	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	f.fake.TokenHistory = []internal.TokenReward{
		{ID: "t1", WalletAddress: "0xabc", Tokens: 1, Timestamp: older},
		{ID: "t2", WalletAddress: "0xabc", Tokens: 2, Timestamp: newer},
	}
	f.login(t)

	f.state.RefreshRewardHistory(context.Background(), backend.RewardTokens)
	history := f.state.TokenHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "t1", history[0].ID)
}

func TestRefreshBenchmarks_SortsNewestFirst(t *testing.T) {
	f := newFixture(t)
	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	f.fake.Benchmarks = []internal.Benchmark{
		{ID: "b-old", DataTypeID: 1, CreatedAt: older},
		{ID: "b-new", DataTypeID: 1, CreatedAt: newer},
	}
	f.login(t)

	f.state.RefreshBenchmarks(context.Background())
	benchmarks := f.state.Benchmarks()
	require.Len(t, benchmarks, 2)
	assert.Equal(t, "b-new", benchmarks[0].ID)
	assert.Equal(t, "b-old", benchmarks[1].ID)
}

func TestProfileFetchFailureKeepsStaleValue(t *testing.T) {
	f := newFixture(t)
	f.fake.Profile = &internal.UserProfile{UserName: "shawn"}
	f.login(t)
	require.NotNil(t, f.state.Profile())

	// The server forgets the user; the cached profile must survive.
	f.fake.Profile = nil
	f.state.RefreshProfile(context.Background())
	require.NotNil(t, f.state.Profile())
	assert.Equal(t, "shawn", f.state.Profile().UserName)
}
