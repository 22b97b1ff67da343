package session

import (
	"context"
	"errors"
	"sync"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/backend"
	"github.com/yourname/moveup/internal/health"
	"github.com/yourname/moveup/internal/storage"
)

// ErrInsufficientPoints rejects a conversion client-side, before any
// network call, when the cached balance is below the conversion rate.
var ErrInsufficientPoints = errors.New("session: not enough points to convert")

// State is the process-wide state container. All derived data is owned
// here: fetches run on their own goroutines and take the mutex only to
// assign results, so no partially-updated state is ever observable.
//
// A failed fetch leaves the previous cached value in place.
type State struct {
	client   *backend.Client
	provider health.Provider
	sessions storage.SessionRepository
	logger   internal.Logger

	mu            sync.Mutex
	userID        string
	walletAddress string

	profile     *internal.UserProfile
	metricTypes []internal.MetricType

	clanMember  *internal.ClanMember
	clan        *internal.Clan
	clanLoading bool

	userPoints     *int
	tokenBalance   *float64
	pointsPerToken *int

	pointsHistory []internal.PointsReward
	tokenHistory  []internal.TokenReward
	benchmarks    []internal.Benchmark
}

func New(client *backend.Client, provider health.Provider, sessions storage.SessionRepository, logger internal.Logger) *State {
	return &State{
		client:   client,
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *State) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID != ""
}

// Session returns the identity pair, or nil when unauthenticated.
func (s *State) Session() *internal.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil
	}
	return &internal.Session{UserID: s.userID, WalletAddress: s.walletAddress}
}

// Login authenticates, persists the identity pair and runs the refresh
// cascade: profile, then the three independent balance fetches, then the
// clan-membership refresh.
func (s *State) Login(ctx context.Context, username, password string) error {
	sess, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.userID = sess.UserID
	s.walletAddress = sess.WalletAddress
	s.mu.Unlock()

	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Errorf("failed to persist session: %v", err)
	}
	s.refreshCascade(ctx)
	return nil
}

// Restore loads the persisted identity at startup. Both fields present
// implies authenticated and triggers the same cascade as a fresh login.
func (s *State) Restore(ctx context.Context) bool {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		s.logger.Errorf("failed to load persisted session: %v", err)
		return false
	}
	if sess == nil {
		return false
	}

	s.mu.Lock()
	s.userID = sess.UserID
	s.walletAddress = sess.WalletAddress
	s.mu.Unlock()

	s.refreshCascade(ctx)
	return true
}

// Logout clears every derived field in one critical section, so no
// partial-clear state is observable, then drops the persisted identity.
func (s *State) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.userID = ""
	s.walletAddress = ""
	s.profile = nil
	s.metricTypes = nil
	s.clanMember = nil
	s.clan = nil
	s.clanLoading = false
	s.userPoints = nil
	s.tokenBalance = nil
	s.pointsPerToken = nil
	s.pointsHistory = nil
	s.tokenHistory = nil
	s.benchmarks = nil
	s.mu.Unlock()

	return s.sessions.Clear(ctx)
}

// --- Accessors: snapshots taken under the lock ---

func (s *State) Profile() *internal.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *State) MetricTypes() []internal.MetricType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metricTypes
}

func (s *State) ClanMember() *internal.ClanMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clanMember
}

func (s *State) Clan() *internal.Clan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clan
}

func (s *State) ClanLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clanLoading
}

// Balances returns the three independently fetched reward scalars; any of
// them may be nil ("unknown") and callers render a placeholder.
func (s *State) Balances() (points *int, tokens *float64, rate *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userPoints, s.tokenBalance, s.pointsPerToken
}

func (s *State) PointsHistory() []internal.PointsReward {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointsHistory
}

func (s *State) TokenHistory() []internal.TokenReward {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenHistory
}

func (s *State) Benchmarks() []internal.Benchmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.benchmarks
}

func (s *State) currentIdentity() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.walletAddress
}
