package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/backend"
)

// refreshCascade runs after login or restore: profile first, then the
// balance fan-out, then the clan-membership refresh. The stages have no
// data dependency on each other; only the clan refresh is internally
// sequential.
func (s *State) refreshCascade(ctx context.Context) {
	s.RefreshProfile(ctx)
	s.RefreshMetricTypes(ctx)
	s.RefreshBalances(ctx)
	s.RefreshClanMembership(ctx)
}

// RefreshProfile replaces the cached profile wholesale on success and
// leaves it untouched on failure.
func (s *State) RefreshProfile(ctx context.Context) {
	userID, _ := s.currentIdentity()
	if userID == "" {
		return
	}
	profile, err := s.client.FetchUserProfile(ctx, userID)
	if err != nil {
		s.logger.Errorf("failed to fetch user profile: %v", err)
		return
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}

func (s *State) RefreshMetricTypes(ctx context.Context) {
	types, err := s.client.FetchMetricTypes(ctx)
	if err != nil {
		s.logger.Errorf("failed to fetch metric types: %v", err)
		return
	}
	s.mu.Lock()
	s.metricTypes = types
	s.mu.Unlock()
}

// RefreshBalances fires the three blockchain scalar fetches concurrently.
// Each one writes a disjoint field, so there is no ordering between them; a
// failed fetch keeps the stale value, while a successful fetch may assign
// nil ("unknown") when the server omitted the field.
func (s *State) RefreshBalances(ctx context.Context) {
	userID, address := s.currentIdentity()
	if userID == "" {
		return
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		points, err := s.client.FetchUserPoints(ctx, address)
		if err != nil {
			s.logger.Errorf("failed to fetch user points: %v", err)
			return
		}
		s.mu.Lock()
		s.userPoints = points
		s.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		balance, err := s.client.FetchTokenBalance(ctx, address)
		if err != nil {
			s.logger.Errorf("failed to fetch token balance: %v", err)
			return
		}
		s.mu.Lock()
		s.tokenBalance = balance
		s.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		rate, err := s.client.FetchPointsPerTokenRate(ctx)
		if err != nil {
			s.logger.Errorf("failed to fetch points-per-token rate: %v", err)
			return
		}
		s.mu.Lock()
		s.pointsPerToken = rate
		s.mu.Unlock()
	}()

	wg.Wait()
}

// RefreshClanMembership is the one intentionally sequential fetch: look up
// the membership record, and only if one exists fetch the full clan it
// references. The loading flag is set before step 1 and cleared exactly
// once, either immediately on the not-in-clan outcome or after step 2
// finishes regardless of its result.
//
// Overlapping refresh triggers are not deduplicated; the flag only guards
// UI flicker.
func (s *State) RefreshClanMembership(ctx context.Context) {
	userID, _ := s.currentIdentity()
	if userID == "" {
		return
	}

	s.mu.Lock()
	s.clanLoading = true
	s.mu.Unlock()

	member, err := s.client.FetchClanByMemberUserID(ctx, userID)
	if errors.Is(err, backend.ErrNotInClan) {
		s.mu.Lock()
		s.clanMember = nil
		s.clan = nil
		s.clanLoading = false
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.logger.Errorf("failed to fetch clan membership: %v", err)
		s.mu.Lock()
		s.clanLoading = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.clanMember = member
	s.mu.Unlock()

	clan, err := s.client.FetchClan(ctx, member.ClanID)
	s.mu.Lock()
	if err != nil {
		s.logger.Errorf("failed to fetch clan %s: %v", member.ClanID, err)
	} else {
		s.clan = clan
	}
	s.clanLoading = false
	s.mu.Unlock()
}

// LeaveClan leaves the current clan and re-runs the membership refresh so
// the cached member/clan records reflect the server.
func (s *State) LeaveClan(ctx context.Context) error {
	userID, _ := s.currentIdentity()
	s.mu.Lock()
	member := s.clanMember
	s.mu.Unlock()
	if member == nil {
		return backend.ErrNotInClan
	}
	if err := s.client.LeaveClan(ctx, member.ClanID, userID); err != nil {
		return err
	}
	s.RefreshClanMembership(ctx)
	return nil
}

// RefreshBenchmarks fetches and orders benchmarks newest-first for display.
func (s *State) RefreshBenchmarks(ctx context.Context) {
	userID, _ := s.currentIdentity()
	if userID == "" {
		return
	}
	benchmarks, err := s.client.FetchBenchmarks(ctx, userID)
	if err != nil {
		s.logger.Errorf("failed to fetch benchmarks: %v", err)
		return
	}
	sortBenchmarksDesc(benchmarks)
	s.mu.Lock()
	s.benchmarks = benchmarks
	s.mu.Unlock()
}

func sortBenchmarksDesc(benchmarks []internal.Benchmark) {
	sort.Slice(benchmarks, func(i, j int) bool {
		return benchmarks[i].CreatedAt.After(benchmarks[j].CreatedAt)
	})
}
