package market

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/repository"
	"github.com/quizdojo/reward-engine/internal/testing/leaktest"
)

// fakeStore is an in-memory repository.Market with real transactional
// semantics: BeginTx takes the store lock for the lifetime of the
// transaction and Rollback restores a snapshot, so racing claims
// serialize on the same status transition they would in the database.
type fakeStore struct {
	mu        sync.Mutex
	listings  map[uuid.UUID]*domain.Listing
	instances map[uuid.UUID]*domain.RewardInstance
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		listings:  make(map[uuid.UUID]*domain.Listing),
		instances: make(map[uuid.UUID]*domain.RewardInstance),
	}
}

func (s *fakeStore) addInstance(ownerID string) uuid.UUID {
	id := uuid.New()
	s.instances[id] = &domain.RewardInstance{
		ID:           id,
		OwnerUserID:  ownerID,
		DefinitionID: uuid.New(),
		AcquiredAt:   time.Now().UTC(),
	}
	return id
}

func (s *fakeStore) ownerOf(instanceID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instances[instanceID].OwnerUserID
}

func (s *fakeStore) CreateListing(_ context.Context, listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.listings {
		if existing.ListedInstanceID == listing.ListedInstanceID && existing.Status == domain.ListingActive {
			return fmt.Errorf("%w: instance already listed", domain.ErrStateConflict)
		}
	}
	copied := *listing
	s.listings[listing.ID] = &copied
	return nil
}

func (s *fakeStore) GetListing(_ context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (s *fakeStore) GetActiveListings(_ context.Context, limit int) ([]domain.ListingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]domain.ListingView, 0, limit)
	for _, listing := range s.listings {
		if listing.Status == domain.ListingActive && len(views) < limit {
			views = append(views, domain.ListingView{Listing: *listing})
		}
	}
	return views, nil
}

func (s *fakeStore) GetInstanceByID(_ context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[instanceID]
	if !ok {
		return nil, domain.ErrInstanceNotFound
	}
	copied := *inst
	return &copied, nil
}

func (s *fakeStore) BeginTx(_ context.Context) (repository.MarketTx, error) {
	s.mu.Lock()
	tx := &fakeTx{
		store:           s,
		listingStatuses: make(map[uuid.UUID]domain.ListingStatus, len(s.listings)),
		instanceOwners:  make(map[uuid.UUID]string, len(s.instances)),
	}
	for id, listing := range s.listings {
		tx.listingStatuses[id] = listing.Status
	}
	for id, inst := range s.instances {
		tx.instanceOwners[id] = inst.OwnerUserID
	}
	return tx, nil
}

type fakeTx struct {
	store           *fakeStore
	listingStatuses map[uuid.UUID]domain.ListingStatus
	instanceOwners  map[uuid.UUID]string
	closed          bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.store.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	for id, status := range t.listingStatuses {
		t.store.listings[id].Status = status
	}
	for id, owner := range t.instanceOwners {
		t.store.instances[id].OwnerUserID = owner
	}
	t.store.mu.Unlock()
	return nil
}

func (t *fakeTx) GetInstanceForUpdate(_ context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error) {
	inst, ok := t.store.instances[instanceID]
	if !ok {
		return nil, domain.ErrInstanceNotFound
	}
	copied := *inst
	return &copied, nil
}

func (t *fakeTx) LockInstances(_ context.Context, instanceIDs []uuid.UUID) ([]domain.RewardInstance, error) {
	locked := make([]domain.RewardInstance, 0, len(instanceIDs))
	for _, id := range instanceIDs {
		inst, ok := t.store.instances[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrInstanceNotFound, id)
		}
		locked = append(locked, *inst)
	}
	return locked, nil
}

func (t *fakeTx) UpdateInstanceOwner(_ context.Context, instanceID uuid.UUID, ownerUserID string) error {
	inst, ok := t.store.instances[instanceID]
	if !ok {
		return domain.ErrInstanceNotFound
	}
	inst.OwnerUserID = ownerUserID
	return nil
}

func (t *fakeTx) UpdateListingStatusIfActive(_ context.Context, listingID uuid.UUID, status domain.ListingStatus) (int64, error) {
	listing, ok := t.store.listings[listingID]
	if !ok {
		return 0, nil
	}
	if listing.Status != domain.ListingActive {
		return 0, nil
	}
	listing.Status = status
	return 1, nil
}

func TestClaimListing_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	const claimants = 32

	checker := leaktest.NewGoroutineChecker(t)

	store := newFakeStore()
	sellerInstance := store.addInstance("seller-1")

	offered := make(map[string]uuid.UUID, claimants)
	for i := 0; i < claimants; i++ {
		claimantID := fmt.Sprintf("claimant-%d", i)
		offered[claimantID] = store.addInstance(claimantID)
	}

	svc := NewService(store, nil, 0)

	listing, err := svc.ListItem(context.Background(), "seller-1", sellerInstance, "anything shiny")
	require.NoError(t, err)

	results := make(chan error, claimants)
	winners := make(chan string, claimants)

	var start sync.WaitGroup
	start.Add(1)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		claimantID := fmt.Sprintf("claimant-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			start.Wait()
			_, claimErr := svc.ClaimListing(context.Background(), listing.ID, claimantID, offered[claimantID])
			results <- claimErr
			if claimErr == nil {
				winners <- claimantID
			}
		}()
	}
	start.Done()
	wg.Wait()
	close(results)
	close(winners)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrStateConflict):
			conflicts++
		default:
			t.Fatalf("unexpected claim error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one claimant should win")
	assert.Equal(t, claimants-1, conflicts, "every loser should see a state conflict")

	winner := <-winners

	final, err := svc.GetListing(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingClaimed, final.Status)

	// The swap happened exactly once: the winner holds the listed instance,
	// the seller holds the winner's instance, and no loser's inventory moved.
	assert.Equal(t, winner, store.ownerOf(sellerInstance))
	assert.Equal(t, "seller-1", store.ownerOf(offered[winner]))
	for claimantID, instanceID := range offered {
		if claimantID == winner {
			continue
		}
		assert.Equal(t, claimantID, store.ownerOf(instanceID))
	}

	// Every instance still has exactly one owner and the owner set is sane.
	ownersSeen := make(map[string]int)
	store.mu.Lock()
	for _, inst := range store.instances {
		require.NotEmpty(t, inst.OwnerUserID)
		ownersSeen[inst.OwnerUserID]++
	}
	store.mu.Unlock()
	assert.Equal(t, 1, ownersSeen["seller-1"])
	assert.Equal(t, 1, ownersSeen[winner])

	checker.Check(0)
}

func TestClaimListing_RacesWithdrawal(t *testing.T) {
	store := newFakeStore()
	sellerInstance := store.addInstance("seller-1")
	claimantInstance := store.addInstance("claimant-1")

	svc := NewService(store, nil, 0)

	listing, err := svc.ListItem(context.Background(), "seller-1", sellerInstance, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, claimErr := svc.ClaimListing(context.Background(), listing.ID, "claimant-1", claimantInstance)
		errs <- claimErr
	}()
	go func() {
		defer wg.Done()
		_, withdrawErr := svc.WithdrawListing(context.Background(), listing.ID, "seller-1")
		errs <- withdrawErr
	}()
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrStateConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "claim and withdrawal cannot both succeed")
	assert.Equal(t, 1, conflicts)

	final, err := svc.GetListing(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.NotEqual(t, domain.ListingActive, final.Status)

	// Ownership is consistent with whichever transition won.
	if final.Status == domain.ListingClaimed {
		assert.Equal(t, "claimant-1", store.ownerOf(sellerInstance))
		assert.Equal(t, "seller-1", store.ownerOf(claimantInstance))
	} else {
		assert.Equal(t, "seller-1", store.ownerOf(sellerInstance))
		assert.Equal(t, "claimant-1", store.ownerOf(claimantInstance))
	}
}
