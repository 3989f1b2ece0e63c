package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

func TestStoreKeepsCreationOrderAndDetachesRecords(t *testing.T) {
	store := NewStore()
	n := 0
	store.WithIDGenerator(func() string {
		n++
		return "id-" + strconv.Itoa(n)
	})
	ctx := context.Background()

	order := &domain.Order{ClientName: "Cafe A", Flavor: domain.FlavorPeach, Quantity: 1, Status: domain.StatusPending}
	id, err := store.Create(ctx, order)
	require.NoError(t, err)
	require.Equal(t, "id-1", id)
	require.Empty(t, order.ID)

	_, err = store.Create(ctx, &domain.Order{ClientName: "Cafe B", Status: domain.StatusPending})
	require.NoError(t, err)

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Cafe A", list[0].ClientName)
	require.Equal(t, "Cafe B", list[1].ClientName)

	list[0].Status = domain.StatusCompleted
	again, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, again[0].Status)
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	id, err := store.Create(ctx, &domain.Order{ClientName: "Cafe A", Status: domain.StatusPending, ArrivalDate: domain.ArrivalTBD})
	require.NoError(t, err)

	arrival := "next Tuesday"
	require.NoError(t, store.Update(ctx, id, domain.Patch{ArrivalDate: &arrival}))
	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, arrival, list[0].ArrivalDate)
	require.Equal(t, domain.StatusPending, list[0].Status)

	require.ErrorIs(t, store.Update(ctx, "nope", domain.Patch{ArrivalDate: &arrival}), ports.ErrNotFound)
}

func TestStoreConcurrentCreates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, &domain.Order{ClientName: "Cafe", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 50)
	seen := map[string]bool{}
	for _, o := range list {
		require.False(t, seen[o.ID])
		seen[o.ID] = true
	}
}

func TestStoreReset(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	_, err := store.Create(ctx, &domain.Order{ClientName: "Cafe", Quantity: 1})
	require.NoError(t, err)

	store.Reset()

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestStoreCreateWithPresetIDIsIdempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		id, err := store.Create(ctx, &domain.Order{ID: "fixed-id", ClientName: "Cafe", Quantity: 1})
		require.NoError(t, err)
		require.Equal(t, "fixed-id", id)
	}

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
