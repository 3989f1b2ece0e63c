package sheets

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

// fakeValues emulates a single worksheet. Rows include the header at index 0.
type fakeValues struct {
	rows   [][]any
	getErr error
	writes []map[string]any
}

func (f *fakeValues) Get(_ context.Context, rng string) ([][]any, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a1 := rng[strings.Index(rng, "!")+1:]
	switch a1 {
	case "A1:I1":
		if len(f.rows) == 0 {
			return nil, nil
		}
		return f.rows[:1], nil
	case "A2:I":
		if len(f.rows) < 2 {
			return nil, nil
		}
		return f.rows[1:], nil
	case "A2:A":
		var out [][]any
		for i, row := range f.rows {
			if i == 0 {
				continue
			}
			if len(row) == 0 {
				out = append(out, []any{})
				continue
			}
			out = append(out, row[:1])
		}
		return out, nil
	}
	return nil, errors.New("unexpected range " + rng)
}

func (f *fakeValues) Append(_ context.Context, _ string, rows [][]any) error {
	for _, row := range rows {
		// the real API hands numbers back as formatted strings
		copyRow := make([]any, len(row))
		for i, v := range row {
			if n, ok := v.(int); ok {
				copyRow[i] = strconv.Itoa(n)
				continue
			}
			copyRow[i] = v
		}
		f.rows = append(f.rows, copyRow)
	}
	return nil
}

func (f *fakeValues) Write(_ context.Context, cells map[string]any) error {
	f.writes = append(f.writes, cells)
	for rng, value := range cells {
		a1 := rng[strings.Index(rng, "!")+1:]
		col := int(a1[0] - 'A')
		row, err := strconv.Atoi(a1[1:])
		if err != nil {
			return err
		}
		f.rows[row-1][col] = value
	}
	return nil
}

func newTestStore(values *fakeValues) *Store {
	store := NewStore(values, "")
	n := 0
	store.newID = func() string {
		n++
		return "order-" + strconv.Itoa(n)
	}
	return store
}

func sampleOrder(name string, qty int) *domain.Order {
	return &domain.Order{
		ClientName:  name,
		ClientCode:  "secret",
		Flavor:      domain.FlavorPeach,
		Size:        domain.SizeKeg,
		Quantity:    qty,
		Status:      domain.StatusPending,
		ArrivalDate: domain.ArrivalTBD,
		OrderDate:   time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	}
}

func TestStoreEnsureHeaderWritesOnce(t *testing.T) {
	values := &fakeValues{}
	store := newTestStore(values)
	ctx := context.Background()

	require.NoError(t, store.EnsureHeader(ctx))
	require.NoError(t, store.EnsureHeader(ctx))
	require.Len(t, values.rows, 1)
	require.Equal(t, Header, values.rows[0])
}

func TestStoreCreateAndListAllRoundTrip(t *testing.T) {
	values := &fakeValues{}
	store := newTestStore(values)
	ctx := context.Background()
	require.NoError(t, store.EnsureHeader(ctx))

	id, err := store.Create(ctx, sampleOrder("Cafe A", 3))
	require.NoError(t, err)
	require.Equal(t, "order-1", id)
	_, err = store.Create(ctx, sampleOrder("Cafe B", 7))
	require.NoError(t, err)

	orders, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "order-1", orders[0].ID)
	require.Equal(t, "Cafe A", orders[0].ClientName)
	require.Equal(t, 3, orders[0].Quantity)
	require.Equal(t, domain.FlavorPeach, orders[0].Flavor)
	require.Equal(t, "2024-03-09", orders[0].OrderDate.Format("2006-01-02"))
	require.Equal(t, "Cafe B", orders[1].ClientName)
}

func TestStoreListAllSkipsBlankRows(t *testing.T) {
	values := &fakeValues{rows: [][]any{
		Header,
		{"a", "Cafe", "c", "Berry", "Keg", "2", "Shipped", "2024-04-01", "2024-03-01"},
		{},
		{"b", "Cafe", "c", "Ginger", "24-Pack", "1", "Pending"},
	}}
	orders, err := newTestStore(values).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "", orders[1].ArrivalDate)
	require.True(t, orders[1].OrderDate.IsZero())
}

func TestStoreListAllRejectsBadQuantity(t *testing.T) {
	values := &fakeValues{rows: [][]any{
		Header,
		{"a", "Cafe", "c", "Berry", "Keg", "lots", "Pending", "TBD", "2024-03-01"},
	}}
	_, err := newTestStore(values).ListAll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 2")
}

func TestStoreUpdateWritesOnlyPatchedCells(t *testing.T) {
	values := &fakeValues{}
	store := newTestStore(values)
	ctx := context.Background()
	require.NoError(t, store.EnsureHeader(ctx))
	_, err := store.Create(ctx, sampleOrder("Cafe A", 3))
	require.NoError(t, err)
	id, err := store.Create(ctx, sampleOrder("Cafe B", 4))
	require.NoError(t, err)

	shipped := domain.StatusShipped
	require.NoError(t, store.Update(ctx, id, domain.Patch{Status: &shipped}))
	require.Len(t, values.writes, 1)
	require.Equal(t, map[string]any{"'Orders'!G3": "Shipped"}, values.writes[0])

	orders, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, orders[1].Status)
	require.Equal(t, domain.ArrivalTBD, orders[1].ArrivalDate)
	require.Equal(t, domain.StatusPending, orders[0].Status)
}

func TestStoreUpdateUnknownID(t *testing.T) {
	values := &fakeValues{rows: [][]any{Header}}
	arrival := "2024-05-01"
	err := newTestStore(values).Update(context.Background(), "missing", domain.Patch{ArrivalDate: &arrival})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStorePropagatesReadFailure(t *testing.T) {
	values := &fakeValues{getErr: errors.New("quota exceeded")}
	_, err := newTestStore(values).ListAll(context.Background())
	require.ErrorContains(t, err, "quota exceeded")
}

func TestRangeQuotesWorksheet(t *testing.T) {
	store := NewStore(&fakeValues{}, "Bob's Orders")
	require.Equal(t, "'Bob''s Orders'!A:I", store.rng("A:I"))
}

func TestStoreKeepsCredentialWhitespace(t *testing.T) {
	values := &fakeValues{}
	store := newTestStore(values)
	ctx := context.Background()
	require.NoError(t, store.EnsureHeader(ctx))
	svc := application.NewService(store)

	_, err := svc.SubmitOrder(ctx, ports.SubmitOrderInput{
		ClientName: "Cafe A ",
		ClientCode: " x123",
		Flavor:     domain.FlavorPeach,
		Size:       domain.Size24Pack,
		Quantity:   2,
	})
	require.NoError(t, err)

	exact, err := svc.FindOrdersByCredentials(ctx, "Cafe A ", " x123")
	require.NoError(t, err)
	require.Len(t, exact, 1)
	require.Equal(t, "Cafe A ", exact[0].ClientName)
	require.Equal(t, " x123", exact[0].ClientCode)

	trimmed, err := svc.FindOrdersByCredentials(ctx, "Cafe A", "x123")
	require.NoError(t, err)
	require.Empty(t, trimmed)
}

func TestStoreCreateWithPresetIDAppendsOnce(t *testing.T) {
	values := &fakeValues{}
	store := newTestStore(values)
	ctx := context.Background()
	require.NoError(t, store.EnsureHeader(ctx))

	order := sampleOrder("Cafe A", 3)
	order.ID = "fixed-id"
	for i := 0; i < 2; i++ {
		id, err := store.Create(ctx, order)
		require.NoError(t, err)
		require.Equal(t, "fixed-id", id)
	}

	orders, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "fixed-id", orders[0].ID)
}
