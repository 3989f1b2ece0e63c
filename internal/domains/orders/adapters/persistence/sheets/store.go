package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

var _ ports.Store = (*Store)(nil)

// DefaultWorksheet is the tab holding order rows.
const DefaultWorksheet = "Orders"

const dateLayout = "2006-01-02"

// Header is the first row of the worksheet. Data starts on row 2.
var Header = []any{"ID", "Client Name", "Client Code", "Flavor", "Size", "Quantity", "Status", "Arrival Date", "Order Date"}

// Column letters for the admin-editable cells.
const (
	statusColumn  = "G"
	arrivalColumn = "H"
)

// ValuesAPI is the slice of the Sheets values API the store needs.
type ValuesAPI interface {
	Get(ctx context.Context, rng string) ([][]any, error)
	Append(ctx context.Context, rng string, rows [][]any) error
	Write(ctx context.Context, cells map[string]any) error
}

// Store keeps orders as rows of a Google Sheets worksheet, one order per row
// in submission order.
type Store struct {
	values    ValuesAPI
	worksheet string
	newID     func() string
	// serializes read-modify-write on Update within this process
	mu sync.Mutex
}

// NewStore binds the store to a worksheet. Empty worksheet uses DefaultWorksheet.
func NewStore(values ValuesAPI, worksheet string) *Store {
	if strings.TrimSpace(worksheet) == "" {
		worksheet = DefaultWorksheet
	}
	return &Store{values: values, worksheet: worksheet, newID: uuid.NewString}
}

// EnsureHeader writes the header row when the worksheet is blank.
func (s *Store) EnsureHeader(ctx context.Context) error {
	rows, err := s.values.Get(ctx, s.rng("A1:I1"))
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		return nil
	}
	return s.values.Append(ctx, s.rng("A1:I1"), [][]any{Header})
}

func (s *Store) Create(ctx context.Context, order *domain.Order) (string, error) {
	if order == nil {
		return "", errors.New("order is nil")
	}
	id := order.ID
	if id == "" {
		id = s.newID()
	} else {
		s.mu.Lock()
		defer s.mu.Unlock()
		rowNum, err := s.findRow(ctx, id)
		if err != nil {
			return "", err
		}
		if rowNum > 0 {
			return id, nil
		}
	}
	row := toRow(order)
	row[0] = id
	if err := s.values.Append(ctx, s.rng("A:I"), [][]any{row}); err != nil {
		return "", fmt.Errorf("append order row: %w", err)
	}
	return id, nil
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.Order, error) {
	rows, err := s.values.Get(ctx, s.rng("A2:I"))
	if err != nil {
		return nil, fmt.Errorf("read order rows: %w", err)
	}
	orders := make([]*domain.Order, 0, len(rows))
	for i, row := range rows {
		if blank(row) {
			continue
		}
		order, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Update locates the row by id and overwrites only the patched cells.
func (s *Store) Update(ctx context.Context, id string, patch domain.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rowNum, err := s.findRow(ctx, id)
	if err != nil {
		return err
	}
	if rowNum == 0 {
		return ports.ErrNotFound
	}
	if patch.Empty() {
		return nil
	}
	cells := make(map[string]any, 2)
	if patch.Status != nil {
		cells[s.rng(fmt.Sprintf("%s%d", statusColumn, rowNum))] = string(*patch.Status)
	}
	if patch.ArrivalDate != nil {
		cells[s.rng(fmt.Sprintf("%s%d", arrivalColumn, rowNum))] = *patch.ArrivalDate
	}
	if err := s.values.Write(ctx, cells); err != nil {
		return fmt.Errorf("write order row %d: %w", rowNum, err)
	}
	return nil
}

// findRow returns the sheet row number holding id, or 0.
func (s *Store) findRow(ctx context.Context, id string) (int, error) {
	ids, err := s.values.Get(ctx, s.rng("A2:A"))
	if err != nil {
		return 0, fmt.Errorf("read order ids: %w", err)
	}
	for i, row := range ids {
		if trimmedCell(row, 0) == id {
			return i + 2, nil
		}
	}
	return 0, nil
}

func (s *Store) rng(a1 string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(s.worksheet, "'", "''"), a1)
}

func toRow(order *domain.Order) []any {
	return []any{
		order.ID,
		order.ClientName,
		order.ClientCode,
		string(order.Flavor),
		string(order.Size),
		order.Quantity,
		string(order.Status),
		order.ArrivalDate,
		order.OrderDate.Format(dateLayout),
	}
}

func fromRow(row []any) (*domain.Order, error) {
	quantity, err := strconv.Atoi(trimmedCell(row, 5))
	if err != nil {
		return nil, fmt.Errorf("quantity %q: %w", cell(row, 5), err)
	}
	var orderDate time.Time
	if raw := trimmedCell(row, 8); raw != "" {
		orderDate, err = time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("order date %q: %w", raw, err)
		}
	}
	return &domain.Order{
		ID:          trimmedCell(row, 0),
		ClientName:  cell(row, 1),
		ClientCode:  cell(row, 2),
		Flavor:      domain.Flavor(cell(row, 3)),
		Size:        domain.Size(cell(row, 4)),
		Quantity:    quantity,
		Status:      domain.Status(cell(row, 6)),
		ArrivalDate: cell(row, 7),
		OrderDate:   orderDate,
	}, nil
}

// cell reads a value by index as stored; the API trims trailing empty cells.
// Client credentials are compared exactly, so no whitespace is removed here.
func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

// trimmedCell is cell for machine-written columns (id, quantity, dates).
func trimmedCell(row []any, i int) string {
	return strings.TrimSpace(cell(row, i))
}

func blank(row []any) bool {
	for i := range row {
		if trimmedCell(row, i) != "" {
			return false
		}
	}
	return true
}
