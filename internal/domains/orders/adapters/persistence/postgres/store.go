package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	"github.com/Apurer/boochbooch-portal/internal/platform/migrations"
)

type orderRecord = migrations.OrderRecord

var _ ports.Store = (*Store)(nil)

// Store persists orders in PostgreSQL using GORM. Schema is owned by
// internal/platform/migrations.
type Store struct {
	db    *gorm.DB
	newID func() string
}

// NewStore wires a PostgreSQL-backed store. Caller manages DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, newID: uuid.NewString}
}

// Create inserts a new order row. A preset id that already exists leaves the
// table unchanged.
func (s *Store) Create(ctx context.Context, order *domain.Order) (string, error) {
	if err := s.ensureDB(); err != nil {
		return "", err
	}
	if order == nil {
		return "", errors.New("order is nil")
	}
	record := toRecord(order)
	if record.ID == "" {
		record.ID = s.newID()
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&record).Error
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// ListAll returns all orders oldest first.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, toDomain(records[i]))
	}
	return orders, nil
}

// Update writes the admin-editable columns present in patch.
func (s *Store) Update(ctx context.Context, id string, patch domain.Patch) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	changes := map[string]any{"updated_at": gorm.Expr("NOW()")}
	if patch.Status != nil {
		changes["status"] = string(*patch.Status)
	}
	if patch.ArrivalDate != nil {
		changes["arrival_date"] = *patch.ArrivalDate
	}
	result := s.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres order store not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:          order.ID,
		ClientName:  order.ClientName,
		ClientCode:  order.ClientCode,
		Flavor:      string(order.Flavor),
		Size:        string(order.Size),
		Quantity:    order.Quantity,
		Status:      string(order.Status),
		ArrivalDate: order.ArrivalDate,
		OrderDate:   order.OrderDate,
	}
}

func toDomain(r orderRecord) *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		ClientName:  r.ClientName,
		ClientCode:  r.ClientCode,
		Flavor:      domain.Flavor(r.Flavor),
		Size:        domain.Size(r.Size),
		Quantity:    r.Quantity,
		Status:      domain.Status(r.Status),
		ArrivalDate: r.ArrivalDate,
		OrderDate:   domain.DateOf(r.OrderDate),
	}
}
