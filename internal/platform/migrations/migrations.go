package migrations

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
)

// Run applies the portal schema. Safe to call on every start.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(&OrderRecord{}); err != nil {
		return err
	}
	checks := []struct {
		name string
		expr string
	}{
		{name: "chk_orders_quantity_positive", expr: "quantity >= 1"},
		{name: "chk_orders_status_known", expr: inList("status", statusValues())},
		{name: "chk_orders_flavor_known", expr: inList("flavor", flavorValues())},
		{name: "chk_orders_size_known", expr: inList("size", sizeValues())},
	}
	for _, check := range checks {
		if db.Migrator().HasConstraint(&OrderRecord{}, check.name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)",
			pq.QuoteIdentifier(OrderRecord{}.TableName()), pq.QuoteIdentifier(check.name), check.expr)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", check.name, err)
		}
	}
	return nil
}

// OrderRecord is the orders table row, shared with the orders Postgres adapter.
type OrderRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	Seq         int64     `gorm:"column:seq;autoIncrement;not null;uniqueIndex"`
	ClientName  string    `gorm:"column:client_name;index:idx_orders_credentials"`
	ClientCode  string    `gorm:"column:client_code;index:idx_orders_credentials"`
	Flavor      string    `gorm:"column:flavor;type:varchar(32)"`
	Size        string    `gorm:"column:size;type:varchar(32)"`
	Quantity    int       `gorm:"column:quantity"`
	Status      string    `gorm:"column:status;type:varchar(32);index"`
	ArrivalDate string    `gorm:"column:arrival_date"`
	OrderDate   time.Time `gorm:"column:order_date;type:date"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string { return "orders" }

func inList(column string, values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, pq.QuoteLiteral(v))
	}
	return fmt.Sprintf("%s IN (%s)", pq.QuoteIdentifier(column), strings.Join(quoted, ", "))
}

func statusValues() []string {
	var out []string
	for _, s := range domain.Statuses() {
		out = append(out, string(s))
	}
	return out
}

func flavorValues() []string {
	var out []string
	for _, f := range domain.Flavors() {
		out = append(out, string(f))
	}
	return out
}

func sizeValues() []string {
	var out []string
	for _, s := range domain.Sizes() {
		out = append(out, string(s))
	}
	return out
}
