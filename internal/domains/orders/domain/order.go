package domain

import (
	"strings"
	"time"
)

// Flavor enumerates the brewed flavors a client can order.
type Flavor string

const (
	FlavorOriginal Flavor = "Original"
	FlavorPeach    Flavor = "Peach"
	FlavorGinger   Flavor = "Ginger"
	FlavorBerry    Flavor = "Berry"
)

// Size enumerates packaging options.
type Size string

const (
	Size24Pack Size = "24-Pack"
	Size48Pack Size = "48-Pack"
	SizeKeg    Size = "Keg"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending      Status = "Pending"
	StatusInProduction Status = "In Production"
	StatusShipped      Status = "Shipped"
	StatusCompleted    Status = "Completed"
)

// ArrivalTBD is the arrival label every new order starts with.
const ArrivalTBD = "TBD"

// Flavors lists the orderable flavors in menu order.
func Flavors() []Flavor {
	return []Flavor{FlavorOriginal, FlavorPeach, FlavorGinger, FlavorBerry}
}

// Sizes lists the packaging options in menu order.
func Sizes() []Size {
	return []Size{Size24Pack, Size48Pack, SizeKeg}
}

// Statuses lists statuses along the intended forward path.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProduction, StatusShipped, StatusCompleted}
}

func (f Flavor) Valid() bool {
	switch f {
	case FlavorOriginal, FlavorPeach, FlavorGinger, FlavorBerry:
		return true
	default:
		return false
	}
}

func (s Size) Valid() bool {
	switch s {
	case Size24Pack, Size48Pack, SizeKeg:
		return true
	default:
		return false
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProduction, StatusShipped, StatusCompleted:
		return true
	default:
		return false
	}
}

// Order models one wholesale purchase request.
type Order struct {
	ID          string
	ClientName  string
	ClientCode  string
	Flavor      Flavor
	Size        Size
	Quantity    int
	Status      Status
	ArrivalDate string
	OrderDate   time.Time
}

// NewOrder validates a submission and builds a pending order dated on the
// calendar day of now. The ID stays empty until the store assigns one.
func NewOrder(clientName, clientCode string, flavor Flavor, size Size, quantity int, now time.Time) (*Order, error) {
	order := &Order{
		ClientName:  clientName,
		ClientCode:  clientCode,
		Flavor:      flavor,
		Size:        size,
		Quantity:    quantity,
		Status:      StatusPending,
		ArrivalDate: ArrivalTBD,
		OrderDate:   DateOf(now),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ClientName) == "" {
		return missingField("clientName")
	}
	if strings.TrimSpace(o.ClientCode) == "" {
		return missingField("clientCode")
	}
	if o.Quantity < 1 {
		return &ValidationError{Field: "quantity", Err: ErrInvalidQuantity}
	}
	if !o.Flavor.Valid() {
		return &ValidationError{Field: "flavor", Err: ErrInvalidFlavor}
	}
	if !o.Size.Valid() {
		return &ValidationError{Field: "size", Err: ErrInvalidSize}
	}
	if !o.Status.Valid() {
		return &ValidationError{Field: "status", Err: ErrInvalidStatus}
	}
	return nil
}

// Apply merges an admin patch into the order. Only status and arrival date
// are mutable.
func (o *Order) Apply(patch Patch) {
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.ArrivalDate != nil {
		o.ArrivalDate = *patch.ArrivalDate
	}
}

// Outstanding reports whether the order still counts toward production.
func (o *Order) Outstanding() bool {
	return Outstanding(o.Status)
}

// Clone returns a detached copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

// Patch carries the admin-editable fields. Nil means leave unchanged.
type Patch struct {
	Status      *Status
	ArrivalDate *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Status == nil && p.ArrivalDate == nil
}

// DateOf truncates t to its calendar day, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
