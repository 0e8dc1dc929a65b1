package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Entity is a domain record that can be queued for central sync.
type Entity interface {
	Kind() DomainKind
	PrimaryKey() string
}

// WorkDay is one vendor's shift on a route day.
type WorkDay struct {
	IDWorkDay      string           `json:"id_work_day"`
	IDRoute        string           `json:"id_route"`
	IDRouteDay     string           `json:"id_route_day"`
	StartDate      time.Time        `json:"start_date"`
	FinishDate     *time.Time       `json:"finish_date"`
	StartPettyCash decimal.Decimal  `json:"start_petty_cash"`
	FinalPettyCash *decimal.Decimal `json:"final_petty_cash"`
}

func (w *WorkDay) Kind() DomainKind   { return KindWorkDay }
func (w *WorkDay) PrimaryKey() string { return w.IDWorkDay }

// InventoryOperation is an inventory movement (load, restock, devolution, return) within a work day.
type InventoryOperation struct {
	IDInventoryOperation     string    `json:"id_inventory_operation"`
	IDWorkDay                string    `json:"id_work_day"`
	IDInventoryOperationType string    `json:"id_inventory_operation_type"`
	SignConfirmation         string    `json:"sign_confirmation"`
	Date                     time.Time `json:"date"`
	Audit                    int       `json:"audit"`
	State                    int       `json:"state"`
}

func (o *InventoryOperation) Kind() DomainKind   { return KindInventoryOperation }
func (o *InventoryOperation) PrimaryKey() string { return o.IDInventoryOperation }

// InventoryOperationLine is one product line of an inventory operation.
type InventoryOperationLine struct {
	IDProductOperationDescription string          `json:"id_product_operation_description"`
	IDInventoryOperation          string          `json:"id_inventory_operation"`
	IDProduct                     string          `json:"id_product"`
	Amount                        int             `json:"amount"`
	PriceAtMoment                 decimal.Decimal `json:"price_at_moment"`
	CreatedAt                     time.Time       `json:"created_at"`
}

func (l *InventoryOperationLine) Kind() DomainKind   { return KindInventoryOperationLine }
func (l *InventoryOperationLine) PrimaryKey() string { return l.IDProductOperationDescription }

// RouteTransaction is a sale or product exchange at a store.
type RouteTransaction struct {
	IDRouteTransaction string    `json:"id_route_transaction"`
	IDWorkDay          string    `json:"id_work_day"`
	IDStore            string    `json:"id_store"`
	IDPaymentMethod    string    `json:"id_payment_method"`
	Date               time.Time `json:"date"`
	State              int       `json:"state"`
}

func (t *RouteTransaction) Kind() DomainKind   { return KindRouteTransaction }
func (t *RouteTransaction) PrimaryKey() string { return t.IDRouteTransaction }

type RouteTransactionOperation struct {
	IDRouteTransactionOperation     string `json:"id_route_transaction_operation"`
	IDRouteTransaction              string `json:"id_route_transaction"`
	IDRouteTransactionOperationType string `json:"id_route_transaction_operation_type"`
	State                           int    `json:"state"`
}

func (o *RouteTransactionOperation) Kind() DomainKind   { return KindRouteTransactionOperation }
func (o *RouteTransactionOperation) PrimaryKey() string { return o.IDRouteTransactionOperation }

type RouteTransactionOperationLine struct {
	IDRouteTransactionOperationDescription string          `json:"id_route_transaction_operation_description"`
	IDRouteTransactionOperation            string          `json:"id_route_transaction_operation"`
	IDProduct                              string          `json:"id_product"`
	Amount                                 int             `json:"amount"`
	PriceAtMoment                          decimal.Decimal `json:"price_at_moment"`
	State                                  int             `json:"state"`
}

func (l *RouteTransactionOperationLine) Kind() DomainKind {
	return KindRouteTransactionOperationLine
}

func (l *RouteTransactionOperationLine) PrimaryKey() string {
	return l.IDRouteTransactionOperationDescription
}

// Validate checks the keys the central foreign keys depend on.
func (w *WorkDay) Validate() error {
	return validation.ValidateStruct(w,
		validation.Field(&w.IDWorkDay, validation.Required),
		validation.Field(&w.IDRoute, validation.Required),
		validation.Field(&w.StartDate, validation.Required),
	)
}

func (o *InventoryOperation) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.IDInventoryOperation, validation.Required),
		validation.Field(&o.IDWorkDay, validation.Required),
		validation.Field(&o.IDInventoryOperationType, validation.Required),
	)
}

func (l *InventoryOperationLine) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.IDProductOperationDescription, validation.Required),
		validation.Field(&l.IDInventoryOperation, validation.Required),
		validation.Field(&l.IDProduct, validation.Required),
	)
}

func (t *RouteTransaction) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.IDRouteTransaction, validation.Required),
		validation.Field(&t.IDWorkDay, validation.Required),
		validation.Field(&t.IDStore, validation.Required),
	)
}

func (o *RouteTransactionOperation) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.IDRouteTransactionOperation, validation.Required),
		validation.Field(&o.IDRouteTransaction, validation.Required),
		validation.Field(&o.IDRouteTransactionOperationType, validation.Required),
	)
}

func (l *RouteTransactionOperationLine) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.IDRouteTransactionOperationDescription, validation.Required),
		validation.Field(&l.IDRouteTransactionOperation, validation.Required),
		validation.Field(&l.IDProduct, validation.Required),
	)
}
