package types

import (
	"errors"
	"time"
)

type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

var ErrBillNotFound = errors.New("bill not found")

// Bill is one expense-report entry. FileURL and FileName are set together
// once the receipt upload has completed, and stay nil until then. Status is
// owned by the dashboard side; the employee submission flow never writes it
// past the initial default.
type Bill struct {
	ID         string     `db:"id"`
	Email      string     `db:"email"`
	Type       string     `db:"type"`
	Name       string     `db:"name"`
	Amount     int64      `db:"amount"`
	Date       string     `db:"date"`
	VAT        *int64     `db:"vat"`
	Pct        *int64     `db:"pct"`
	Commentary *string    `db:"commentary"`
	FileURL    *string    `db:"file_url"`
	FileName   *string    `db:"file_name"`
	Status     BillStatus `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// ExpenseTypes are the categories offered by the new bill form.
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}
