package entity

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment covers one checkout; a multi-seat checkout ties several
// reservation rows to a single payment.
type Payment struct {
	Base
	Amount      int64         `db:"amount"` // minor units
	Currency    string        `db:"currency"`
	Status      PaymentStatus `db:"status"`
	HolderEmail *string       `db:"holder_email"` // filled at settlement
	SessionID   *string       `db:"session_id"`   // provider checkout session reference
}
