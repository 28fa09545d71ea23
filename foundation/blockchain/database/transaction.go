package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedTx is returned when a transaction can't be constructed or
// parsed from its wire format.
var ErrMalformedTx = errors.New("malformed transaction")

// fieldSeparator separates the sender, receiver and value in the wire format.
// Account ids can't contain it since there is no escaping.
const fieldSeparator = "-"

// Bounds on the digits a value may carry on either side of the decimal point.
const (
	maxIntegerDigits  = 18
	maxFractionDigits = 18
)

// =============================================================================

// Tx is the transactional information between two parties. A Tx is a value
// and can't be changed once constructed.
type Tx struct {
	fromID AccountID
	toID   AccountID
	value  decimal.Decimal
}

// NewTx constructs a new transaction.
func NewTx(fromID AccountID, toID AccountID, value decimal.Decimal) (Tx, error) {
	if !fromID.IsAccountID() {
		return Tx{}, fmt.Errorf("%w: from account %q is not properly formatted", ErrMalformedTx, fromID)
	}

	if !toID.IsAccountID() {
		return Tx{}, fmt.Errorf("%w: to account %q is not properly formatted", ErrMalformedTx, toID)
	}

	if err := checkValue(value); err != nil {
		return Tx{}, err
	}

	tx := Tx{
		fromID: fromID,
		toID:   toID,
		value:  value,
	}

	return tx, nil
}

// ParseTx constructs a transaction from its wire format. For example the
// string "ali-hamed-1.5" means ali sends 1.5 coins to hamed.
func ParseTx(trx string) (Tx, error) {
	fields := strings.Split(trx, fieldSeparator)
	if len(fields) != 3 {
		return Tx{}, fmt.Errorf("%w: %q: expecting 3 fields, got %d", ErrMalformedTx, trx, len(fields))
	}

	// Only plain decimal text is accepted. Exponents and signs are rejected
	// before parsing so the value can't expand past the digit bounds.
	if err := checkValueText(fields[2]); err != nil {
		return Tx{}, fmt.Errorf("%w: %q: %s", ErrMalformedTx, trx, err)
	}

	value, err := decimal.NewFromString(fields[2])
	if err != nil {
		return Tx{}, fmt.Errorf("%w: %q: %s", ErrMalformedTx, trx, err)
	}

	// The wire text is what gets signed, so it must be the canonical form.
	if canonical := value.String(); canonical != fields[2] {
		return Tx{}, fmt.Errorf("%w: %q: value must be written as %q", ErrMalformedTx, trx, canonical)
	}

	return NewTx(AccountID(fields[0]), AccountID(fields[1]), value)
}

// FromID returns the account sending the value.
func (tx Tx) FromID() AccountID {
	return tx.fromID
}

// ToID returns the account receiving the value.
func (tx Tx) ToID() AccountID {
	return tx.toID
}

// Value returns the amount being transferred.
func (tx Tx) Value() decimal.Decimal {
	return tx.value
}

// Equal reports whether both transactions move the same value between
// the same accounts.
func (tx Tx) Equal(other Tx) bool {
	return tx.fromID == other.fromID && tx.toID == other.toID && tx.value.Equal(other.value)
}

// String implements the fmt.Stringer interface and returns the wire format.
// This is the exact message that gets signed.
func (tx Tx) String() string {
	return string(tx.fromID) + fieldSeparator + string(tx.toID) + fieldSeparator + tx.value.String()
}

// =============================================================================

// checkValue validates the value is positive and fits the digit bounds. The
// check works off the exponent so huge values are never expanded.
func checkValue(value decimal.Decimal) error {
	if !value.IsPositive() {
		return fmt.Errorf("%w: value must be positive", ErrMalformedTx)
	}

	exp := int(value.Exponent())
	if exp < -maxFractionDigits {
		return fmt.Errorf("%w: value has more than %d fraction digits", ErrMalformedTx, maxFractionDigits)
	}

	if value.NumDigits()+exp > maxIntegerDigits {
		return fmt.Errorf("%w: value has more than %d integer digits", ErrMalformedTx, maxIntegerDigits)
	}

	return nil
}

// checkValueText validates the text is a plain decimal number: digits with
// an optional single point that has digits on both sides.
func checkValueText(text string) error {
	integer, fraction, hasPoint := strings.Cut(text, ".")

	if integer == "" || (hasPoint && fraction == "") {
		return errors.New("value is not a plain decimal number")
	}

	if len(integer) > maxIntegerDigits || len(fraction) > maxFractionDigits {
		return errors.New("value has too many digits")
	}

	for _, part := range []string{integer, fraction} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return errors.New("value is not a plain decimal number")
			}
		}
	}

	return nil
}
