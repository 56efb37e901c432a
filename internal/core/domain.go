package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

const (
	Monthly   BillFrequency = "Monthly"
	Quarterly BillFrequency = "Quarterly"
	Yearly    BillFrequency = "Yearly"
)

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// MemberShared is the member reference for transactions that belong to the
// whole household rather than a single member.
const MemberShared = "family"

type (
	TransactionType string
	BillFrequency   string
	Role            string

	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"` // base currency
		Date        time.Time       `json:"date"`
		MemberID    string          `json:"memberId"` // member ID or MemberShared
		Category    string          `json:"category"`
		Type        TransactionType `json:"type"`
	}

	Bill struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Amount    decimal.Decimal `json:"amount"`
		DueDay    int             `json:"dueDay"` // target day of month, 1-31
		Frequency BillFrequency   `json:"frequency"`
		LastPaid  time.Time       `json:"lastPaid"`
	}

	Investment struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		Type          string          `json:"type"` // free text, e.g. "Stock", "Crypto"
		Quantity      decimal.Decimal `json:"quantity"`
		PurchasePrice decimal.Decimal `json:"purchasePrice"` // per unit
		CurrentValue  decimal.Decimal `json:"currentValue"`  // per unit
	}

	FamilyMember struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Role      Role   `json:"role"`
		AvatarURL string `json:"avatarUrl"` // URL or embedded image payload
	}
)

var (
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidCategory  = errors.New("invalid category for transaction type")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDueDay    = errors.New("due day must be between 1 and 31")
	ErrInvalidFrequency = errors.New("invalid bill frequency")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidRole      = errors.New("invalid role")
)

// ExpenseCategories and IncomeCategories are the fixed category sets; which
// one applies depends on the transaction type.
var (
	ExpenseCategories = []string{"Groceries", "Utilities", "Transport", "Entertainment", "Health", "Education", "Shopping", "Other"}
	IncomeCategories  = []string{"Salary", "Bonus", "Investment Gain", "Gift", "Other Income"}
)

// CategoriesFor returns the category set for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

func validCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	switch t.Type {
	case Income, Expense:
	default:
		return ErrInvalidType
	}
	if !validCategory(t.Type, t.Category) {
		return ErrInvalidCategory
	}
	return nil
}

func (b Bill) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if b.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if b.DueDay < 1 || b.DueDay > 31 {
		return ErrInvalidDueDay
	}
	switch b.Frequency {
	case Monthly, Quarterly, Yearly:
	default:
		return ErrInvalidFrequency
	}
	return nil
}

func (i Investment) Validate() error {
	if len(strings.TrimSpace(i.Name)) == 0 {
		return ErrEmptyName
	}
	if i.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	if i.PurchasePrice.IsNegative() || i.CurrentValue.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// PurchaseTotal is quantity times purchase price per unit.
func (i Investment) PurchaseTotal() decimal.Decimal {
	return i.PurchasePrice.Mul(i.Quantity)
}

// CurrentTotal is quantity times current value per unit.
func (i Investment) CurrentTotal() decimal.Decimal {
	return i.CurrentValue.Mul(i.Quantity)
}

// GainLoss is the unrealized gain (or loss, when negative) of the holding.
func (i Investment) GainLoss() decimal.Decimal {
	return i.CurrentValue.Sub(i.PurchasePrice).Mul(i.Quantity)
}

func (m FamilyMember) Validate() error {
	if len(strings.TrimSpace(m.Name)) == 0 {
		return ErrEmptyName
	}
	switch m.Role {
	case RoleAdmin, RoleEditor, RoleViewer:
	default:
		return ErrInvalidRole
	}
	return nil
}

// CanEdit reports whether a role may mutate transactions, bills and
// investments. Member management additionally requires RoleAdmin.
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleEditor
}
