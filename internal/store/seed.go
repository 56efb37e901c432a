package store

import (
	"github.com/shopspring/decimal"

	"familywallet/internal/core"
)

// SeedDemo loads the sample household used when the service starts without
// any data: three members, a week of transactions, three recurring bills
// and two holdings. Dates are anchored to the store's clock.
func (s *Store) SeedDemo() error {
	now := s.now()

	alex, err := s.PutMember(core.FamilyMember{Name: "Alex", Role: core.RoleAdmin, AvatarURL: "https://api.dicebear.com/7.x/initials/svg?seed=Alex"})
	if err != nil {
		return err
	}
	beth, err := s.PutMember(core.FamilyMember{Name: "Beth", Role: core.RoleEditor, AvatarURL: "https://api.dicebear.com/7.x/initials/svg?seed=Beth"})
	if err != nil {
		return err
	}
	charlie, err := s.PutMember(core.FamilyMember{Name: "Charlie", Role: core.RoleViewer, AvatarURL: "https://api.dicebear.com/7.x/initials/svg?seed=Charlie"})
	if err != nil {
		return err
	}

	txs := []core.Transaction{
		{Description: "Monthly Salary", Amount: dec("15000"), Date: now.AddDate(0, 0, 1-now.Day()), MemberID: alex.ID, Category: "Salary", Type: core.Income},
		{Description: "Weekly Groceries", Amount: dec("350.75"), Date: now.AddDate(0, 0, -2), MemberID: beth.ID, Category: "Groceries", Type: core.Expense},
		{Description: "Electricity Bill", Amount: dec("220.50"), Date: now.AddDate(0, 0, -3), MemberID: core.MemberShared, Category: "Utilities", Type: core.Expense},
		{Description: "Gas for car", Amount: dec("150.00"), Date: now.AddDate(0, 0, -4), MemberID: alex.ID, Category: "Transport", Type: core.Expense},
		{Description: "Movie Tickets", Amount: dec("95.00"), Date: now.AddDate(0, 0, -5), MemberID: core.MemberShared, Category: "Entertainment", Type: core.Expense},
		{Description: "New Shoes", Amount: dec("450.00"), Date: now.AddDate(0, 0, -6), MemberID: charlie.ID, Category: "Shopping", Type: core.Expense},
	}
	for _, t := range txs {
		if _, err := s.PutTransaction(t); err != nil {
			return err
		}
	}

	bills := []core.Bill{
		{Name: "Rent", Amount: dec("3500"), DueDay: 1, Frequency: core.Monthly, LastPaid: now.AddDate(0, -1, 0)},
		{Name: "Internet", Amount: dec("200"), DueDay: 15, Frequency: core.Monthly, LastPaid: now.AddDate(0, -1, 0)},
		{Name: "Car Insurance", Amount: dec("1200"), DueDay: 20, Frequency: core.Quarterly, LastPaid: now.AddDate(0, -3, 0)},
	}
	for _, b := range bills {
		if _, err := s.PutBill(b); err != nil {
			return err
		}
	}

	invs := []core.Investment{
		{Name: "Apple Inc.", Type: "Stock", Quantity: dec("10"), PurchasePrice: dec("550.25"), CurrentValue: dec("650.80")},
		{Name: "Bitcoin", Type: "Crypto", Quantity: dec("0.1"), PurchasePrice: dec("100000"), CurrentValue: dec("125000")},
	}
	for _, inv := range invs {
		if _, err := s.PutInvestment(inv); err != nil {
			return err
		}
	}
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
