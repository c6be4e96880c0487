package finance

import "time"

// CategoryTotal is the expense sum of one category.
type CategoryTotal struct {
	Category Category
	Amount   float64
}

// Summary covers the calendar month containing a reference time.
type Summary struct {
	From, To   time.Time
	Expense    float64
	Income     float64
	Balance    float64
	ByCategory []CategoryTotal
}

// MonthBounds returns the first and last day of now's month.
func MonthBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

// Monthly sums debits and credits dated within now's month, both ends
// inclusive. Transactions with malformed dates are skipped.
func (m *Manager) Monthly(now time.Time) Summary {
	from, to := MonthBounds(now)
	s := Summary{From: from, To: to}

	byCat := make(map[Category]float64)
	for _, t := range m.txs {
		d, ok := t.Day()
		if !ok || d.Before(from) || d.After(to) {
			continue
		}
		switch t.Type {
		case Debit:
			s.Expense += t.Amount
			byCat[t.Category] += t.Amount
		case Credit:
			s.Income += t.Amount
		}
	}
	s.Balance = s.Income - s.Expense

	for _, c := range Categories {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: c, Amount: byCat[c]})
	}
	return s
}
