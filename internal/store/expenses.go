package store

// Expenses returns the expense records, newest first.
func (s *Store) Expenses() []Expense {
	out := make([]Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// AddExpense assigns an id, prepends, and persists.
func (s *Store) AddExpense(e Expense) Expense {
	e.ID = newID()

	s.expenses = append([]Expense{e}, s.expenses...)
	s.saveDoc(keyExpenses, s.expenses)
	return e
}

// UpdateExpense replaces the expense with a matching id in place and
// persists. Reports false for an unknown id.
func (s *Store) UpdateExpense(e Expense) bool {
	for i := range s.expenses {
		if s.expenses[i].ID == e.ID {
			s.expenses[i] = e
			s.saveDoc(keyExpenses, s.expenses)
			return true
		}
	}
	return false
}

// DeleteExpense removes the expense with the given id; absent ids are a
// no-op.
func (s *Store) DeleteExpense(id string) {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			break
		}
	}
	s.saveDoc(keyExpenses, s.expenses)
}
