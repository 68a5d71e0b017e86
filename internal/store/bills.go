package store

// normalizeBill derives units from the meter readings (floored at 0) when
// not supplied, and the effective rate from amount and units.
func normalizeBill(b MeterBill) MeterBill {
	if b.Units == 0 && b.EndReading != 0 {
		if u := b.EndReading - b.StartReading; u > 0 {
			b.Units = u
		}
	}
	b.Rate = 0
	if b.Units > 0 {
		b.Rate = b.Amount / b.Units
	}
	return b
}

// Bills returns the meter bills, newest first.
func (s *Store) Bills() []MeterBill {
	out := make([]MeterBill, len(s.bills))
	copy(out, s.bills)
	return out
}

// AddBill assigns an id, derives units and rate, prepends, and persists.
func (s *Store) AddBill(b MeterBill) MeterBill {
	b.ID = newID()
	b = normalizeBill(b)

	s.bills = append([]MeterBill{b}, s.bills...)
	s.saveDoc(keyBills, s.bills)
	return b
}

// UpdateBill replaces the bill with a matching id in place, re-deriving
// units and rate from its own readings, and persists. Reports false for
// an unknown id.
func (s *Store) UpdateBill(b MeterBill) bool {
	for i := range s.bills {
		if s.bills[i].ID == b.ID {
			s.bills[i] = normalizeBill(b)
			s.saveDoc(keyBills, s.bills)
			return true
		}
	}
	return false
}

// DeleteBill removes the bill with the given id; absent ids are a no-op.
func (s *Store) DeleteBill(id string) {
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills = append(s.bills[:i], s.bills[i+1:]...)
			break
		}
	}
	s.saveDoc(keyBills, s.bills)
}
