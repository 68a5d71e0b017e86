package store

import "math"

// Charges returns the charge sessions, newest first.
func (s *Store) Charges() []ChargeSession {
	out := make([]ChargeSession, len(s.charges))
	copy(out, s.charges)
	return out
}

// LastOdometer returns the odometer of the most recently inserted charge,
// or 0 when no charges exist.
func (s *Store) LastOdometer() float64 {
	if len(s.charges) == 0 {
		return 0
	}
	return s.charges[0].Odometer
}

// AddCharge assigns an id, derives units and drivenKm, prepends the
// session, and persists. Units are derived from the meter delta only when
// not supplied directly. DrivenKm is the odometer delta against the
// session that was at the head before this insert, floored at 0.
func (s *Store) AddCharge(c ChargeSession) ChargeSession {
	c.ID = newID()
	if c.Units == 0 {
		c.Units = math.Max(math.Max(c.EndUnits-c.StartUnits, c.EndUnits), 0)
	}
	c.DrivenKm = 0
	if len(s.charges) > 0 {
		c.DrivenKm = math.Max(c.Odometer-s.charges[0].Odometer, 0)
	}

	s.charges = append([]ChargeSession{c}, s.charges...)
	s.saveDoc(keyCharges, s.charges)
	return c
}

// UpdateCharge replaces the session with a matching id in place and
// persists. It reports false, leaving the collection untouched, when the
// id is unknown. Stored derived fields of other sessions are not
// recomputed.
func (s *Store) UpdateCharge(c ChargeSession) bool {
	for i := range s.charges {
		if s.charges[i].ID == c.ID {
			s.charges[i] = c
			s.saveDoc(keyCharges, s.charges)
			return true
		}
	}
	return false
}

// DeleteCharge removes the session with the given id. Deleting an absent
// id is a no-op, not an error.
func (s *Store) DeleteCharge(id string) {
	for i := range s.charges {
		if s.charges[i].ID == id {
			s.charges = append(s.charges[:i], s.charges[i+1:]...)
			break
		}
	}
	s.saveDoc(keyCharges, s.charges)
}
