package store

import "encoding/json"

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	out := s.settings
	if len(s.settings.extra) > 0 {
		out.extra = make(map[string]json.RawMessage, len(s.settings.extra))
		for k, v := range s.settings.extra {
			out.extra[k] = v
		}
	}
	return out
}

// UpdateSettings shallow-merges the patch into the current settings and
// persists. Values are not range-checked. Unknown keys already stored are
// retained.
func (s *Store) UpdateSettings(p SettingsPatch) Settings {
	if p.Currency != nil {
		s.settings.Currency = *p.Currency
	}
	if p.DistanceUnit != nil {
		s.settings.DistanceUnit = *p.DistanceUnit
	}
	if p.CarName != nil {
		s.settings.CarName = *p.CarName
	}
	if p.BatterySize != nil {
		s.settings.BatterySize = *p.BatterySize
	}
	if p.HomeRate != nil {
		s.settings.HomeRate = *p.HomeRate
	}
	if p.Theme != nil {
		s.settings.Theme = *p.Theme
	}
	if p.PurchaseDate != nil {
		s.settings.PurchaseDate = *p.PurchaseDate
	}
	s.saveDoc(keySettings, s.settings)
	return s.Settings()
}
