package store

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ChargeSession is one charging event. Timestamp is epoch milliseconds,
// matching the persisted document layout. DrivenKm is computed once at
// insert time from the previous session's odometer and stored.
type ChargeSession struct {
	ID         string  `json:"id"`
	Timestamp  int64   `json:"timestamp"`
	Type       string  `json:"type"` // "Home" or "Public"
	ACDC       string  `json:"acDc,omitempty"`
	Company    string  `json:"company,omitempty"`
	Power      float64 `json:"power,omitempty"`
	Odometer   float64 `json:"odometer"`
	StartPct   float64 `json:"startPct,omitempty"`
	BatteryPct float64 `json:"batteryPct,omitempty"`
	StartUnits float64 `json:"startUnits,omitempty"`
	EndUnits   float64 `json:"endUnits,omitempty"`
	Units      float64 `json:"units"`
	Cost       float64 `json:"cost"`
	DrivenKm   float64 `json:"drivenKm"`
	Note       string  `json:"note,omitempty"`
}

// MeterBill is one home electricity bill. Units and Rate are derived from
// the meter readings at insert/update time.
type MeterBill struct {
	ID           string  `json:"id"`
	Timestamp    int64   `json:"timestamp"`
	StartReading float64 `json:"startReading,omitempty"`
	EndReading   float64 `json:"endReading,omitempty"`
	Amount       float64 `json:"amount"`
	Units        float64 `json:"units"`
	Rate         float64 `json:"rate,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// Expense is a maintenance/ownership expense.
type Expense struct {
	ID          string  `json:"id"`
	Timestamp   int64   `json:"timestamp"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Odometer    float64 `json:"odometer,omitempty"`
	Description string  `json:"description,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// Settings is the app-wide singleton configuration record. Unknown JSON
// keys survive a load/save cycle so documents written by newer builds are
// not stripped by older ones.
type Settings struct {
	Currency     string  `json:"currency"`
	DistanceUnit string  `json:"distanceUnit"` // "km" or "mi", label only
	CarName      string  `json:"carName"`
	BatterySize  float64 `json:"batterySize"` // kWh
	HomeRate     float64 `json:"homeRate"`    // currency per kWh
	Theme        string  `json:"theme"`       // "dark" or "light"
	PurchaseDate string  `json:"purchaseDate,omitempty"`

	extra map[string]json.RawMessage
}

// SettingsPatch is a partial settings update; nil fields are left alone.
type SettingsPatch struct {
	Currency     *string
	DistanceUnit *string
	CarName      *string
	BatterySize  *float64
	HomeRate     *float64
	Theme        *string
	PurchaseDate *string
}

func DefaultSettings() Settings {
	return Settings{
		Currency:     "₹",
		DistanceUnit: "km",
		CarName:      "My EV",
		BatterySize:  40.5,
		HomeRate:     8.0,
		Theme:        "dark",
	}
}

// looseFloat decodes JSON numbers, numeric strings, and null. Anything
// that does not parse as a number becomes 0: forms may submit incomplete
// or stringly-typed values and those are coerced, not rejected.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*f = 0
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		s = str
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = looseFloat(v)
	return nil
}

func (c *ChargeSession) UnmarshalJSON(data []byte) error {
	var doc struct {
		ID         string     `json:"id"`
		Timestamp  looseFloat `json:"timestamp"`
		Type       string     `json:"type"`
		ACDC       string     `json:"acDc"`
		Company    string     `json:"company"`
		Power      looseFloat `json:"power"`
		Odometer   looseFloat `json:"odometer"`
		StartPct   looseFloat `json:"startPct"`
		BatteryPct looseFloat `json:"batteryPct"`
		StartUnits looseFloat `json:"startUnits"`
		EndUnits   looseFloat `json:"endUnits"`
		Units      looseFloat `json:"units"`
		Cost       looseFloat `json:"cost"`
		DrivenKm   looseFloat `json:"drivenKm"`
		Note       string     `json:"note"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*c = ChargeSession{
		ID:         doc.ID,
		Timestamp:  int64(doc.Timestamp),
		Type:       doc.Type,
		ACDC:       doc.ACDC,
		Company:    doc.Company,
		Power:      float64(doc.Power),
		Odometer:   float64(doc.Odometer),
		StartPct:   float64(doc.StartPct),
		BatteryPct: float64(doc.BatteryPct),
		StartUnits: float64(doc.StartUnits),
		EndUnits:   float64(doc.EndUnits),
		Units:      float64(doc.Units),
		Cost:       float64(doc.Cost),
		DrivenKm:   float64(doc.DrivenKm),
		Note:       doc.Note,
	}
	return nil
}

// UnmarshalJSON tolerates the legacy bill field names (billAmount,
// currentReading, lastReading, unitsConsumed) by coalescing them into the
// canonical fields. The canonical shape is written back on the next save.
func (b *MeterBill) UnmarshalJSON(data []byte) error {
	var doc struct {
		ID           string     `json:"id"`
		Timestamp    looseFloat `json:"timestamp"`
		StartReading looseFloat `json:"startReading"`
		EndReading   looseFloat `json:"endReading"`
		Amount       looseFloat `json:"amount"`
		Units        looseFloat `json:"units"`
		Rate         looseFloat `json:"rate"`
		Note         string     `json:"note"`

		BillAmount     looseFloat `json:"billAmount"`
		CurrentReading looseFloat `json:"currentReading"`
		LastReading    looseFloat `json:"lastReading"`
		UnitsConsumed  looseFloat `json:"unitsConsumed"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Amount == 0 {
		doc.Amount = doc.BillAmount
	}
	if doc.EndReading == 0 {
		doc.EndReading = doc.CurrentReading
	}
	if doc.StartReading == 0 {
		doc.StartReading = doc.LastReading
	}
	if doc.Units == 0 {
		doc.Units = doc.UnitsConsumed
	}
	*b = MeterBill{
		ID:           doc.ID,
		Timestamp:    int64(doc.Timestamp),
		StartReading: float64(doc.StartReading),
		EndReading:   float64(doc.EndReading),
		Amount:       float64(doc.Amount),
		Units:        float64(doc.Units),
		Rate:         float64(doc.Rate),
		Note:         doc.Note,
	}
	return nil
}

// UnmarshalJSON accepts "cost" as a legacy alias for "amount".
func (e *Expense) UnmarshalJSON(data []byte) error {
	var doc struct {
		ID          string     `json:"id"`
		Timestamp   looseFloat `json:"timestamp"`
		Category    string     `json:"category"`
		Amount      looseFloat `json:"amount"`
		Cost        looseFloat `json:"cost"`
		Odometer    looseFloat `json:"odometer"`
		Description string     `json:"description"`
		Note        string     `json:"note"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Amount == 0 {
		doc.Amount = doc.Cost
	}
	*e = Expense{
		ID:          doc.ID,
		Timestamp:   int64(doc.Timestamp),
		Category:    doc.Category,
		Amount:      float64(doc.Amount),
		Odometer:    float64(doc.Odometer),
		Description: doc.Description,
		Note:        doc.Note,
	}
	return nil
}

// UnmarshalJSON decodes over the defaults: keys absent from the document
// keep their default values. batteryCapacity is accepted as a legacy
// alias for batterySize, and unrecognized keys are retained.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(names ...string) (json.RawMessage, bool) {
		var v json.RawMessage
		found := false
		for _, n := range names {
			if r, ok := raw[n]; ok {
				if !found {
					v = r
					found = true
				}
				delete(raw, n)
			}
		}
		return v, found
	}
	str := func(v json.RawMessage) string {
		var out string
		json.Unmarshal(v, &out)
		return out
	}
	num := func(v json.RawMessage) float64 {
		var f looseFloat
		f.UnmarshalJSON(v)
		return float64(f)
	}

	out := DefaultSettings()
	if v, ok := take("currency"); ok {
		out.Currency = str(v)
	}
	if v, ok := take("distanceUnit"); ok {
		out.DistanceUnit = str(v)
	}
	if v, ok := take("carName"); ok {
		out.CarName = str(v)
	}
	if v, ok := take("batterySize", "batteryCapacity"); ok {
		out.BatterySize = num(v)
	}
	if v, ok := take("homeRate"); ok {
		out.HomeRate = num(v)
	}
	if v, ok := take("theme"); ok {
		out.Theme = str(v)
	}
	if v, ok := take("purchaseDate"); ok {
		out.PurchaseDate = str(v)
	}
	if len(raw) > 0 {
		out.extra = raw
	}
	*s = out
	return nil
}

// MarshalJSON emits the canonical fields plus any retained unknown keys.
// Output is a sorted-key object, so re-serialization is deterministic.
func (s Settings) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, 7+len(s.extra))
	for k, v := range s.extra {
		doc[k] = v
	}
	doc["currency"] = s.Currency
	doc["distanceUnit"] = s.DistanceUnit
	doc["carName"] = s.CarName
	doc["batterySize"] = s.BatterySize
	doc["homeRate"] = s.HomeRate
	doc["theme"] = s.Theme
	if s.PurchaseDate != "" {
		doc["purchaseDate"] = s.PurchaseDate
	}
	return json.Marshal(doc)
}

// Snapshot is a backup of the four persisted documents. A nil collection
// means the key was absent from the decoded payload and must not replace
// existing data on restore.
type Snapshot struct {
	Settings   *Settings       `json:"settings"`
	Charges    []ChargeSession `json:"charges"`
	Bills      []MeterBill     `json:"bills"`
	Expenses   []Expense       `json:"expenses"`
	ExportedAt string          `json:"exportedAt,omitempty"`

	hasCharges  bool
	hasBills    bool
	hasExpenses bool
}

// UnmarshalJSON rejects payloads carrying none of the four recognized
// keys; a malformed collection aborts the whole decode so a restore never
// partially applies.
func (sn *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Snapshot
	recognized := 0
	if v, ok := raw["settings"]; ok {
		recognized++
		var st Settings
		if err := json.Unmarshal(v, &st); err != nil {
			return fmt.Errorf("decode settings: %w", err)
		}
		out.Settings = &st
	}
	if v, ok := raw["charges"]; ok {
		recognized++
		if err := json.Unmarshal(v, &out.Charges); err != nil {
			return fmt.Errorf("decode charges: %w", err)
		}
		out.hasCharges = true
	}
	if v, ok := raw["bills"]; ok {
		recognized++
		if err := json.Unmarshal(v, &out.Bills); err != nil {
			return fmt.Errorf("decode bills: %w", err)
		}
		out.hasBills = true
	}
	if v, ok := raw["expenses"]; ok {
		recognized++
		if err := json.Unmarshal(v, &out.Expenses); err != nil {
			return fmt.Errorf("decode expenses: %w", err)
		}
		out.hasExpenses = true
	}
	if recognized == 0 {
		return fmt.Errorf("backup has none of charges/bills/expenses/settings")
	}
	if v, ok := raw["exportedAt"]; ok {
		json.Unmarshal(v, &out.ExportedAt)
	}
	*sn = out
	return nil
}

// MarshalJSON always writes all four keys, with empty collections as []
// rather than null.
func (sn Snapshot) MarshalJSON() ([]byte, error) {
	type alias Snapshot
	out := alias(sn)
	if out.Charges == nil {
		out.Charges = []ChargeSession{}
	}
	if out.Bills == nil {
		out.Bills = []MeterBill{}
	}
	if out.Expenses == nil {
		out.Expenses = []Expense{}
	}
	return json.Marshal(out)
}
