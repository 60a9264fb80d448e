package domain

// Units selects the display unit system. The forecast provider converts
// server-side, so a units change requires a re-fetch.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Valid reports whether u is a known unit system.
func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Theme is the persisted theme preference. Applying it is the UI's job;
// the core only round-trips it through the store.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeAuto || t == ThemeLight || t == ThemeDark
}

// MaxRecents caps the recents list.
const MaxRecents = 8

// PreferenceRecord is the single durable record. Recents are ordered by
// recency, deduplicated by identity key, and capped at MaxRecents.
type PreferenceRecord struct {
	Units    Units      `json:"units"`
	Theme    Theme      `json:"theme"`
	Location *Location  `json:"location,omitempty"`
	Recents  []Location `json:"recents,omitempty"`
}

// DefaultPreferences returns the record used when nothing is persisted
// or the persisted record is unreadable.
func DefaultPreferences() PreferenceRecord {
	return PreferenceRecord{Units: UnitsMetric, Theme: ThemeAuto}
}

// Normalize repairs a record loaded from disk: unknown enum values fall
// back to defaults and the recents list is re-deduplicated and capped.
func (r *PreferenceRecord) Normalize() {
	if !r.Units.Valid() {
		r.Units = UnitsMetric
	}
	if !r.Theme.Valid() {
		r.Theme = ThemeAuto
	}
	if len(r.Recents) == 0 {
		return
	}
	deduped := make([]Location, 0, min(len(r.Recents), MaxRecents))
	seen := make(map[string]struct{}, len(r.Recents))
	for _, loc := range r.Recents {
		key := loc.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, loc)
		if len(deduped) == MaxRecents {
			break
		}
	}
	r.Recents = deduped
}

// PushRecent returns recents with loc moved to the front. An existing
// entry with the same identity key is removed first; the result never
// exceeds MaxRecents.
func PushRecent(recents []Location, loc Location) []Location {
	key := loc.Key()
	next := make([]Location, 0, min(len(recents)+1, MaxRecents))
	next = append(next, loc)
	for _, r := range recents {
		if r.Key() == key {
			continue
		}
		next = append(next, r)
		if len(next) == MaxRecents {
			break
		}
	}
	return next
}

// RemoveRecent returns recents without any entry matching the identity
// key of (lat, lon).
func RemoveRecent(recents []Location, lat, lon float64) []Location {
	key := CoordinateKey(lat, lon)
	next := make([]Location, 0, len(recents))
	for _, r := range recents {
		if r.Key() == key {
			continue
		}
		next = append(next, r)
	}
	return next
}
