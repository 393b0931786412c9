package scoring

import (
	"encoding/json"

	"kpireview/internal/rubric"
)

// Rating is one caller-supplied judgment for a single item. ActualScore and
// Notes travel with detailed entries from the data-entry surface; the engine
// treats ActualScore as documentation only and always recomputes points from
// the item and level.
type Rating struct {
	Level       rubric.RatingLevel `json:"level"`
	ActualScore float64            `json:"actualScore,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

// SimpleRating builds an entry carrying only a level.
func SimpleRating(level rubric.RatingLevel) Rating {
	return Rating{Level: level}
}

// DetailedRating builds an entry with the level plus the UI-tracked score and
// free-text notes.
func DetailedRating(level rubric.RatingLevel, actualScore float64, notes string) Rating {
	return Rating{Level: level, ActualScore: actualScore, Notes: notes}
}

// UnmarshalJSON accepts both wire shapes produced by the entry form: a bare
// level string ("GOOD") or a structured record with a level field.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var level string
	if err := json.Unmarshal(data, &level); err == nil {
		*r = SimpleRating(rubric.RatingLevel(level))
		return nil
	}

	var full struct {
		Level       rubric.RatingLevel `json:"level"`
		ActualScore float64            `json:"actualScore"`
		Notes       string             `json:"notes"`
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*r = DetailedRating(full.Level, full.ActualScore, full.Notes)
	return nil
}

// Ratings maps item id (or item code, accepted interchangeably) to the
// rating entered for that item. Callers pass an immutable snapshot; the
// engine never mutates or retains it.
type Ratings map[string]Rating

// lookup returns the entry for an item, trying the id first and falling back
// to the code.
func (rs Ratings) lookup(item rubric.Item) (Rating, bool) {
	if entry, ok := rs[item.ID]; ok {
		return entry, true
	}
	if entry, ok := rs[item.Code]; ok {
		return entry, true
	}
	return Rating{}, false
}

// resolveLevel extracts a usable rating level for an item. A missing entry,
// or an entry whose level is empty or outside the closed enum, resolves to
// unrated rather than an error.
func (rs Ratings) resolveLevel(item rubric.Item) (rubric.RatingLevel, bool) {
	entry, ok := rs.lookup(item)
	if !ok || !entry.Level.Valid() {
		return "", false
	}
	return entry.Level, true
}
