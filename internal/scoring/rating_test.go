package scoring

import (
	"encoding/json"
	"testing"

	"kpireview/internal/rubric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingUnmarshalJSON(t *testing.T) {
	t.Run("bare level string", func(t *testing.T) {
		var r Rating
		require.NoError(t, json.Unmarshal([]byte(`"GOOD"`), &r))

		assert.Equal(t, rubric.Good, r.Level)
		assert.Zero(t, r.ActualScore)
		assert.Empty(t, r.Notes)
	})

	t.Run("structured record", func(t *testing.T) {
		var r Rating
		payload := `{"level":"AVERAGE","actualScore":6.3,"notes":"thiếu báo cáo tuần"}`
		require.NoError(t, json.Unmarshal([]byte(payload), &r))

		assert.Equal(t, rubric.Average, r.Level)
		assert.Equal(t, 6.3, r.ActualScore)
		assert.Equal(t, "thiếu báo cáo tuần", r.Notes)
	})

	t.Run("mixed map of both shapes", func(t *testing.T) {
		var ratings Ratings
		payload := `{"1.1":"WEAK","1.2":{"level":"GOOD","notes":"ổn định"}}`
		require.NoError(t, json.Unmarshal([]byte(payload), &ratings))

		require.Len(t, ratings, 2)
		assert.Equal(t, rubric.Weak, ratings["1.1"].Level)
		assert.Equal(t, rubric.Good, ratings["1.2"].Level)
		assert.Equal(t, "ổn định", ratings["1.2"].Notes)
	})

	t.Run("malformed entry is rejected", func(t *testing.T) {
		var r Rating
		assert.Error(t, json.Unmarshal([]byte(`42`), &r))
	})
}

func TestRatingsLookup(t *testing.T) {
	item := rubric.Item{ID: "item_a", Code: "1.1"}

	t.Run("by id", func(t *testing.T) {
		entry, ok := Ratings{"item_a": SimpleRating(rubric.Good)}.lookup(item)
		require.True(t, ok)
		assert.Equal(t, rubric.Good, entry.Level)
	})

	t.Run("falls back to code", func(t *testing.T) {
		entry, ok := Ratings{"1.1": SimpleRating(rubric.Average)}.lookup(item)
		require.True(t, ok)
		assert.Equal(t, rubric.Average, entry.Level)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := Ratings{}.lookup(item)
		assert.False(t, ok)
	})
}

func TestResolveLevel(t *testing.T) {
	item := rubric.Item{ID: "item_a", Code: "1.1"}

	tests := []struct {
		name    string
		ratings Ratings
		wantOK  bool
	}{
		{"valid level", Ratings{"item_a": SimpleRating(rubric.Weak)}, true},
		{"empty level", Ratings{"item_a": {}}, false},
		{"unknown level", Ratings{"item_a": SimpleRating("EXCELLENT")}, false},
		{"no entry", Ratings{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.ratings.resolveLevel(item)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
