package scoring

import (
	"strings"
	"testing"

	"kpireview/internal/rubric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReport(t *testing.T) {
	r := testRubric()

	t.Run("full marks", func(t *testing.T) {
		res, err := ScoreTotal(r, Ratings{
			"item_a": SimpleRating(rubric.Good),
			"item_b": SimpleRating(rubric.Good),
			"item_c": SimpleRating(rubric.Good),
		})
		require.NoError(t, err)

		report := FormatReport(res)
		lines := strings.Split(report, "\n")

		require.Len(t, lines, 4)
		assert.Equal(t, "Tổng điểm: 28/28 (100%)", lines[0])
		assert.Equal(t, "Phân tích theo mục:", lines[1])
		assert.Equal(t, "- Vận hành: 19/19", lines[2])
		assert.Equal(t, "- An toàn: 9/9", lines[3])
	})

	t.Run("penalty notice", func(t *testing.T) {
		res, err := ScoreTotal(r, Ratings{
			"item_a": SimpleRating(rubric.Weak),
			"item_b": SimpleRating(rubric.Good),
			"item_c": SimpleRating(rubric.Good),
		})
		require.NoError(t, err)

		report := FormatReport(res)
		assert.Contains(t, report, "(*) Đã bị trừ 30 điểm do có hạng mục đánh giá loại Yếu.")
		assert.True(t, strings.HasPrefix(report, "Tổng điểm: 0/28 (0%)"))
	})

	t.Run("fractional points keep two decimals without padding", func(t *testing.T) {
		res, err := ScoreTotal(r, Ratings{
			"item_a": SimpleRating(rubric.Average),
		})
		require.NoError(t, err)

		report := FormatReport(res)
		assert.Contains(t, report, "Tổng điểm: 6.3/28 (22.5%)")
		assert.Contains(t, report, "- Vận hành: 6.3/19")
	})
}

func TestReportDetails(t *testing.T) {
	r := testRubric()

	details, err := ReportDetails(r, Ratings{
		"item_a": DetailedRating(rubric.Average, 6.3, "cần theo dõi thêm"),
	})
	require.NoError(t, err)
	require.Len(t, details, 3)

	rated := details[0]
	assert.Equal(t, "item_a", rated.ItemID)
	assert.True(t, rated.Rated)
	assert.Equal(t, rubric.Average, rated.Level)
	assert.Equal(t, 6.3, rated.Points)
	assert.Equal(t, "đạt một phần", rated.Description)
	assert.Equal(t, "cần theo dõi thêm", rated.Notes)

	// Unrated items fall back to the target description and score nothing.
	unrated := details[1]
	assert.False(t, unrated.Rated)
	assert.Zero(t, unrated.Points)
	assert.Equal(t, "đạt mục tiêu", unrated.Description)
	assert.Empty(t, unrated.Notes)
}

func TestReportDetailsOrderMatchesRubric(t *testing.T) {
	details, err := ReportDetails(rubric.Default(), Ratings{})
	require.NoError(t, err)

	r := rubric.Default()
	require.Len(t, details, r.ItemCount())

	i := 0
	for _, cat := range r {
		for _, item := range cat.Items {
			assert.Equal(t, item.ID, details[i].ItemID)
			i++
		}
	}
}
