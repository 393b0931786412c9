package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"kpireview/internal/rubric"
)

// EmployeeInfo is pass-through identification printed on reports. The engine
// never interprets these fields.
type EmployeeInfo struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Position   string `json:"position"`
	Department string `json:"department"`
	ReportDate string `json:"reportDate"`
}

// formatNumber renders a point value the way the entry form displays it:
// no trailing zeros, up to two decimals.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatReport renders a deterministic plain-text breakdown of a computed
// result: a summary line, a penalty notice when applicable, and one line per
// category in rubric order. Pure formatting; nothing is recomputed.
func FormatReport(res Result) string {
	lines := make([]string, 0, len(res.Breakdown)+3)
	lines = append(lines, fmt.Sprintf("Tổng điểm: %s/%s (%s%%)",
		formatNumber(res.TotalPoints), formatNumber(res.TotalMax), formatNumber(res.Percent)))
	if res.PenaltyApplied {
		lines = append(lines, "(*) Đã bị trừ 30 điểm do có hạng mục đánh giá loại Yếu.")
	}
	lines = append(lines, "Phân tích theo mục:")
	for _, b := range res.Breakdown {
		lines = append(lines, fmt.Sprintf("- %s: %s/%s", b.CategoryName, formatNumber(b.Points), formatNumber(b.MaxPoints)))
	}
	return strings.Join(lines, "\n")
}

// ItemDetail pairs an item with the criterion text that applies to its
// rating, for the printable report renderer.
type ItemDetail struct {
	ItemID      string             `json:"itemId"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	MaxPoints   float64            `json:"maxPoints"`
	Rated       bool               `json:"rated"`
	Level       rubric.RatingLevel `json:"level,omitempty"`
	Points      float64            `json:"points"`
	Description string             `json:"description"`
	Notes       string             `json:"notes,omitempty"`
}

// ReportDetails lists, per item in rubric order, the awarded points and the
// criterion description matching the rated level. Unrated items score zero
// and fall back to the GOOD "target" description so the printed form still
// shows what was expected.
func ReportDetails(r rubric.Rubric, ratings Ratings) ([]ItemDetail, error) {
	details := make([]ItemDetail, 0, r.ItemCount())
	for _, cat := range r {
		for _, item := range cat.Items {
			detail := ItemDetail{
				ItemID:    item.ID,
				Code:      item.Code,
				Name:      item.Name,
				MaxPoints: item.MaxPoints,
			}
			if entry, ok := ratings.lookup(item); ok {
				detail.Notes = entry.Notes
			}
			if level, ok := ratings.resolveLevel(item); ok {
				points, err := ScoreItem(item, level)
				if err != nil {
					return nil, err
				}
				detail.Rated = true
				detail.Level = level
				detail.Points = points
				detail.Description = item.Criteria[level].Description
			} else {
				detail.Description = item.Criteria[rubric.Good].Description
			}
			details = append(details, detail)
		}
	}
	return details, nil
}
