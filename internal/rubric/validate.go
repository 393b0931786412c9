package rubric

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the structural integrity of a rubric before it is used for
// scoring. Every violation is collected; nothing short-circuits except an
// entirely empty rubric, where the remaining checks would be meaningless.
// An empty slice means the rubric is well formed.
//
// Scoring never calls this automatically. It belongs at the point where the
// rubric is loaded, so malformed configuration is caught at startup.
func Validate(r Rubric) []string {
	var errs []string
	if len(r) == 0 {
		errs = append(errs, "rubric must contain at least one category")
		return errs
	}

	for _, cat := range r {
		if cat.ID == "" || cat.Name == "" {
			errs = append(errs, fmt.Sprintf("category missing id/name: %q", cat.Name))
		}
		if len(cat.Items) == 0 {
			errs = append(errs, fmt.Sprintf("category %s has no items", cat.ID))
		}
		for _, item := range cat.Items {
			if item.ID == "" || item.Code == "" || item.Name == "" {
				errs = append(errs, fmt.Sprintf("item missing core fields: %q", item.Name))
			}
			if math.IsNaN(item.MaxPoints) || item.MaxPoints <= 0 {
				errs = append(errs, fmt.Sprintf("item %s invalid maxPoints", item.ID))
			}
			var missing []string
			for _, level := range Levels() {
				if _, ok := item.Criteria[level]; !ok {
					missing = append(missing, string(level))
				}
			}
			if len(missing) > 0 {
				errs = append(errs, fmt.Sprintf("item %s missing criteria keys: %s", item.ID, strings.Join(missing, ",")))
			}
		}
	}
	return errs
}
