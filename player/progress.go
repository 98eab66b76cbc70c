package player

import (
	"math"

	"storefront/models"
)

// IndexToProgress converts a 0-based play-order index into the percentage the
// enrollment would carry once everything up to and including that index has
// been watched: round(((i+1)/total)*100). Monotonically non-decreasing in i.
func IndexToProgress(index, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(index+1) / float64(total) * 100))
}

// ProgressToIndex returns the largest index whose IndexToProgress threshold
// is still within the stored percentage, or -1 if none qualifies.
func ProgressToIndex(progress, total int) int {
	reached := -1
	for i := 0; i < total; i++ {
		if IndexToProgress(i, total) > progress {
			break
		}
		reached = i
	}
	return reached
}

// PercentViewed recomputes the completion percentage from a viewed count
func PercentViewed(viewed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(viewed) / float64(total) * 100))
}

// ImpliedViewedPrefix back-converts a stored progress percentage into the
// implied "first N items watched" set. This is a lossy legacy shim for
// enrollment records that predate the explicit viewed-id list: it always
// yields a prefix of the play order, never a sparse set, and is never
// written back to the server as if it were ground truth.
func ImpliedViewedPrefix(progress int, contents []models.Content) []string {
	reached := ProgressToIndex(progress, len(contents))
	ids := make([]string, 0, reached+1)
	for i := 0; i <= reached; i++ {
		ids = append(ids, contents[i].ID)
	}
	return ids
}
