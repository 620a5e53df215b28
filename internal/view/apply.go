package view

import (
	"context"

	"fe-v2/internal/api"
)

// applyToActivity posts a join request for the activity and returns the
// success message to display. Shared by the summary card and the detail
// overlay, which show identical banner behavior.
func applyToActivity(ctx context.Context, client *api.Client, activityID int) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := client.Post(ctx, "application", "apply_activity", map[string]int{"activity_id": activityID}, &out)
	if err != nil {
		return "", err
	}
	if out.Message == "" {
		return "申请成功，等待审核", nil
	}
	return out.Message, nil
}
