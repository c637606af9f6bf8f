package notifications

import "selah/internal/platform"

// FlowAction is what the UI should do next about notification permission.
type FlowAction int

const (
	// FlowNone means permission is granted; nothing to do.
	FlowNone FlowAction = iota

	// FlowEducate means show the educational prompt and, on acceptance,
	// call RequestPermissions.
	FlowEducate

	// FlowOpenSettings means a direct re-prompt would silently no-op; the
	// user has to be routed to system settings instead.
	FlowOpenSettings
)

// DecideFlow is the pure permission-flow decision table. Undetermined and
// re-askable denied states both lead to the educational prompt; a denied
// state that cannot be re-asked must never reach a prompt.
func DecideFlow(st platform.Status) FlowAction {
	switch {
	case st.Permission == platform.Granted:
		return FlowNone
	case st.Permission == platform.Denied && !st.CanAskAgain:
		return FlowOpenSettings
	default:
		return FlowEducate
	}
}
