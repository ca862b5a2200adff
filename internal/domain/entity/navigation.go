package entity

// NavigationStage identifies where in the browser surface's lifecycle a
// navigation event was observed.
type NavigationStage string

const (
	// StageWillNavigate fires before the surface commits a navigation.
	// Handlers may only observe it; the surface has already been told to
	// abort callback loads at this stage.
	StageWillNavigate NavigationStage = "will-navigate"
	// StageDidNavigate fires after a navigation completed. It is the
	// fallback for redirects the pre-navigation hook does not catch.
	StageDidNavigate NavigationStage = "did-navigate"
	// StageLoadFailed fires when a navigation could not complete.
	StageLoadFailed NavigationStage = "did-fail-load"
)

// LoadAbortedCode is the benign failure code surfaces report when a load is
// cut short by a redirect. It must not terminate an OAuth handshake.
const LoadAbortedCode = -3

// NavigationEvent is one observation from the embedded browser surface.
// The OAuth handshake folds a stream of these through its one-shot latch.
type NavigationEvent struct {
	Stage       NavigationStage `json:"stage"`
	URL         string          `json:"url"`
	Code        int             `json:"code,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Failed reports whether the event is a load failure that should reject
// the handshake.
func (e NavigationEvent) Failed() bool {
	return e.Stage == StageLoadFailed && e.Code != LoadAbortedCode
}
