package editor

// State is the lifecycle phase of an edit session.
type State int

const (
	Loading State = iota
	Ready
	Submitting
	Succeeded
	// FailedAtUpdate: nothing was persisted, the draft can be edited and resubmitted.
	FailedAtUpdate
	// FailedAtUpload: the metadata is persisted, the photos are not.
	FailedAtUpload
	// LoadFailed is terminal; the page has to be reopened.
	LoadFailed
)

var stateNames = map[State]string{
	Loading:        "loading",
	Ready:          "ready",
	Submitting:     "submitting",
	Succeeded:      "succeeded",
	FailedAtUpdate: "failed_at_update",
	FailedAtUpload: "failed_at_upload",
	LoadFailed:     "load_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Editable reports whether the draft accepts actions and submissions in this state.
// Both failure states return to editing.
func (s State) Editable() bool {
	return s == Ready || s == FailedAtUpdate || s == FailedAtUpload
}
