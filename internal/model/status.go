package model

// DownloadState represents the progress of a single download request
type DownloadState string

const (
	// DownloadStateRequested means the request was accepted but the backend has not run yet
	DownloadStateRequested DownloadState = "Requested"

	// DownloadStateBackendInvoked means the extraction backend is running
	DownloadStateBackendInvoked DownloadState = "BackendInvoked"

	// DownloadStateResolved means the artifact was found on disk
	DownloadStateResolved DownloadState = "Resolved"

	// DownloadStateAmbiguous means the backend succeeded but no matching artifact was found
	DownloadStateAmbiguous DownloadState = "Ambiguous"

	// DownloadStateFailed means the backend reported an error
	DownloadStateFailed DownloadState = "Failed"
)

// String returns the string representation of DownloadState
func (ds DownloadState) String() string {
	return string(ds)
}

// IsActive returns true while the request has not reached a terminal state
func (ds DownloadState) IsActive() bool {
	return ds == DownloadStateRequested || ds == DownloadStateBackendInvoked
}

// IsFinished returns true if the request is in a terminal state (resolved, ambiguous, or failed)
func (ds DownloadState) IsFinished() bool {
	return ds == DownloadStateResolved || ds == DownloadStateAmbiguous || ds == DownloadStateFailed
}

// IsSuccess returns true only when a file path is available
func (ds DownloadState) IsSuccess() bool {
	return ds == DownloadStateResolved
}

// CanTransitionTo reports whether next is a legal successor of ds.
func (ds DownloadState) CanTransitionTo(next DownloadState) bool {
	switch ds {
	case DownloadStateRequested:
		return next == DownloadStateBackendInvoked || next == DownloadStateFailed
	case DownloadStateBackendInvoked:
		return next.IsFinished()
	default:
		return false
	}
}
