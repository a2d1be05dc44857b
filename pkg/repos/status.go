package repos

// TaskStatus is the lifecycle state of an asynchronous clone task.
// The wire values match the states reported by the backend task queue.
type TaskStatus string

// Task lifecycle states.
const (
	// TaskPending means the task has been submitted but not yet picked up.
	TaskPending TaskStatus = "PENDING"
	// TaskReceived means a worker has accepted the task.
	TaskReceived TaskStatus = "RECEIVED"
	// TaskSuccess means the task completed and the repository was persisted.
	TaskSuccess TaskStatus = "SUCCESS"
	// TaskFailure means the task failed terminally.
	TaskFailure TaskStatus = "FAILURE"
)

// String returns the wire representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are expected.
func (s TaskStatus) Terminal() bool {
	switch s {
	case TaskSuccess, TaskFailure:
		return true
	case TaskPending, TaskReceived:
		return false
	default:
		return false
	}
}

// ParseTaskStatus maps a backend state string onto a TaskStatus.
// Transitional states the queue may report (e.g. STARTED, RETRY) and
// unknown values map to the nearest non-terminal state rather than
// failing, because a partial payload must never block reconciliation.
func ParseTaskStatus(state string) TaskStatus {
	switch state {
	case "PENDING":
		return TaskPending
	case "RECEIVED", "STARTED", "RETRY":
		return TaskReceived
	case "SUCCESS":
		return TaskSuccess
	case "FAILURE":
		return TaskFailure
	default:
		return TaskPending
	}
}

// DocStatus is the documentation state of a published repository view.
type DocStatus string

// Documentation states. The wire values are owned by the console UI and
// kept verbatim for compatibility.
const (
	// Documented means the documentation index contains the repository.
	Documented DocStatus = "documented"
	// NotDocumented means no generated documentation exists.
	NotDocumented DocStatus = "Not Documented"
	// Generating means a documentation generation job is in progress.
	// The flag is sticky across refreshes: it is preserved from the
	// previous view until an explicit terminal signal clears it.
	Generating DocStatus = "generating"
)

// String returns the wire representation of the status.
func (s DocStatus) String() string {
	return string(s)
}
