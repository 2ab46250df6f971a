package core

// TaskID is a unique task identifier.
type TaskID int

// Task represents one flight task tied to a task area. A task's required
// work time is not stored here: it is derived per planning pass from the
// length of the ideal sub-flight planned for the task.
type Task struct {
	ID   TaskID
	Name string
	Kind TaskKind
}

// NewTask creates a task of the given kind.
func NewTask(id TaskID, name string, kind TaskKind) *Task {
	return &Task{ID: id, Name: name, Kind: kind}
}
