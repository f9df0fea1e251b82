package domain

type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskCompleted TaskStatus = "COMPLETED"
	// Declared by the data model; no operation assigns it.
	TaskRejected TaskStatus = "REJECTED"
)

type TaskLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Proof is attached exactly when a task becomes COMPLETED.
type Proof struct {
	Note      string `json:"note,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Location  Point  `json:"location"`
}

type Task struct {
	ID          string       `json:"id"`
	AssignedTo  string       `json:"assignedTo"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    TaskLocation `json:"location"`
	Status      TaskStatus   `json:"status"`
	Proof       *Proof       `json:"proof,omitempty"`
	DueDate     string       `json:"dueDate"`
}

func (t Task) Clone() Task {
	if t.Proof != nil {
		p := *t.Proof
		t.Proof = &p
	}
	return t
}
