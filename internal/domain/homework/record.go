// internal/domain/homework/record.go
package homework

const (
	fieldHomeworks   = "homeworks"
	fieldCurrentDate = "current_date"
	fieldName        = "homework_name"
	fieldStatus      = "status"
)

// Record is a single homework entry exactly as the API sent it.
// Only homework_name and status are interpreted.
type Record map[string]any

// PollResponse is a validated answer of the review API.
type PollResponse struct {
	// Homeworks keeps the API order: the first element is the most recently updated one.
	Homeworks []Record
	// CurrentDate is the cursor to use for the next poll.
	CurrentDate int64
}
