// internal/domain/homework/status.go
package homework

// Status is the review state of a homework as reported by the review API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps every known review status to the text appended to a notification.
// Treat it as read-only.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the verdict text for status and whether the status is known.
func Verdict(status Status) (string, bool) {
	v, ok := Verdicts[status]
	return v, ok
}
