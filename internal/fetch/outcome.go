package fetch

import "fmt"

// Outcome classifies the terminal state of one country-code download.
type Outcome int

// The three download outcomes. The set is closed: every drained task maps to
// exactly one of these.
const (
	// OutcomeOK means both fetch stages succeeded and the image was saved.
	OutcomeOK Outcome = iota
	// OutcomeNotFound means a fetch stage returned HTTP 404.
	OutcomeNotFound
	// OutcomeError covers every other HTTP or transport failure.
	OutcomeError
)

// Outcomes lists every Outcome in report order.
var Outcomes = []Outcome{OutcomeOK, OutcomeNotFound, OutcomeError}

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeNotFound:
		return "NOT_FOUND"
	case OutcomeError:
		return "ERROR"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the terminal record of one download task. Message carries
// human-readable context only; it has no behavioral meaning.
type Result struct {
	Key     string
	Outcome Outcome
	Message string
}
