// Package report renders the outcome of one exercise for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"
)

const (
	Red    = 31
	Green  = 32
	Yellow = 33
	Cyan   = 36
)

type Report struct {
	Exercise string
	// Status is the raw solver status, e.g. sat or unsat.
	Status string
	// Verdict is what the status means for the exercise.
	Verdict string
	Details []string
	Elapsed time.Duration
}

func New(exercise string) *Report {
	return &Report{Exercise: exercise}
}

func (r *Report) AddDetail(format string, args ...interface{}) {
	r.Details = append(r.Details, fmt.Sprintf(format, args...))
}

// Success reports whether the verdict is the positive one for its kind.
func (r *Report) Success() bool {
	switch r.Verdict {
	case "proven", "recovered", "unique":
		return true
	}
	return false
}

func (r *Report) colour() int {
	switch {
	case r.Success():
		return Green
	case r.Verdict == "undecided" || r.Verdict == "any key" || r.Status == "unknown":
		return Yellow
	default:
		return Red
	}
}

func (r *Report) String() string {
	header := fmt.Sprintf("Exercise: %s\nStatus: %s\nVerdict: %s\n", r.Exercise, r.Status, r.Verdict)
	header = Colour(r.colour(), header)

	var details strings.Builder
	for _, d := range r.Details {
		details.WriteString(d)
		details.WriteString("\n")
	}
	if r.Elapsed > 0 {
		fmt.Fprintf(&details, "Time: %s\n", r.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s%s", header, Colour(Cyan, details.String()))
}

func Colour(color int, str string) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, str)
}
