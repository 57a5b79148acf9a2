// Package sessions holds attendance statuses and the session balance rule.
package sessions

// Status is an attendance outcome.
type Status string

const (
	Present Status = "present"
	Excused Status = "excused"
	NoShow  Status = "no_show"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case Present, Excused, NoShow:
		return true
	}
	return false
}

// Deducts reports whether the status consumes a purchased session.
// Attending and unexcused absence do; excused absence does not.
func (s Status) Deducts() bool {
	return s == Present || s == NoShow
}

// DeductingStatuses lists statuses that consume a session, for SQL filters.
func DeductingStatuses() []string {
	return []string{string(Present), string(NoShow)}
}

// Remaining returns total - deducted. It goes negative on over-use so staff
// can see it.
func Remaining(total, deducted int) int {
	return total - deducted
}

// Summary counts statuses for one class or the whole center on a date.
type Summary struct {
	Present int `json:"present"`
	Excused int `json:"excused"`
	NoShow  int `json:"noShow"`
	Total   int `json:"total"`
}

// Add counts one status.
func (s *Summary) Add(st Status) {
	s.AddN(st, 1)
}

// AddN counts n records of one status. Unknown statuses are ignored.
func (s *Summary) AddN(st Status, n int) {
	switch st {
	case Present:
		s.Present += n
	case Excused:
		s.Excused += n
	case NoShow:
		s.NoShow += n
	default:
		return
	}
	s.Total += n
}
