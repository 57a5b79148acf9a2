// Package progress computes how far a class is through a study sheet.
package progress

// Percent returns floor(current*100/total), or 0 when total is not positive.
// The result is not clamped: teaching past the last page reads above 100.
func Percent(current, total int) int {
	if total <= 0 {
		return 0
	}
	return current * 100 / total
}

// Sheet is the part of a study sheet progress depends on.
type Sheet interface {
	PageCount() int
	QuestionCount() int
}

// ForSheet measures against pages when the sheet has them, otherwise against
// questions. A nil sheet, or one with neither, reads 0.
func ForSheet(s Sheet, page, question int) int {
	if s == nil {
		return 0
	}
	if s.PageCount() > 0 {
		return Percent(page, s.PageCount())
	}
	if s.QuestionCount() > 0 {
		return Percent(question, s.QuestionCount())
	}
	return 0
}

// Totals is a value Sheet for callers that only have the counts.
type Totals struct {
	Pages     int
	Questions int
}

func (t Totals) PageCount() int     { return t.Pages }
func (t Totals) QuestionCount() int { return t.Questions }
