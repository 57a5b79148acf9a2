package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/alerts"
	"tutorcenter/internal/domain/catalogs/classsubject"
	"tutorcenter/internal/domain/progress"
	"tutorcenter/internal/domain/sessions"
)

// WeeksShown is the number of weeks in the activity chart.
const WeeksShown = 8

// ClassSubjects lists active class subjects by class and subject name.
type ClassSubjects interface {
	ListActive(ctx context.Context) ([]classsubject.Row, error)
}

// Service provides report generation operations.
type Service struct {
	repo  Repository
	pairs ClassSubjects
	rule  *alerts.Rule
}

// NewService creates a new reports service. A nil rule means the default
// near-complete rule.
func NewService(repo Repository, pairs ClassSubjects, rule *alerts.Rule) *Service {
	if rule == nil {
		rule = alerts.MustCompileRule(alerts.DefaultRule)
	}
	return &Service{repo: repo, pairs: pairs, rule: rule}
}

// Dashboard builds the daily overview for date.
func (s *Service) Dashboard(ctx context.Context, date time.Time) (*Dashboard, error) {
	date = domain.DateOf(date)

	var (
		classes   []ClassInfo
		roster    []RosterRow
		summaries map[id.ID]sessions.Summary
		sheetDate *time.Time
		sheets    []SheetProgress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		classes, err = s.repo.ActiveClasses(gctx)
		return err
	})
	g.Go(func() (err error) {
		roster, err = s.repo.Roster(gctx, date)
		return err
	})
	g.Go(func() (err error) {
		summaries, err = s.repo.ClassSummaries(gctx, date)
		return err
	})
	g.Go(func() (err error) {
		sheetDate, sheets, err = s.repo.LatestSheetProgress(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	rowsByClass := make(map[id.ID][]DashboardRow)
	out := &Dashboard{Date: date.Format(time.DateOnly), NearComplete: []DashboardRow{}}
	for _, r := range roster {
		row := DashboardRow{RosterRow: r, Remaining: sessions.Remaining(r.SessionsTotal, r.Used)}
		matched, err := s.rule.Match(alerts.Facts{
			Remaining:     row.Remaining,
			SessionsTotal: r.SessionsTotal,
			Used:          r.Used,
			Notified:      r.Notified,
		})
		if err != nil {
			return nil, err
		}
		row.NearComplete = matched
		if matched {
			out.NearComplete = append(out.NearComplete, row)
		}
		rowsByClass[r.ClassID] = append(rowsByClass[r.ClassID], row)
	}

	sheetsByClass := make(map[id.ID][]SheetProgress)
	for _, sp := range sheets {
		sp.Percent = sheetPercent(sp)
		sheetsByClass[sp.ClassID] = append(sheetsByClass[sp.ClassID], sp)
	}
	if sheetDate != nil {
		d := sheetDate.Format(time.DateOnly)
		out.SheetDate = &d
	}

	for _, c := range classes {
		rows := rowsByClass[c.ID]
		sum := summaries[c.ID]
		out.Classes = append(out.Classes, ClassBlock{
			ClassInfo: c,
			Seats:     SeatsOf(c.TotalSeats, len(rows)),
			Summary:   sum,
			Rows:      rows,
			Sheets:    sheetsByClass[c.ID],
		})
		out.GlobalSummary.Present += sum.Present
		out.GlobalSummary.Excused += sum.Excused
		out.GlobalSummary.NoShow += sum.NoShow
		out.GlobalSummary.Total += sum.Total
	}
	return out, nil
}

// SeatsOf computes occupancy. Free never goes below zero.
func SeatsOf(total, occupied int) Seats {
	free := total - occupied
	if free < 0 {
		free = 0
	}
	return Seats{Total: total, Occupied: occupied, Free: free}
}

func sheetPercent(sp SheetProgress) int {
	if sp.SheetID == nil || sp.TotalPages == nil || sp.TotalQuestions == nil {
		return 0
	}
	return progress.ForSheet(progress.Totals{Pages: *sp.TotalPages, Questions: *sp.TotalQuestions},
		sp.PageTaughtTo, sp.QuestionTaughtTo)
}

// SheetGroup is one class of the sheet dashboard.
type SheetGroup struct {
	ClassID   id.ID           `json:"classId"`
	ClassName string          `json:"className"`
	Subjects  []SheetGroupRow `json:"subjects"`
}

// SheetGroupRow is one subject's current position from its class subject.
type SheetGroupRow struct {
	classsubject.Row
	ProgressPercent int `json:"percent"`
}

// SheetDashboard groups active class subjects by class.
func (s *Service) SheetDashboard(ctx context.Context) ([]SheetGroup, error) {
	rows, err := s.pairs.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	order, groups := classsubject.ByClass(rows)
	out := make([]SheetGroup, 0, len(order))
	for _, classID := range order {
		members := groups[classID]
		g := SheetGroup{ClassID: classID, ClassName: members[0].ClassName}
		for _, m := range members {
			g.Subjects = append(g.Subjects, SheetGroupRow{Row: m, ProgressPercent: m.Percent()})
		}
		out = append(out, g)
	}
	return out, nil
}

// WeeklyActive counts distinct active students with any attendance in each
// of the last WeeksShown Monday-based weeks ending with today's week.
func (s *Service) WeeklyActive(ctx context.Context, today time.Time) (*WeeklyActive, error) {
	starts := WeekStarts(today, WeeksShown)
	from := starts[0]
	to := starts[len(starts)-1].AddDate(0, 0, 6)

	days, err := s.repo.StudentDays(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return BucketWeeks(starts, days), nil
}

// WeekStarts returns n Monday dates, oldest first, the last being the
// Monday of today's week.
func WeekStarts(today time.Time, n int) []time.Time {
	today = domain.DateOf(today)
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)

	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = monday.AddDate(0, 0, -7*(n-1-i))
	}
	return out
}

// BucketWeeks counts distinct students per week start.
func BucketWeeks(starts []time.Time, days []StudentDay) *WeeklyActive {
	seen := make(map[time.Time]map[id.ID]struct{}, len(starts))
	for _, ws := range starts {
		seen[ws] = make(map[id.ID]struct{})
	}
	for _, d := range days {
		ws := WeekStarts(d.Date, 1)[0]
		if bucket, ok := seen[ws]; ok {
			bucket[d.StudentID] = struct{}{}
		}
	}

	out := &WeeklyActive{}
	for _, ws := range starts {
		b := WeekBucket{Start: ws, Label: ws.Format("02 Jan"), Count: len(seen[ws])}
		out.Weeks = append(out.Weeks, b)
		out.Labels = append(out.Labels, b.Label)
		out.Counts = append(out.Counts, b.Count)
		if b.Count > out.MaxCount {
			out.MaxCount = b.Count
		}
	}
	return out
}

// AttendanceDetails lists each active enrollment with all its records,
// grouped by class. Columns is the longest record list in the class.
func (s *Service) AttendanceDetails(ctx context.Context) ([]DetailClass, error) {
	var (
		classes []ClassInfo
		roster  []RosterRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		classes, err = s.repo.ActiveClasses(gctx)
		return err
	})
	g.Go(func() (err error) {
		roster, err = s.repo.Roster(gctx, time.Time{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("attendance details: %w", err)
	}

	ids := make([]id.ID, len(roster))
	for i, r := range roster {
		ids[i] = r.EnrollmentID
	}
	cells, err := s.repo.AttendanceCells(ctx, ids)
	if err != nil {
		return nil, err
	}
	byEnrollment := make(map[id.ID][]AttendanceCell, len(roster))
	for _, c := range cells {
		byEnrollment[c.EnrollmentID] = append(byEnrollment[c.EnrollmentID], c)
	}

	rowsByClass := make(map[id.ID][]DetailRow)
	for _, r := range roster {
		rowsByClass[r.ClassID] = append(rowsByClass[r.ClassID], DetailRow{
			RosterRow: r,
			Records:   append([]AttendanceCell{}, byEnrollment[r.EnrollmentID]...),
		})
	}

	out := make([]DetailClass, 0, len(classes))
	for _, c := range classes {
		dc := DetailClass{ClassInfo: c, Rows: rowsByClass[c.ID]}
		for _, r := range dc.Rows {
			if len(r.Records) > dc.Columns {
				dc.Columns = len(r.Records)
			}
		}
		out = append(out, dc)
	}
	return out, nil
}
