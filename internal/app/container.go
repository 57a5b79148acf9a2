// Package app wires repositories and services. The HTTP server and the
// admin CLI build the same graph from it.
package app

import (
	"fmt"

	"tutorcenter/internal/core/codealloc"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/alerts"
	"tutorcenter/internal/domain/catalogs/classsubject"
	"tutorcenter/internal/domain/catalogs/sheet"
	"tutorcenter/internal/domain/catalogs/student"
	"tutorcenter/internal/domain/catalogs/subject"
	"tutorcenter/internal/domain/catalogs/tutoringclass"
	"tutorcenter/internal/domain/documents/attendance"
	"tutorcenter/internal/domain/documents/enrollment"
	"tutorcenter/internal/domain/documents/sheetupdate"
	"tutorcenter/internal/domain/portal"
	"tutorcenter/internal/domain/registers/sheetstock"
	"tutorcenter/internal/domain/reports"
	"tutorcenter/internal/infrastructure/storage/postgres"
	"tutorcenter/internal/infrastructure/storage/postgres/catalog_repo"
	"tutorcenter/internal/infrastructure/storage/postgres/document_repo"
	"tutorcenter/internal/infrastructure/storage/postgres/register_repo"
	"tutorcenter/internal/infrastructure/storage/postgres/report_repo"
	allocator "tutorcenter/pkg/codealloc"
)

// Options are the inputs the container cannot build itself.
type Options struct {
	TxManager *postgres.TxManager
	Clock     domain.Clock
	// AlertRule is a CEL expression over remaining, sessions_total and
	// notified. Empty means alerts.DefaultRule.
	AlertRule string
	// Observer receives allocation events; nil disables them.
	Observer allocator.Observer
}

// Container holds every service of the application.
type Container struct {
	TxManager *postgres.TxManager
	Clock     domain.Clock
	Audit     *postgres.AuditLog
	Codes     *allocator.Service
	AlertRule *alerts.Rule

	Students      *student.Service
	Classes       *tutoringclass.Service
	Subjects      *subject.Service
	Sheets        *sheet.Service
	ClassSubjects *classsubject.Service

	Enrollments  *enrollment.Service
	Attendance   *attendance.Service
	SheetUpdates *sheetupdate.Service
	Stock        *sheetstock.Service

	Alerts  *alerts.Service
	Reports *reports.Service
	Portal  *portal.Service
}

// NewContainer builds the service graph in dependency order.
func NewContainer(opts Options) (*Container, error) {
	if opts.TxManager == nil {
		return nil, fmt.Errorf("app: tx manager is required")
	}

	rule, err := alerts.CompileRule(opts.AlertRule)
	if err != nil {
		return nil, fmt.Errorf("compile alert rule: %w", err)
	}

	auditLog, err := postgres.NewAuditLog(opts.TxManager)
	if err != nil {
		return nil, fmt.Errorf("create audit log: %w", err)
	}

	var allocOpts []allocator.Option
	if opts.Observer != nil {
		allocOpts = append(allocOpts, allocator.WithObserver(opts.Observer))
	}

	txm := opts.TxManager
	c := &Container{
		TxManager: txm,
		Clock:     opts.Clock,
		Audit:     auditLog,
		Codes:     allocator.New(txm.AllocatorQuerier, allocOpts...),
		AlertRule: rule,
	}

	// Catalogs
	studentRepo := catalog_repo.NewStudentRepo(txm)
	classSubjectRepo := catalog_repo.NewClassSubjectRepo(txm)

	c.Students = student.NewService(studentRepo, txm, c.Codes, c.Clock)
	c.Classes = tutoringclass.NewService(catalog_repo.NewClassRepo(txm), txm)
	c.Subjects = subject.NewService(catalog_repo.NewSubjectRepo(txm), txm)
	c.Sheets = sheet.NewService(catalog_repo.NewSheetRepo(txm), txm)
	c.ClassSubjects = classsubject.NewService(classSubjectRepo, txm, c.Clock)

	// Documents and registers
	c.Enrollments = enrollment.NewService(enrollment.Config{
		Repo:      document_repo.NewEnrollmentRepo(txm),
		Lookup:    document_repo.NewLookup(txm),
		TxManager: txm,
		Codes:     c.Codes,
		Audit:     auditLog,
		Clock:     c.Clock,
	})
	c.Attendance = attendance.NewService(document_repo.NewAttendanceRepo(txm), txm, auditLog, c.Clock)
	c.SheetUpdates = sheetupdate.NewService(document_repo.NewSheetUpdateRepo(txm), c.ClassSubjects, txm, c.Clock)
	c.Stock = sheetstock.NewService(register_repo.NewSheetStockRepo(txm), txm, auditLog, c.Clock)

	// Read side
	c.Alerts = alerts.NewService(report_repo.NewAlertRepo(txm), c.Enrollments, rule)
	c.Reports = reports.NewService(report_repo.NewReportRepo(txm), c.ClassSubjects, rule)
	c.Portal = portal.NewService(c.Students, report_repo.NewPortalRepo(txm))

	return c, nil
}

var _ codealloc.Generator = (*allocator.Service)(nil)
