package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tutorcenter/internal/app"
	"tutorcenter/internal/cli/ui"
	appctx "tutorcenter/internal/core/context"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/types"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/catalogs/classsubject"
	"tutorcenter/internal/domain/catalogs/sheet"
	"tutorcenter/internal/domain/catalogs/student"
	"tutorcenter/internal/domain/catalogs/subject"
	"tutorcenter/internal/domain/catalogs/tutoringclass"
	"tutorcenter/internal/domain/documents/enrollment"
	"tutorcenter/pkg/logger"
)

const seedActor = "seed"

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				existing, err := c.Subjects.List(ctx, domain.ListFilter{Limit: 1})
				if err != nil {
					return err
				}
				if existing.TotalCount > 0 {
					ui.Warning(cmd.OutOrStdout(), "database already has subjects, seed skipped")
					return nil
				}

				ctx = appctx.WithActor(ctx, seedActor)
				res, err := seed(ctx, c)
				if err != nil {
					return err
				}
				ui.Success(cmd.OutOrStdout(),
					"seeded %d subjects, %d sheets, %d classes, %d class subjects, %d students, %d enrollments",
					res.Subjects, res.Sheets, res.Classes, res.ClassSubjects, res.Students, res.Enrollments)
				return nil
			})
		},
	}
}

type seedResult struct {
	Subjects, Sheets, Classes, ClassSubjects, Students, Enrollments int
}

// seed writes the demo dataset in one transaction.
func seed(ctx context.Context, c *app.Container) (seedResult, error) {
	var res seedResult
	err := c.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		subjects := make(map[string]id.ID, len(seedSubjects))
		for _, name := range seedSubjects {
			s := subject.NewSubject(name)
			if err := c.Subjects.Create(ctx, s); err != nil {
				return fmt.Errorf("subject %s: %w", name, err)
			}
			subjects[name] = s.ID
			res.Subjects++
		}

		sheets := make(map[string]id.ID, len(seedSheets))
		for _, d := range seedSheets {
			sh := sheet.NewSheet(d.Code, d.Title, subjects[d.Subject], d.Pages, d.Questions)
			if err := c.Sheets.Create(ctx, sh); err != nil {
				return fmt.Errorf("sheet %s: %w", d.Code, err)
			}
			sheets[d.Code] = sh.ID
			res.Sheets++
		}

		classes := make(map[string]id.ID, len(seedClasses))
		for _, d := range seedClasses {
			cl := tutoringclass.NewTutoringClass(d.Name, types.MustMoney(d.Price), d.Seats)
			if err := c.Classes.Create(ctx, cl); err != nil {
				return fmt.Errorf("class %s: %w", d.Name, err)
			}
			classes[d.Name] = cl.ID
			res.Classes++
		}

		for _, d := range seedClasses {
			for _, p := range seedClassSubjects[d.Name] {
				cs := classsubject.NewClassSubject(classes[d.Name], subjects[p.Subject])
				sheetID := sheets[p.Sheet]
				cs.CurrentSheetID = &sheetID
				cs.CurrentPage = p.Page
				cs.CurrentQuestion = p.Question
				cs.LastTeacher = p.Teacher
				cs.UpdatedBy = seedActor
				if err := c.ClassSubjects.Create(ctx, cs); err != nil {
					return fmt.Errorf("class subject %s/%s: %w", d.Name, p.Subject, err)
				}
				res.ClassSubjects++
			}
		}

		today := c.Clock.Today()
		// Thai schools count academic years in the Buddhist era.
		academicYear := strconv.Itoa(c.Clock.Local().Year() + 543)
		for _, d := range seedStudents {
			st := student.NewStudent(d.FullName, d.Phone)
			st.Nickname = d.Nickname
			st.GradeLevel = d.Grade
			st.AcademicYear = academicYear
			st.SchoolName = d.School
			st.ContactChannel = d.Channel
			st.ReferralSource = d.Referral
			st.EnrollDate = today
			if err := c.Students.Create(ctx, st); err != nil {
				return fmt.Errorf("student %s: %w", d.FullName, err)
			}
			res.Students++

			e := enrollment.NewEnrollment(st.ID, classes[classForGrade(d.Grade)])
			e.Type = d.Type
			e.SessionsTotal = d.Type.Sessions()
			e.Remark = "Mock data"
			if err := c.Enrollments.Create(ctx, e); err != nil {
				return fmt.Errorf("enrollment of %s: %w", st.Code, err)
			}
			res.Enrollments++
		}
		return nil
	})
	if err != nil {
		return seedResult{}, err
	}

	logger.Info(ctx, "demo data seeded", "students", res.Students, "enrollments", res.Enrollments)
	return res, nil
}
