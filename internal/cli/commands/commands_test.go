package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/codealloc"
	"tutorcenter/internal/domain/alerts"
	"tutorcenter/internal/domain/registers/sheetstock"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "seed", "alerts", "inventory", "next-code"} {
		assert.True(t, names[want], want)
	}
}

func TestMigrate_RequiresCommand(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"migrate"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func TestSeedData_IsConsistent(t *testing.T) {
	subjects := make(map[string]bool)
	for _, s := range seedSubjects {
		subjects[s] = true
	}

	sheets := make(map[string]string)
	for _, sh := range seedSheets {
		require.True(t, subjects[sh.Subject], sh.Code)
		sheets[sh.Code] = sh.Subject
	}

	classes := make(map[string]bool)
	for _, c := range seedClasses {
		classes[c.Name] = true
	}
	for class, rows := range seedClassSubjects {
		require.True(t, classes[class], class)
		for _, p := range rows {
			assert.Equal(t, p.Subject, sheets[p.Sheet], "%s uses a sheet of another subject", class)
		}
	}

	assert.Len(t, seedSubjects, 3)
	assert.Len(t, seedSheets, 8)
	assert.Len(t, seedClasses, 3)
	assert.Len(t, seedStudents, 12)
	for _, st := range seedStudents {
		assert.True(t, classes[classForGrade(st.Grade)], st.FullName)
		assert.True(t, st.Type.Valid(), st.FullName)
	}
}

func TestPreviewTarget(t *testing.T) {
	seq, partition, err := previewTarget([]string{"student"}, "")
	require.NoError(t, err)
	assert.Equal(t, codealloc.StudentCode, seq)
	assert.Empty(t, partition)

	_, partition, err = previewTarget([]string{"student"}, "24")
	require.NoError(t, err)
	assert.Equal(t, "24", partition)

	seq, partition, err = previewTarget([]string{"sale-run", "25001"}, "")
	require.NoError(t, err)
	assert.Equal(t, codealloc.SaleRun, seq)
	assert.Equal(t, "25001-", partition)

	for _, args := range [][]string{{"sale-run"}, {"invoice"}, {"student", "x"}} {
		_, _, err := previewTarget(args, "")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok, "%v", args)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}

	_, _, err = previewTarget([]string{"student"}, "2025")
	assert.Error(t, err)
}

func TestPrintAlerts(t *testing.T) {
	var buf bytes.Buffer
	items := []alerts.Alert{{
		Candidate: alerts.Candidate{
			StudentCode:    "25001",
			FullName:       "ด.ช.ณัฐดนัย ศรีสุข",
			Nickname:       "หมิง",
			ClassName:      "ป.6 เสาร์บ่าย",
			ContactChannel: "line",
			ParentPhone:    "0811111111",
		},
		RemainingSessions: 1,
	}}

	printAlerts(&buf, "remaining < 2", items)

	out := buf.String()
	assert.Contains(t, out, "remaining < 2")
	assert.Contains(t, out, "25001")
	assert.Contains(t, out, "(หมิง)")
}

func TestPrintStock(t *testing.T) {
	var buf bytes.Buffer
	finished := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lists := &sheetstock.Lists{
		Active: []*sheetstock.View{{SheetCode: "MATH-A01", Item: sheetstock.Item{Quantity: 4}}},
		Finished: []*sheetstock.View{{
			SheetCode: "ENG-G01",
			Item:      sheetstock.Item{IsFinished: true, FinishedAt: &finished},
		}},
	}

	printStock(&buf, lists)

	out := buf.String()
	assert.Contains(t, out, "MATH-A01")
	assert.Contains(t, out, "ENG-G01")
	assert.Contains(t, out, "2025-06-01")
}
