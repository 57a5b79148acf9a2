package enrollment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/codealloc"
	appctx "tutorcenter/internal/core/context"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/core/types"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/audit"
)

type mockRepo struct {
	mu           sync.Mutex
	rows         map[id.ID]Enrollment
	installments map[id.ID]Installment
	used         map[id.ID]int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		rows:         make(map[id.ID]Enrollment),
		installments: make(map[id.ID]Installment),
		used:         make(map[id.ID]int),
	}
}

func (m *mockRepo) Create(_ context.Context, e *Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[e.ID] = *e
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, eid id.ID) (*Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[eid]
	if !ok {
		return nil, apperror.NewNotFound("enrollment", eid)
	}
	return &e, nil
}

func (m *mockRepo) GetForUpdate(ctx context.Context, eid id.ID) (*Enrollment, error) {
	return m.GetByID(ctx, eid)
}

func (m *mockRepo) Update(_ context.Context, e *Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[e.ID] = *e
	return nil
}

func (m *mockRepo) List(context.Context, domain.ListFilter) (domain.ListResult[*Enrollment], error) {
	return domain.ListResult[*Enrollment]{}, nil
}

func (m *mockRepo) UsedSessions(_ context.Context, ids []id.ID) (map[id.ID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[id.ID]int)
	for _, i := range ids {
		if n, ok := m.used[i]; ok {
			out[i] = n
		}
	}
	return out, nil
}

func (m *mockRepo) CreateInstallments(_ context.Context, items []*Installment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range items {
		m.installments[i.ID] = *i
	}
	return nil
}

func (m *mockRepo) ListInstallments(_ context.Context, enrollmentID id.ID) ([]*Installment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Installment
	for _, i := range m.installments {
		if i.EnrollmentID == enrollmentID {
			cp := i
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].InstallmentNo < out[b].InstallmentNo })
	return out, nil
}

func (m *mockRepo) GetInstallmentForUpdate(_ context.Context, iid id.ID) (*Installment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.installments[iid]
	if !ok {
		return nil, apperror.NewNotFound("installment", iid)
	}
	return &i, nil
}

func (m *mockRepo) UpdateInstallment(_ context.Context, i *Installment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.installments[i.ID] = *i
	return nil
}

type mockLookup struct {
	codes   map[id.ID]string
	classes map[id.ID]ClassInfo
}

func (m *mockLookup) StudentCode(_ context.Context, sid id.ID) (string, error) {
	code, ok := m.codes[sid]
	if !ok {
		return "", apperror.NewNotFound("student", sid)
	}
	return code, nil
}

func (m *mockLookup) Class(_ context.Context, cid id.ID) (ClassInfo, error) {
	c, ok := m.classes[cid]
	if !ok {
		return ClassInfo{}, apperror.NewNotFound("tutoring_class", cid)
	}
	return c, nil
}

type recordedEntry struct {
	entityID id.ID
	action   audit.Action
}

type mockAudit struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (m *mockAudit) Record(_ context.Context, _ string, entityID id.ID, action audit.Action, _ map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, recordedEntry{entityID, action})
	return nil
}

type fixture struct {
	svc     *Service
	repo    *mockRepo
	gen     *codealloc.MockGenerator
	audit   *mockAudit
	student id.ID
	class   id.ID
	lookup  *mockLookup
	now     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newMockRepo(),
		gen:     &codealloc.MockGenerator{},
		audit:   &mockAudit{},
		student: id.New(),
		class:   id.New(),
		now:     time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	f.lookup = &mockLookup{
		codes: map[id.ID]string{f.student: "25001"},
		classes: map[id.ID]ClassInfo{f.class: {
			CoursePrice:     types.MustMoney("12000"),
			HoursPerSession: types.MustMoney("3"),
		}},
	}
	f.svc = NewService(Config{
		Repo:      f.repo,
		Lookup:    f.lookup,
		TxManager: &tx.MockManager{},
		Codes:     f.gen,
		Audit:     f.audit,
		Clock:     domain.Clock{Location: time.UTC, Now: func() time.Time { return f.now }},
	})
	return f
}

func TestService_Create_AllocatesSaleRunPerStudent(t *testing.T) {
	f := newFixture()
	ctx := appctx.WithActor(context.Background(), "admin")

	first := NewEnrollment(f.student, f.class)
	second := NewEnrollment(f.student, f.class)
	require.NoError(t, f.svc.Create(ctx, first))
	require.NoError(t, f.svc.Create(ctx, second))

	assert.Equal(t, "25001-01", first.SaleRun())
	assert.Equal(t, "25001-02", second.SaleRun())
	assert.Equal(t, "12000", first.CoursePrice.String())
	assert.Equal(t, "admin", first.UpdatedBy)
	assert.Equal(t, []string{"sale_run_no:25001-", "sale_run_no:25001-"}, f.gen.Calls)
	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, audit.ActionCreate, f.audit.entries[0].action)
}

func TestService_Create_DefersSaleRunWithoutStudentCode(t *testing.T) {
	f := newFixture()
	f.lookup.codes[f.student] = ""
	ctx := context.Background()

	e := NewEnrollment(f.student, f.class)
	require.NoError(t, f.svc.Create(ctx, e))
	assert.Nil(t, e.SaleRunNo)
	assert.Empty(t, f.gen.Calls)

	f.lookup.codes[f.student] = "25007"
	require.NoError(t, f.svc.Update(ctx, e))
	assert.Equal(t, "25007-01", e.SaleRun())
}

func TestService_Update_KeepsSaleRun(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e := NewEnrollment(f.student, f.class)
	require.NoError(t, f.svc.Create(ctx, e))

	edited := *e
	other := "99999-99"
	edited.SaleRunNo = &other
	edited.Remark = "moved to evening"
	require.NoError(t, f.svc.Update(ctx, &edited))

	assert.Equal(t, "25001-01", edited.SaleRun())
	assert.Equal(t, "moved to evening", edited.Remark)
	assert.Len(t, f.gen.Calls, 1)
}

func TestService_Create_InstallmentPlan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e := NewEnrollment(f.student, f.class)
	e.PaymentType = PaymentInstallment
	e.InstallmentsCount = 3
	e.DiscountAmount = types.MustMoney("2000")
	require.NoError(t, f.svc.Create(ctx, e))

	plan, err := f.svc.ListInstallments(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, "3333.33", plan[0].AmountDue.StringFixed(2))
	assert.Equal(t, "3333.34", plan[2].AmountDue.StringFixed(2))

	_, err = f.svc.PlanInstallments(ctx, e.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestService_RecordPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e := NewEnrollment(f.student, f.class)
	e.PaymentType = PaymentInstallment
	e.InstallmentsCount = 2
	require.NoError(t, f.svc.Create(ctx, e))
	plan, err := f.svc.ListInstallments(ctx, e.ID)
	require.NoError(t, err)

	inst, err := f.svc.RecordPayment(ctx, plan[0].ID, types.MustMoney("5000"))
	require.NoError(t, err)
	assert.False(t, inst.IsPaid)
	assert.Nil(t, inst.PaidAt)

	inst, err = f.svc.RecordPayment(ctx, plan[0].ID, types.MustMoney("1000"))
	require.NoError(t, err)
	assert.True(t, inst.IsPaid)
	assert.Equal(t, f.now, *inst.PaidAt)

	_, err = f.svc.RecordPayment(ctx, plan[0].ID, types.Zero())
	assert.Error(t, err)
}

func TestService_Close(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e := NewEnrollment(f.student, f.class)
	require.NoError(t, f.svc.Create(ctx, e))

	closed, err := f.svc.Close(ctx, e.ID, CloseRenew)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)
	assert.Equal(t, CloseRenew, closed.ClosedReason)
	assert.Equal(t, f.now, *closed.ClosedAt)

	_, err = f.svc.Close(ctx, e.ID, CloseRenew)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeEnrollmentClosed, appErr.Code)

	_, err = f.svc.Close(ctx, e.ID, "maybe")
	assert.Error(t, err)
}

func TestService_MarkNotified(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e := NewEnrollment(f.student, f.class)
	require.NoError(t, f.svc.Create(ctx, e))

	marked, err := f.svc.MarkNotified(ctx, e.ID, NotifyPaper)
	require.NoError(t, err)
	assert.True(t, marked.NotifiedNearComplete)
	assert.Equal(t, NotifyPaper, marked.NotifiedMethod)
	assert.Equal(t, f.now, *marked.NotifiedAt)

	cleared, err := f.svc.MarkNotified(ctx, e.ID, "")
	require.NoError(t, err)
	assert.False(t, cleared.NotifiedNearComplete)
	assert.Empty(t, cleared.NotifiedMethod)
	assert.Nil(t, cleared.NotifiedAt)

	_, err = f.svc.MarkNotified(ctx, e.ID, "sms")
	assert.Error(t, err)
}

func TestService_Detail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e := NewEnrollment(f.student, f.class)
	require.NoError(t, f.svc.Create(ctx, e))
	f.repo.used[e.ID] = 11

	d, err := f.svc.Detail(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, d.Used)
	assert.Equal(t, -1, d.Remaining)
	assert.Equal(t, "30", d.TotalHours.String())
	assert.Equal(t, "400.00", d.RevenuePerHour.StringFixed(2))
}
