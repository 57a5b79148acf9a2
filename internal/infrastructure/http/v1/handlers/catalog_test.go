package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/catalogs/subject"
	"tutorcenter/internal/infrastructure/http/v1/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memSubjects is an in-memory subject.Repository.
type memSubjects struct {
	mu    sync.Mutex
	rows  map[id.ID]subject.Subject
	order []id.ID
}

func newMemSubjects() *memSubjects {
	return &memSubjects{rows: make(map[id.ID]subject.Subject)}
}

func (m *memSubjects) Create(_ context.Context, s *subject.Subject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.ID] = *s
	m.order = append(m.order, s.ID)
	return nil
}

func (m *memSubjects) GetByID(_ context.Context, key id.ID) (*subject.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[key]
	if !ok {
		return nil, apperror.NewNotFound("subject", key.String())
	}
	return &s, nil
}

func (m *memSubjects) GetForUpdate(ctx context.Context, key id.ID) (*subject.Subject, error) {
	return m.GetByID(ctx, key)
}

func (m *memSubjects) Update(_ context.Context, s *subject.Subject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[s.ID]
	if !ok {
		return apperror.NewNotFound("subject", s.ID.String())
	}
	if cur.Version != s.Version {
		return apperror.NewConcurrentModification("subject", s.ID.String())
	}
	s.Version++
	m.rows[s.ID] = *s
	return nil
}

func (m *memSubjects) Delete(_ context.Context, key id.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, key)
	return nil
}

func (m *memSubjects) List(_ context.Context, f domain.ListFilter) (domain.ListResult[*subject.Subject], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := domain.ListResult[*subject.Subject]{Limit: f.Limit, Offset: f.Offset}
	for _, key := range m.order {
		s, ok := m.rows[key]
		if !ok {
			continue
		}
		if f.IsActive != nil && s.IsActive != *f.IsActive {
			continue
		}
		if len(f.IDs) > 0 && !slices.Contains(f.IDs, key) {
			continue
		}
		out.Items = append(out.Items, &s)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (m *memSubjects) Exists(_ context.Context, key id.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[key]
	return ok, nil
}

func newSubjectRouter(repo *memSubjects) *gin.Engine {
	svc := subject.NewService(repo, &tx.MockManager{})
	h := NewSubjectHandler(NewBaseHandler(), svc)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	g := r.Group("/subjects")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func request(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCatalogHandler_CreateGetList(t *testing.T) {
	repo := newMemSubjects()
	r := newSubjectRouter(repo)

	rec := request(r, http.MethodPost, "/subjects", map[string]any{"name": " Math "})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Math", created["name"])
	assert.Equal(t, true, created["isActive"])

	rec = request(r, http.MethodGet, "/subjects/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(r, http.MethodGet, "/subjects?isActive=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.EqualValues(t, 0, list["totalCount"])
}

func TestCatalogHandler_ListByIDs(t *testing.T) {
	repo := newMemSubjects()
	math, science := subject.NewSubject("Math"), subject.NewSubject("Science")
	require.NoError(t, repo.Create(context.Background(), math))
	require.NoError(t, repo.Create(context.Background(), science))
	r := newSubjectRouter(repo)

	rec := request(r, http.MethodGet, "/subjects?ids="+science.ID.String()+",", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items      []map[string]any `json:"items"`
		TotalCount int64            `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.EqualValues(t, 1, list.TotalCount)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Science", list.Items[0]["name"])

	rec = request(r, http.MethodGet, "/subjects?ids="+math.ID.String()+",x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeValidation)
}

func TestCatalogHandler_CreateValidation(t *testing.T) {
	r := newSubjectRouter(newMemSubjects())

	rec := request(r, http.MethodPost, "/subjects", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeValidation)
}

func TestCatalogHandler_UpdateStaleVersion(t *testing.T) {
	repo := newMemSubjects()
	s := subject.NewSubject("Science")
	require.NoError(t, repo.Create(context.Background(), s))
	r := newSubjectRouter(repo)

	rec := request(r, http.MethodPut, "/subjects/"+s.ID.String(), map[string]any{
		"name": "Science 2", "isActive": true, "version": s.Version,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(r, http.MethodPut, "/subjects/"+s.ID.String(), map[string]any{
		"name": "Science 3", "isActive": true, "version": s.Version,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeConcurrentModification)
}

func TestCatalogHandler_BadID(t *testing.T) {
	r := newSubjectRouter(newMemSubjects())

	rec := request(r, http.MethodGet, "/subjects/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(r, http.MethodGet, "/subjects/"+id.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_Delete(t *testing.T) {
	repo := newMemSubjects()
	s := subject.NewSubject("English")
	require.NoError(t, repo.Create(context.Background(), s))
	r := newSubjectRouter(repo)

	rec := request(r, http.MethodDelete, "/subjects/"+s.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	ok, _ := repo.Exists(context.Background(), s.ID)
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 1, d.Day())

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("01/06/2025")
	assert.Error(t, err)
}
