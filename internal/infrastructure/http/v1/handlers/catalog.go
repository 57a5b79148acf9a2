package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// createBody is a create request DTO decoded into *B.
type createBody[T any, B any] interface {
	*B
	ToEntity() T
}

// updateBody is an update request DTO applied onto the stored row.
type updateBody[T any, B any] interface {
	*B
	ApplyTo(T)
}

// CatalogHandler serves list, get, create, update and delete for one
// catalog. Request decoding is bound at construction so the handler itself
// only knows the entity type.
type CatalogHandler[T entity.Validatable] struct {
	*BaseHandler
	service *domain.CatalogService[T]
	present func(T) any

	decodeCreate func(c *gin.Context) (T, bool)
	decodeUpdate func(c *gin.Context, existing T) bool
}

func newCatalogHandler[T entity.Validatable, C, U any, PC createBody[T, C], PU updateBody[T, U]](
	base *BaseHandler,
	service *domain.CatalogService[T],
	present func(T) any,
) *CatalogHandler[T] {
	h := &CatalogHandler[T]{BaseHandler: base, service: service, present: present}
	h.decodeCreate = func(c *gin.Context) (T, bool) {
		var req C
		if !h.BindJSON(c, &req) {
			var zero T
			return zero, false
		}
		return PC(&req).ToEntity(), true
	}
	h.decodeUpdate = func(c *gin.Context, existing T) bool {
		var req U
		if !h.BindJSON(c, &req) {
			return false
		}
		PU(&req).ApplyTo(existing)
		return true
	}
	return h
}

// ListFilterFromQuery reads search, isActive, limit, offset, orderBy, the
// comma-separated "ids" and the JSON-encoded "filter" parameter.
func (h *BaseHandler) ListFilterFromQuery(c *gin.Context) (domain.ListFilter, bool) {
	f := domain.DefaultListFilter()
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", f.Limit)
	f.Offset = h.ParseIntQuery(c, "offset", 0)
	f.OrderBy = c.Query("orderBy")
	f.IsActive = h.ParseBoolQuery(c, "isActive")

	if raw := c.Query("ids"); raw != "" {
		ids, err := id.ParseList(raw)
		if err != nil {
			h.invalid(c, "ids must be comma-separated uuids", "field", "ids")
			return f, false
		}
		f.IDs = ids
	}

	if raw := c.Query("filter"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &f.AdvancedFilters); err != nil {
			h.Error(c, apperror.NewValidation("filter must be a JSON array of conditions"))
			return f, false
		}
	}
	return f, true
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	f, ok := h.ListFilterFromQuery(c)
	if !ok {
		return
	}
	res, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, h.present(it))
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: res.TotalCount, Limit: res.Limit, Offset: res.Offset})
}

func (h *CatalogHandler[T]) Get(c *gin.Context) {
	key, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	row, err := h.service.GetByID(c.Request.Context(), key)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, h.present(row))
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	row, ok := h.decodeCreate(c)
	if !ok {
		return
	}
	if err := h.service.Create(c.Request.Context(), row); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, h.present(row))
}

// Update applies the body onto the stored row. The body carries the
// version the client read, so a stale edit fails with
// CONCURRENT_MODIFICATION.
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	key, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	row, err := h.service.GetByID(ctx, key)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.decodeUpdate(c, row) {
		return
	}
	if err := h.service.Update(ctx, row); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, h.present(row))
}

// Delete answers CONFLICT while other rows still reference the entity.
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	key, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), key); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
