package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/auth"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/query"
)

var errNoCaller = errors.New("caller missing from context")

func caller(c *gin.Context) (auth.Caller, bool) {
	cl, ok := auth.CallerFrom(c)
	if !ok {
		response.Error(c, errNoCaller)
	}
	return cl, ok
}

// create godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        X-User-Id    header  string                true  "Caller id"
// @Param        X-User-Role  header  string                true  "admin or technician"
// @Param        body         body    createProjectRequest  true  "Project fields"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /api/projects [post]
func (h *Handler) create(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := decodeStrict(c.Request.Body, &req); err != nil {
		response.Error(c, err)
		return
	}
	in, err := req.toNewProject(h.validate)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), cl, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

// list godoc
// @Summary      List visible projects
// @Tags         projects
// @Produce      json
// @Param        X-User-Id    header  string  true   "Caller id"
// @Param        X-User-Role  header  string  true   "admin or technician"
// @Param        page         query   int     false  "Page, from 1"
// @Param        limit        query   int     false  "Page size, 1..100"
// @Param        sortBy       query   string  false  "createdAt, updatedAt, scheduledAt, title, status or clientName"
// @Param        sortOrder    query   string  false  "asc or desc"
// @Param        status       query   string  false  "DRAFT, IN_PROGRESS, DONE or CANCELED"
// @Param        search       query   string  false  "Matches title, client name or address"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Router       /api/projects [get]
func (h *Handler) list(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	res, err := h.svc.List(c.Request.Context(), cl, query.Raw{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, res.Items, res.Meta)
}

// get godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        X-User-Id    header  string  true  "Caller id"
// @Param        X-User-Role  header  string  true  "admin or technician"
// @Param        id           path    string  true  "Project id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/projects/{id} [get]
func (h *Handler) get(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), cl, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

// update godoc
// @Summary      Update a project
// @Description  Partial update. Nullable fields accept null to clear them.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        X-User-Id    header  string                true  "Caller id"
// @Param        X-User-Role  header  string                true  "admin or technician"
// @Param        id           path    string                true  "Project id"
// @Param        body         body    updateProjectRequest  true  "Fields to change"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/projects/{id} [put]
func (h *Handler) update(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := decodeStrict(c.Request.Body, &req); err != nil {
		response.Error(c, err)
		return
	}
	patch, err := req.toPatch(h.validate)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), cl, c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

// delete godoc
// @Summary      Soft-delete a project
// @Tags         projects
// @Produce      json
// @Param        X-User-Id    header  string  true  "Caller id"
// @Param        X-User-Role  header  string  true  "admin or technician"
// @Param        id           path    string  true  "Project id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/projects/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	p, err := h.svc.Delete(c.Request.Context(), cl, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}
