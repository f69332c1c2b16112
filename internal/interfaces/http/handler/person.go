package handler

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	personapp "github.com/finapp2p/backend/internal/application/person"
	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PersonHandler handles person-related API endpoints
type PersonHandler struct {
	BaseHandler
	service *personapp.PersonService
}

// NewPersonHandler creates a new PersonHandler
func NewPersonHandler(service *personapp.PersonService) *PersonHandler {
	return &PersonHandler{
		service: service,
	}
}

// List godoc
// @ID           listPersons
// @Summary      List persons
// @Description  Returns every person ordered by name. The optional facets are applied with the filter engine; document narrows the result to the record holding that CPF/CNPJ.
// @Tags         persons
// @Produce      json
// @Param        document query string false "Exact CPF/CNPJ"
// @Param        q        query string false "Case-insensitive match on name and document"
// @Param        type     query string false "Comma separated: pf,pj"
// @Param        status   query string false "Comma separated: active,inactive"
// @Param        role     query string false "Comma separated roles"
// @Success      200 {array}  PersonRow
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/persons [get]
func (h *PersonHandler) List(c *gin.Context) {
	var query dto.PersonListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	criteria := query.Criteria()

	var persons []person.Person
	if document := strings.TrimSpace(query.Document); document != "" {
		p, found, err := h.service.FindByDocument(ctx, document)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if found {
			persons = criteria.Apply([]person.Person{p})
		}
	} else {
		var err error
		persons, err = h.service.List(ctx, criteria)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, toRows(persons))
}

// Get godoc
// @ID           getPerson
// @Summary      Get person by ID
// @Tags         persons
// @Produce      json
// @Param        id path string true "Person ID"
// @Success      200 {object} PersonRow
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/persons/{id} [get]
func (h *PersonHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, person.RowWithTimestamps(p))
}

// Create godoc
// @ID           createPerson
// @Summary      Create a person
// @Description  Creates an individual (pf) or a company (pj). A uuid is generated when id is absent. document must be present but may be blank.
// @Tags         persons
// @Accept       json
// @Produce      json
// @Param        request body dto.PersonRequest true "Person row"
// @Success      201 {object} PersonRow
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/persons [post]
func (h *PersonHandler) Create(c *gin.Context) {
	var req dto.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	p := req.ToRow().ToPerson()
	if err := h.service.Save(c.Request.Context(), p, true); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person.RowWithTimestamps(p))
}

// Update godoc
// @ID           updatePerson
// @Summary      Update a person
// @Description  Replaces the stored record. The path id wins over any id in the body.
// @Tags         persons
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Person ID"
// @Param        request body dto.PersonRequest true "Person row"
// @Success      200 {object} PersonRow
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/persons/{id} [put]
func (h *PersonHandler) Update(c *gin.Context) {
	var req dto.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	row := req.ToRow()
	row.ID = c.Param("id")
	p := row.ToPerson()
	if err := h.service.Save(c.Request.Context(), p, false); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, person.RowWithTimestamps(p))
}

// Delete godoc
// @ID           deletePerson
// @Summary      Delete a person
// @Description  Removes the record. Unknown ids also answer 204.
// @Tags         persons
// @Param        id path string true "Person ID"
// @Success      204
// @Failure      500 {object} ErrorResponse
// @Router       /api/persons/{id} [delete]
func (h *PersonHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// toRows orders persons by name, then id, and converts them to wire rows.
// Stores differ in their natural order, so the API sorts itself.
func toRows(persons []person.Person) []person.Row {
	sorted := slices.Clone(persons)
	slices.SortStableFunc(sorted, func(a, b person.Person) int {
		return cmp.Or(
			strings.Compare(a.Common().Name, b.Common().Name),
			strings.Compare(a.Common().ID, b.Common().ID),
		)
	})

	rows := make([]person.Row, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, person.RowWithTimestamps(p))
	}
	return rows
}
