package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conflu-ai/conflu-api/internal/service"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
	"github.com/conflu-ai/conflu-api/pkg/response"
)

// CompanyHandler exposes company endpoints.
type CompanyHandler struct {
	companies *service.CompanyService
}

// NewCompanyHandler constructs CompanyHandler.
func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// List godoc
// @Summary List companies
// @Tags Companies
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /empresas [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, companies)
}

// Get godoc
// @Summary Get company detail
// @Tags Companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} response.Envelope
// @Router /empresas/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	company, err := h.companies.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, company)
}

// Create godoc
// @Summary Create company
// @Tags Companies
// @Accept json
// @Produce json
// @Param payload body service.CreateCompanyRequest true "Company payload"
// @Success 201 {object} response.Envelope
// @Router /empresas [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	company, err := h.companies.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Empresa criada com sucesso!", company)
}

// Update godoc
// @Summary Partially update company
// @Tags Companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param payload body service.UpdateCompanyRequest true "Company payload"
// @Success 200 {object} response.Envelope
// @Router /empresas/{id} [patch]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	company, err := h.companies.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Empresa atualizada com sucesso!", company)
}

// Delete godoc
// @Summary Delete company
// @Tags Companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} response.Envelope
// @Router /empresas/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.companies.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Empresa deletada com sucesso!", nil)
}
