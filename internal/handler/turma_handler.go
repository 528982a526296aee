package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conflu-ai/conflu-api/internal/service"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
	"github.com/conflu-ai/conflu-api/pkg/response"
)

// TurmaHandler exposes turma (class group) endpoints.
type TurmaHandler struct {
	turmas *service.TurmaService
}

// NewTurmaHandler constructs TurmaHandler.
func NewTurmaHandler(turmas *service.TurmaService) *TurmaHandler {
	return &TurmaHandler{turmas: turmas}
}

// List godoc
// @Summary List turmas
// @Tags Turmas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /turmas [get]
func (h *TurmaHandler) List(c *gin.Context) {
	turmas, err := h.turmas.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, turmas)
}

// Get godoc
// @Summary Get turma detail
// @Tags Turmas
// @Produce json
// @Param id path int true "Turma ID"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id} [get]
func (h *TurmaHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	turma, err := h.turmas.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, turma)
}

// Create godoc
// @Summary Create turma
// @Tags Turmas
// @Accept json
// @Produce json
// @Param payload body service.CreateTurmaRequest true "Turma payload"
// @Success 201 {object} response.Envelope
// @Router /turmas [post]
func (h *TurmaHandler) Create(c *gin.Context) {
	var req service.CreateTurmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	turma, err := h.turmas.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Turma criada com sucesso!", turma)
}

// Update godoc
// @Summary Partially update turma
// @Tags Turmas
// @Accept json
// @Produce json
// @Param id path int true "Turma ID"
// @Param payload body service.UpdateTurmaRequest true "Turma payload"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id} [patch]
func (h *TurmaHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateTurmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	turma, err := h.turmas.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Turma atualizada com sucesso!", turma)
}

// Delete godoc
// @Summary Delete turma
// @Tags Turmas
// @Produce json
// @Param id path int true "Turma ID"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id} [delete]
func (h *TurmaHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.turmas.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Turma deletada com sucesso!", nil)
}
