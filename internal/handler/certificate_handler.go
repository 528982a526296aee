package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conflu-ai/conflu-api/internal/service"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
	"github.com/conflu-ai/conflu-api/pkg/response"
)

// CertificateHandler exposes the certificate issuance endpoint.
type CertificateHandler struct {
	certificates *service.CertificateService
}

// NewCertificateHandler constructs CertificateHandler.
func NewCertificateHandler(certificates *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificates: certificates}
}

// Send godoc
// @Summary Generate and email a completion certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param payload body service.SendCertificateRequest true "Recipient"
// @Success 200 {object} response.Envelope
// @Router /certificados [post]
func (h *CertificateHandler) Send(c *gin.Context) {
	var req service.SendCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.certificates.Send(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Certificado enviado com sucesso!", nil)
}
