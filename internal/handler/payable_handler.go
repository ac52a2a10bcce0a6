package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nfimport/internal/csvexport"
	"nfimport/internal/service"
	"nfimport/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PayableHandler serves payables created by invoice imports.
type PayableHandler struct {
	payableService service.PayableService
}

// NewPayableHandler creates a new PayableHandler.
func NewPayableHandler(payableService service.PayableService) *PayableHandler {
	return &PayableHandler{payableService: payableService}
}

// GetByID handles GET /api/v1/payables/:id
// @Summary Get a payable
// @Tags payables
// @Produce json
// @Param id path string true "Payable ID"
// @Success 200 {object} APIResponse{data=domain.PayableWithItems}
// @Failure 404 {object} APIResponse "Payable not found"
// @Security BearerAuth
// @Router /payables/{id} [get]
func (h *PayableHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	payableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payable ID")
		return
	}

	payable, err := h.payableService.GetByID(c.Request.Context(), tenantID, payableID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, payable)
}

// GetSourceURL handles GET /api/v1/payables/:id/xml
// @Summary Download link for the archived XML
// @Tags payables
// @Produce json
// @Param id path string true "Payable ID"
// @Success 200 {object} APIResponse "Presigned URL"
// @Failure 404 {object} APIResponse "Payable not found or XML not archived"
// @Security BearerAuth
// @Router /payables/{id}/xml [get]
func (h *PayableHandler) GetSourceURL(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	payableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payable ID")
		return
	}

	url, err := h.payableService.GetSourceURL(c.Request.Context(), tenantID, payableID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// ExportItemsCSV handles GET /api/v1/payables/:id/items.csv
// @Summary Export line items as CSV
// @Tags payables
// @Produce text/csv
// @Param id path string true "Payable ID"
// @Security BearerAuth
// @Router /payables/{id}/items.csv [get]
func (h *PayableHandler) ExportItemsCSV(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	payableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payable ID")
		return
	}

	payable, err := h.payableService.GetByID(c.Request.Context(), tenantID, payableID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(payable.Description, time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	err = w.WriteHeader()
	if err == nil {
		err = w.WriteItems(payable.Items)
	}
	w.Flush()
	if err == nil {
		err = w.Error()
	}
	if err != nil {
		log.Error().Err(err).Str("payable_id", payableID.String()).Msg("writing items csv")
	}
}

// ExportItemsXLSX handles GET /api/v1/payables/:id/items.xlsx
func (h *PayableHandler) ExportItemsXLSX(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	payableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payable ID")
		return
	}

	payable, err := h.payableService.GetByID(c.Request.Context(), tenantID, payableID)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsxexport.WriteItems(&buf, payable.Items); err != nil {
		HandleError(c, err)
		return
	}

	filename := strings.TrimSuffix(csvexport.BuildFilename(payable.Description, time.Now()), ".csv") + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
