package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nfimport/internal/config"
	"nfimport/internal/domain"
	"nfimport/internal/middleware"
	"nfimport/internal/service"
)

// Messages returned by the invoice import endpoint.
const (
	MsgFileMissing     = "Nenhum arquivo XML enviado"
	MsgNotXML          = "O arquivo deve ser um XML (.xml)"
	MsgUnparseable     = "Não foi possível ler os dados do XML"
	MsgValueMissing    = "Valor total da nota fiscal não encontrado no XML"
	MsgDuplicate       = "Nota fiscal já importada"
	MsgDuplicateFormat = "Nota fiscal já importada (conta a pagar %s)"
	MsgImportFailed    = "Erro ao importar nota fiscal"
	MsgImportedFormat  = "Nota Fiscal %s importada com sucesso!(%d itens)"
)

// ImportResponse is the body of every invoice import answer. The HTTP status
// is always 200; callers branch on Success.
type ImportResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    *ImportData `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ImportData describes the payable created from the invoice. TotalItens counts
// the stored items; it is lower than ItensEncontrados on a degraded import.
type ImportData struct {
	ID               uuid.UUID   `json:"id"`
	Descricao        string      `json:"descricao"`
	Valor            json.Number `json:"valor"`
	Fornecedor       *string     `json:"fornecedor"`
	DataVencimento   string      `json:"dataVencimento"`
	TotalItens       int         `json:"totalItens"`
	ItensEncontrados int         `json:"itensEncontrados"`
	ErroItens        string      `json:"erroItens,omitempty"`
}

// ImportHandler handles NF-e uploads.
type ImportHandler struct {
	importService service.ImportService
	formField     string
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService, cfg config.ImportConfig) *ImportHandler {
	field := cfg.FormField
	if field == "" {
		field = "xml"
	}
	return &ImportHandler{importService: importService, formField: field}
}

// ImportXML handles POST /api/v1/payables/import-xml
// @Summary Import an NF-e XML
// @Description Creates a payable and its line items from an uploaded NF-e. Always answers 200; check success.
// @Tags payables
// @Accept multipart/form-data
// @Produce json
// @Param xml formData file true "NF-e XML file (.xml)"
// @Success 200 {object} ImportResponse "Import outcome"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /payables/import-xml [post]
func (h *ImportHandler) ImportXML(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("request_id", c.GetString("request_id")).
				Msg("invoice import panicked")
			importFailure(c, MsgImportFailed)
		}
	}()

	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		importFailure(c, MsgImportFailed)
		return
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		importFailure(c, MsgImportFailed)
		return
	}

	file, header, err := c.Request.FormFile(h.formField)
	if err != nil {
		importFailure(c, MsgFileMissing)
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), domain.XMLExtension) {
		importFailure(c, MsgNotXML)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("reading uploaded xml")
		importFailure(c, MsgImportFailed)
		return
	}

	result, err := h.importService.Import(c.Request.Context(), service.ImportInput{
		TenantID:  tenantID,
		UserID:    userID,
		UserEmail: middleware.GetEmail(c),
		FileName:  header.Filename,
		Content:   content,
	})
	if err != nil {
		msg := importErrorMessage(err)
		if msg == MsgImportFailed {
			log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("invoice import failed")
		}
		importFailure(c, msg)
		return
	}

	number := result.InvoiceNumber
	if number == "" {
		number = service.NoNumber
	}
	var supplier *string
	if result.SupplierName != "" {
		supplier = &result.SupplierName
	}

	c.JSON(http.StatusOK, ImportResponse{
		Success: true,
		Message: fmt.Sprintf(MsgImportedFormat, number, result.ItemsPersisted),
		Data: &ImportData{
			ID:               result.PayableID,
			Descricao:        result.Description,
			Valor:            json.Number(result.Value.StringFixed(2)),
			Fornecedor:       supplier,
			DataVencimento:   result.DueDate.Format("2006-01-02"),
			TotalItens:       result.ItemsPersisted,
			ItensEncontrados: result.ItemsFound,
			ErroItens:        result.ItemError,
		},
	})
}

func importErrorMessage(err error) string {
	var dup *domain.DuplicateInvoiceError
	switch {
	case errors.As(err, &dup) && dup.ExistingID == uuid.Nil:
		return MsgDuplicate
	case errors.As(err, &dup):
		return fmt.Sprintf(MsgDuplicateFormat, dup.ExistingID)
	case errors.Is(err, domain.ErrInputMissing):
		return MsgFileMissing
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return MsgNotXML
	case errors.Is(err, domain.ErrDocumentUnparseable):
		return MsgUnparseable
	case errors.Is(err, domain.ErrValueMissing):
		return MsgValueMissing
	default:
		return MsgImportFailed
	}
}

func importFailure(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, ImportResponse{Success: false, Error: msg})
}
