// Package server exposes the extraction pipeline and the invoice store
// over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/npetit/facturescan/internal/common"
	"github.com/npetit/facturescan/internal/export"
	"github.com/npetit/facturescan/internal/ocr"
	"github.com/npetit/facturescan/internal/pipeline"
	"github.com/npetit/facturescan/internal/repository"
)

// Service wires the OCR extractor, the extraction pipeline and the
// repository behind the HTTP handlers.
type Service struct {
	cfg      *common.Config
	logger   *slog.Logger
	invoices repository.InvoiceRepository
	ocr      *ocr.Extractor
	pipe     *pipeline.Pipeline
	export   *export.Service
}

func NewService(cfg *common.Config, invoices repository.InvoiceRepository, ocrx *ocr.Extractor, pipe *pipeline.Pipeline, exp *export.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		logger:   logger,
		invoices: invoices,
		ocr:      ocrx,
		pipe:     pipe,
		export:   exp,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Service) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = 8 << 20

	api := r.Group("/api")
	{
		api.POST("/invoices", s.uploadInvoice)
		api.GET("/invoices", s.listInvoices)
		api.GET("/invoices/:id", s.getInvoice)
		api.DELETE("/invoices/:id", s.deleteInvoice)
		api.GET("/stats", s.getStats)
		api.GET("/suppliers", s.listSuppliers)
		api.GET("/export", s.exportXLSX)
	}
	r.GET("/files/:name", s.serveAnnotated)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func (s *Service) exportXLSX(c *gin.Context) {
	data, err := s.export.ExportInvoicesXLSX(c.Request.Context())
	if err != nil {
		s.logger.Error("export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="factures.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Service) serveAnnotated(c *gin.Context) {
	// filepath.Base strips any traversal components from the parameter.
	name := filepath.Base(c.Param("name"))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	}
	c.File(filepath.Join(s.cfg.Server.AnnotatedDir, name))
}
