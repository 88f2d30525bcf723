package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/annotate"
	"github.com/npetit/facturescan/internal/entity"
	"github.com/npetit/facturescan/internal/ocr"
	"github.com/npetit/facturescan/internal/schema"
)

// uploadInvoice receives a scanned invoice image, runs OCR and field
// extraction, stores the record and returns it together with the
// reconciliation outcome.
func (s *Service) uploadInvoice(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if fileHeader.Size > constants.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	ext := constants.NormalizeExt(filepath.Ext(fileHeader.Filename))
	if !constants.IsAllowedExt(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type", "allowed": "png, jpg, jpeg"})
		return
	}

	if err := os.MkdirAll(s.cfg.Server.UploadDir, 0o755); err != nil {
		s.logger.Error("failed to create upload dir", "dir", s.cfg.Server.UploadDir, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	id := uuid.New()
	sourceName := id.String() + "." + ext
	sourcePath := filepath.Join(s.cfg.Server.UploadDir, sourceName)
	if err := c.SaveUploadedFile(fileHeader, sourcePath); err != nil {
		s.logger.Error("failed to save upload", "path", sourcePath, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}

	ocrPath := sourcePath
	if s.cfg.OCR.Preprocess {
		prepped, cleanup, err := ocr.Preprocess(sourcePath)
		if err != nil {
			s.logger.Warn("preprocess failed, using original image", "path", sourcePath, "error", err)
		} else {
			defer cleanup()
			ocrPath = prepped
		}
	}

	res, err := s.ocr.Extract(c.Request.Context(), ocrPath)
	if err != nil {
		s.logger.Error("ocr failed", "path", ocrPath, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "text recognition failed"})
		return
	}

	inv, decision := s.pipe.Extract(res.Text, res.Tokens)
	inv.ID = id
	inv.SourceFile = sourceName
	inv.CreatedAt = time.Now().UTC()

	if len(inv.FieldBoxes) > 0 {
		if name, err := s.renderAnnotated(sourcePath, id, inv.FieldBoxes); err != nil {
			s.logger.Warn("annotation failed", "invoice_id", id, "error", err)
		} else {
			inv.AnnotatedFile = name
		}
	}

	payload, err := json.Marshal(inv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if err := schema.ValidateInvoiceJSON(payload); err != nil {
		s.logger.Error("extracted record failed validation", "invoice_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extracted record failed validation"})
		return
	}

	if err := s.invoices.Create(c.Request.Context(), inv); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store invoice"})
		return
	}

	s.logger.Info("invoice processed",
		"invoice_id", id,
		"supplier", inv.Supplier,
		"gross", inv.GrossAmount,
		"ocr_lang", res.Language,
		"ocr_psm", res.PSM,
		"ocr_confidence", res.Confidence,
	)

	resp := gin.H{
		"invoice": inv,
		"ocr": gin.H{
			"language":   res.Language,
			"psm":        res.PSM,
			"confidence": res.Confidence,
		},
	}
	if decision != nil {
		resp["reconciliation"] = decision
	}
	c.JSON(http.StatusCreated, resp)
}

// renderAnnotated draws the located field boxes onto a copy of the scan
// and saves it under the annotated directory. Returns the file name.
func (s *Service) renderAnnotated(sourcePath string, id uuid.UUID, boxes map[constants.FieldKind]*entity.Box) (string, error) {
	src, err := imaging.Open(sourcePath)
	if err != nil {
		return "", err
	}
	out := annotate.Render(src, boxes)
	if err := os.MkdirAll(s.cfg.Server.AnnotatedDir, 0o755); err != nil {
		return "", err
	}
	name := "annotated_" + id.String() + ".png"
	if err := imaging.Save(out, filepath.Join(s.cfg.Server.AnnotatedDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Service) listInvoices(c *gin.Context) {
	invs, err := s.invoices.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invoices"})
		return
	}
	if invs == nil {
		invs = []*entity.Invoice{}
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invs, "count": len(invs)})
}

func (s *Service) getInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}
	inv, err := s.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load invoice"})
		return
	}
	if inv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Service) deleteInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}
	inv, err := s.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load invoice"})
		return
	}
	if inv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	found, err := s.invoices.Delete(c.Request.Context(), id)
	if err != nil || !found {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete invoice"})
		return
	}
	// Best-effort cleanup of the stored files.
	if inv.SourceFile != "" {
		_ = os.Remove(filepath.Join(s.cfg.Server.UploadDir, inv.SourceFile))
	}
	if inv.AnnotatedFile != "" {
		_ = os.Remove(filepath.Join(s.cfg.Server.AnnotatedDir, inv.AnnotatedFile))
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
