package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/equity/internal/buildinfo"
	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/render"
)

// Output formats accepted by the statement endpoint.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// handleStatement computes a statement from the posted ledger.
func (s *Server) handleStatement(c *gin.Context) {
	logger := LoggerFrom(c)

	format := c.DefaultQuery("format", FormatJSON)
	switch format {
	case FormatJSON, FormatMarkdown, FormatHTML:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format " + format})
		return
	}

	var req StatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid statement request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := req.ToInput()
	if err != nil {
		logger.Warn("invalid statement input", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := in.Overrides.Validate(s.engine.Catalog(), equity.Layout()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := s.engine.Compute(in)
	logger.Info("statement computed",
		"period", res.Period.Label,
		"entries", len(in.Entries),
		"warnings", len(res.Reconciliation.Warnings),
	)

	switch format {
	case FormatMarkdown:
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(s.markdown(res)))
	case FormatHTML:
		html, err := render.HTML(s.markdown(res))
		if err != nil {
			logger.Error("rendering html", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering failed"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (s *Server) markdown(res equity.Result) string {
	return render.Markdown(res, render.Options{Company: s.company, Formatter: s.engine.Formatter()})
}

// handleCatalog describes the statement columns and rows.
func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		Columns: s.engine.Catalog().Columns(),
		RowIDs:  equity.RowIDs(equity.Layout()),
	})
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "build": buildinfo.Current()})
}
