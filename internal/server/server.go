// Package server exposes the persona pipeline over HTTP for callers that
// drive it from a frontend. The browser UI itself lives elsewhere; this
// is only the machine-facing surface.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/BerylCAtieno/persona-generator/internal/exporter"
	"github.com/BerylCAtieno/persona-generator/internal/generator"
	"github.com/BerylCAtieno/persona-generator/internal/questionnaire"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	generator generator.Generator
}

func NewHandler(g generator.Generator) *Handler {
	return &Handler{generator: g}
}

// Register mounts the API routes on the router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.POST("/api/personas", h.HandleGenerate)
}

// RequestLoggingMiddleware logs every request with its response status.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("--> %s %s", c.Request.Method, c.Request.URL.Path)
		c.Next()
		log.Printf("<-- %s %s %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

// HandleGenerate takes a questionnaire CSV as a multipart "file" upload,
// runs the full pipeline, and returns the persona CSV as an attachment.
// Optional form fields section_col/question_col/answer_col override the
// column names.
func (h *Handler) HandleGenerate(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing questionnaire upload: provide a CSV as the \"file\" field"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("reading upload: %v", err)})
		return
	}
	defer f.Close()

	parser := &questionnaire.Parser{
		SectionCol:  c.PostForm("section_col"),
		QuestionCol: c.PostForm("question_col"),
		AnswerCol:   c.PostForm("answer_col"),
	}
	ds, err := parser.Parse(f)
	if err != nil {
		var formatErr *questionnaire.FormatError
		if errors.As(err, &formatErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": formatErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("parsed %q: %d Q&A pairs, %d persona-related", fileHeader.Filename, len(ds.AllQA), len(ds.PersonaQA))

	personas, err := h.generator.GeneratePersonas(c.Request.Context(), ds)
	if err != nil {
		log.Printf("ERROR: persona generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
			"hint":  generator.Hint(err),
		})
		return
	}
	if len(personas) == 0 {
		// Zero personas with no error means the model replied with
		// nothing usable. Surfaced separately from transport failures.
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "no personas could be extracted from the model response",
			"hint":  "Try again, or check that the questionnaire has enough answered questions.",
		})
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, personas, ds.ClientInfo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("personas_%s.csv", uuid.New().String()[:8])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-QA-Count", fmt.Sprint(len(ds.AllQA)))
	c.Header("X-Persona-QA-Count", fmt.Sprint(len(ds.PersonaQA)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
