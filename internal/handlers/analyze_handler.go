package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"interview-analyzer/internal/models"
	"interview-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer  services.AnalyzerService
	encoder   services.MediaEncoder
	pdfParser services.PDFParserService
	session   *services.AnalysisSession
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	encoder services.MediaEncoder,
	pdfParser services.PDFParserService,
	session *services.AnalysisSession,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:  analyzer,
		encoder:   encoder,
		pdfParser: pdfParser,
		session:   session,
	}
}

// HandleAnalyze handles POST /analyze. The call is synchronous: the
// response carries the finished report or the failure.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	media, jobContext, err := h.readSubmission(c)
	if err != nil {
		return h.rejectSubmission(c, err)
	}

	id, err := h.session.Begin()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	analysis, err := h.analyzer.Analyze(c.UserContext(), media, jobContext)
	if err != nil {
		h.session.Fail(id, publicMessage(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": publicMessage(err),
		})
	}

	if !h.session.Complete(id, analysis) {
		// The user reset while this submission was running, so the
		// result is dropped rather than stored.
		return c.JSON(models.AnalyzeResponse{
			ID:    id.String(),
			State: string(models.StateIdle),
		})
	}

	return c.JSON(models.AnalyzeResponse{
		ID:       id.String(),
		State:    string(models.StateSucceeded),
		Analysis: analysis,
	})
}

// rejectSubmission answers a submission that never reached the analyzer.
// An unreadable upload is a pipeline failure rather than a malformed
// request, so it also lands in the session slot like the failures the
// analyzer reports. The slot is left alone while another submission holds
// it.
func (h *AnalyzeHandler) rejectSubmission(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	if errors.Is(err, services.ErrMediaUnreadable) {
		status = fiber.StatusInternalServerError
		if id, beginErr := h.session.Begin(); beginErr == nil {
			h.session.Fail(id, publicMessage(err))
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error": publicMessage(err),
	})
}

// readSubmission accepts either a multipart form with a "video" file or a
// JSON body with a base64 data URL.
func (h *AnalyzeHandler) readSubmission(c *fiber.Ctx) (*models.SelectedMedia, string, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.readMultipart(c)
	}

	return h.readJSON(c)
}

func (h *AnalyzeHandler) readMultipart(c *fiber.Ctx) (*models.SelectedMedia, string, error) {
	file, err := c.FormFile("video")
	if err != nil {
		return nil, "", fmt.Errorf("a 'video' file is required")
	}

	media, err := h.encoder.ReadUpload(file)
	if err != nil {
		return nil, "", err
	}

	jobContext := c.FormValue("job_description")

	// A job description may also arrive as a PDF; its text replaces the
	// form value.
	if jdFile, err := c.FormFile("job_description_file"); err == nil && jdFile != nil {
		content, err := h.pdfParser.ExtractFromUpload(jdFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read job description PDF: %v", err)
		}
		jobContext = strings.TrimSpace(content.Text)
	}

	return media, jobContext, nil
}

func (h *AnalyzeHandler) readJSON(c *fiber.Ctx) (*models.SelectedMedia, string, error) {
	var req models.AnalyzeJSONRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, "", fmt.Errorf("invalid request payload")
	}

	if req.Video == "" {
		return nil, "", fmt.Errorf("'video' is required as a base64 data URL")
	}

	media, err := h.encoder.DecodeDataURL(req.Video)
	if err != nil {
		return nil, "", err
	}

	media.DisplayName = req.FileName
	if media.DisplayName == "" {
		media.DisplayName = "uploaded video"
	}

	return media, req.JobDescription, nil
}

// publicMessage keeps remote failure detail out of responses. Validation
// reasons pass through so the user can fix the submission.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrAnalysisFailed):
		return "analysis failed. Please try again."
	case errors.Is(err, services.ErrMissingAPIKey):
		return "analysis service is not configured"
	case errors.Is(err, services.ErrMediaUnreadable):
		return "failed to read the uploaded video"
	default:
		return err.Error()
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnsupportedMediaType), errors.Is(err, services.ErrMediaTooLarge):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrAnalysisInFlight):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrMissingAPIKey):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrAnalysisFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
