package detection

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"aidetect-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the detection service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches detection routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/analysis-types", h.analysisTypes)
	rg.GET("/health", h.health)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.respondError(c, NoImageProvided("no image was uploaded"))
		return
	}
	if fileHeader.Filename == "" {
		h.respondError(c, NoImageProvided("no image selected"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, InvalidImage("unable to read image", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(c, InvalidImage("unable to read image", err))
		return
	}

	analysisType := c.PostForm("type")

	result, err := h.Svc.AnalyzeImage(c.Request.Context(), data, fileHeader.Filename, analysisType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, result.Record())
}

// analysisTypes lists the selectable strategy variants.
func (h *Handler) analysisTypes(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"types": []gin.H{
			{
				"id":          string(VariantStandard),
				"name":        "Standard analysis",
				"description": "Balanced between speed and precision",
			},
			{
				"id":          string(VariantFast),
				"name":        "Fast analysis",
				"description": "Quicker verdict with a one-line summary",
			},
			{
				"id":          string(VariantDetailed),
				"name":        "Detailed analysis",
				"description": "Deeper, slower forensic rationale",
			},
		},
	})
}

func (h *Handler) health(c *gin.Context) {
	status := h.Svc.Health()
	code := http.StatusOK
	if !status.APIConfigured {
		code = http.StatusServiceUnavailable
	}
	respond.JSON(c, code, status)
}

// respondError maps the error taxonomy onto transport status codes:
// client-input failures are 4xx, upstream model failures 502/503, everything
// else 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	derr := AsDetectionError(err)
	respond.Error(c, statusForKind(derr.Kind), derr.Code(), derr.Message)
}

func statusForKind(kind Kind) int {
	switch kind {
	case KindNoImageProvided, KindInvalidImage:
		return http.StatusBadRequest
	case KindAnalysisFailed:
		return http.StatusBadGateway
	case KindAPIKeyMissing, KindModelNotAvailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
