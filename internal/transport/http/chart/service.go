package chart

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainimage "trading-analyzer-go/internal/domain/image"
	"trading-analyzer-go/internal/platform/config"
	"trading-analyzer-go/internal/platform/errors"
	"trading-analyzer-go/internal/platform/logging"
	httptransport "trading-analyzer-go/internal/transport/http"
)

const (
	ServiceName    = "AI Trading Analyzer API"
	ServiceVersion = "1.0.0"
)

// Service is the HTTP transport for chart analysis. It orchestrates the
// validator, normalizer and analyzer in strict sequence and shapes the
// response; the first failure aborts the request.
type Service struct {
	logger     *logging.Logger
	config     *config.Config
	validator  *domainimage.Validator
	normalizer *domainimage.Normalizer
	analyzer   Analyzer
}

// NewService creates the chart analysis service.
func NewService(
	cfg *config.Config,
	logger *logging.Logger,
	validator *domainimage.Validator,
	normalizer *domainimage.Normalizer,
	analyzer Analyzer,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "chart.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "chart.new", "logger is required")
	}
	if validator == nil || normalizer == nil {
		return nil, errors.New(errors.KindConfig, "chart.new", "image pipeline is required")
	}
	if analyzer == nil {
		return nil, errors.New(errors.KindConfig, "chart.new", "analyzer is required")
	}

	return &Service{
		logger:     logger,
		config:     cfg,
		validator:  validator,
		normalizer: normalizer,
		analyzer:   analyzer,
	}, nil
}

// Register attaches the health check and upload routes.
func (s *Service) Register(ctx context.Context, engine *gin.Engine, api *gin.RouterGroup) error {
	engine.GET("/", s.handleHealth)
	api.POST("/upload", s.handleUpload)

	s.logger.InfoTag("HTTP", "chart analysis routes registered")
	return nil
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "online",
		Service: ServiceName,
		Version: ServiceVersion,
	})
}

// handleUpload accepts a multipart chart image, runs it through the
// validation and normalization pipeline, submits it for analysis once and
// returns the analysis text with a timestamp.
func (s *Service) handleUpload(c *gin.Context) {
	upload, err := s.readUpload(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	decoded, err := s.validator.Validate(upload.ContentType, upload.Data)
	if err != nil {
		s.respondError(c, err)
		return
	}

	normalized, err := s.normalizer.Normalize(decoded, upload.Data, upload.Filename)
	if err != nil {
		s.respondError(c, err)
		return
	}

	analysis, err := s.analyzer.Analyze(c.Request.Context(), normalized.Data, normalized.Format)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AnalysisResponse{
		Analysis:  analysis,
		Timestamp: time.Now().Format(time.RFC3339),
		Filename:  upload.Filename,
	})
}

// readUpload pulls the file part into memory. The part is consumed exactly
// once; the buffer is request-scoped and dropped on every exit path.
func (s *Service) readUpload(c *gin.Context) (*domainimage.Upload, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, errors.Wrap(errors.KindTransport, "chart.upload",
			"file field is required", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(errors.KindTransport, "chart.upload",
			"failed to open uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(errors.KindInternal, "chart.upload",
			"failed to read uploaded file", err)
	}

	return &domainimage.Upload{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Filename:    fileHeader.Filename,
	}, nil
}

func (s *Service) respondError(c *gin.Context, err error) {
	status := httptransport.StatusForError(err)
	detail := httptransport.DetailForError(err)

	if status >= http.StatusInternalServerError {
		s.logger.ErrorTag("HTTP", "upload failed: %v", err)
	} else {
		s.logger.WarnTag("HTTP", "upload rejected: %v", err)
	}

	httptransport.RespondDetail(c, status, detail)
}
