package api

import (
	models "SigPull/internal/domain/models"
	"SigPull/internal/usecase"
	xhttp "SigPull/pkg/http"
	xlogger "SigPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type AnalysisEchoHandler struct {
	logger *xlogger.Logger
	query  *usecase.AnalysisQuery
}

func NewAnalysisEchoHandler(logger *xlogger.Logger, query *usecase.AnalysisQuery) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{logger: logger, query: query}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analysis/:symbol", h.Latest)
	g.GET("/summary", h.Summary)
	g.GET("/history", h.History)
	g.POST("/analyze", h.Analyze)
}

// Latest serves the most recent cached analysis for one symbol.
func (h *AnalysisEchoHandler) Latest(c echo.Context) error {
	req := &models.LatestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.query.Latest(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("latest usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

// Summary serves the most recent batch summary.
func (h *AnalysisEchoHandler) Summary(c echo.Context) error {
	res, err := h.query.Summary(c.Request().Context())
	if err != nil {
		h.logger.Error("summary usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

// History serves persisted analyses for a symbol.
func (h *AnalysisEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.query.History(c.Request().Context(), req.Symbol, req.From, req.To, req.Limit)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res, int64(len(res)))
}

// Analyze evaluates a caller-supplied snapshot synchronously.
func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.query.Analyze(req.Symbol, req.Snapshot)
	return xhttp.SuccessResponse(c, res)
}
