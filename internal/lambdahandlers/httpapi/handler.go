package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mrled/palcheck/internal/config"
	"github.com/mrled/palcheck/internal/input"
	"github.com/mrled/palcheck/internal/logger"
	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/palindrome"
	"github.com/mrled/palcheck/internal/presenter"
	"github.com/mrled/palcheck/internal/repository"
	"github.com/mrled/palcheck/internal/usecase/check"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	checks *check.CheckUseCase
	log    *slog.Logger
}

// CheckRequest is the JSON payload for POST /v1/check
type CheckRequest struct {
	Input *string `json:"input"`
	Unit  string  `json:"unit,omitempty"`
}

// CheckResponse is the JSON response for POST /v1/check
type CheckResponse struct {
	ID           string `json:"id"`
	Input        string `json:"input"`
	Unit         string `json:"unit"`
	IsPalindrome bool   `json:"isPalindrome"`
	Message      string `json:"message"`
	Truncated    bool   `json:"truncated,omitempty"`
}

// HistoryResponse is the JSON response for GET /v1/history
type HistoryResponse struct {
	Records []*CheckResponse `json:"records"`
	Count   int              `json:"count"`
}

// New creates a handler around an existing use case
func New(checks *check.CheckUseCase, log *slog.Logger) *Handler {
	return &Handler{checks: checks, log: log}
}

// NewHandler creates a new httpapi handler with dependencies built from the environment
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return nil, err
	}

	// Lambda deployments configure DynamoDB with the unprefixed variables
	if table := os.Getenv("DYNAMODB_TABLE"); table != "" {
		cfg.DynamoDBTable = table
	}
	if endpoint := os.Getenv("DYNAMODB_ENDPOINT"); endpoint != "" {
		cfg.DynamoDBEndpoint = endpoint
	}
	if cfg.DynamoDBTable != "" && cfg.DynamoDBEndpoint == "" && os.Getenv("AWS_REGION") == "" {
		return nil, fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
	}

	limit, err := cfg.Limit()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	opts := []check.Option{check.WithLogger(log)}
	if cfg.RecordingEnabled() {
		repo, err := repository.NewRepository(ctx, cfg.Repository())
		if err != nil {
			return nil, err
		}
		opts = append(opts, check.WithRepository(repo))
		log.Info("Check recording enabled", slog.String("table", cfg.DynamoDBTable), slog.String("file", cfg.File))
	} else {
		log.Info("Check recording disabled", slog.Bool("record", cfg.Record))
	}

	return New(check.NewCheckUseCase(limit, opts...), log), nil
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)

	// API Gateway v2 puts the path in RequestContext.HTTP.Path
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimPrefix(path, "/api")

	requestLogger.Info("Incoming request",
		slog.String("method", request.RequestContext.HTTP.Method),
		slog.String("path", path))

	switch {
	case strings.HasSuffix(path, "/v1/check"):
		return h.handleCheck(ctx, requestLogger, request)
	case strings.HasSuffix(path, "/v1/history"):
		return h.handleHistory(ctx, requestLogger, request)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(http.StatusNotFound, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleCheck(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if method := request.RequestContext.HTTP.Method; method != http.MethodPost {
		return errorResponseV2(http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Only POST is supported for this endpoint (received: %s)", method))
	}

	var req CheckRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponseV2(http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if req.Input == nil {
		return errorResponseV2(http.StatusBadRequest, "input field is required")
	}

	var unit palindrome.Unit
	if req.Unit != "" {
		u, err := palindrome.ParseUnit(req.Unit)
		if err != nil {
			return errorResponseV2(http.StatusBadRequest, err.Error())
		}
		unit = u
	}

	result, err := h.checks.Check(ctx, *req.Input, unit, model.SourceHTTP)
	if errors.Is(err, input.ErrTooLong) {
		return errorResponseV2(http.StatusBadRequest, err.Error())
	}
	if err != nil && result == nil {
		log.Error("Check failed", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, fmt.Sprintf("check failed: %v", err))
	}
	if err != nil {
		// Verdict is still valid when only recording failed
		log.Warn("Check not recorded", slog.String("error", err.Error()))
	}

	response := toResponse(result.Record)
	response.Truncated = result.Truncated
	return jsonResponseV2(http.StatusOK, response)
}

func (h *Handler) handleHistory(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if method := request.RequestContext.HTTP.Method; method != http.MethodGet {
		return errorResponseV2(http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Only GET is supported for this endpoint (received: %s)", method))
	}

	filter := model.RecordFilter{}
	if v := request.QueryStringParameters["result"]; v != "" {
		filter.Results = strings.Split(v, ",")
	}
	if v := request.QueryStringParameters["source"]; v != "" {
		filter.Sources = strings.Split(v, ",")
	}

	records, err := h.checks.History(ctx, filter, request.QueryStringParameters["sort"])
	if errors.Is(err, model.ErrInvalidQuery) {
		return errorResponseV2(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		log.Error("Failed to list history", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "failed to list history")
	}

	response := HistoryResponse{Records: make([]*CheckResponse, 0, len(records))}
	for _, r := range records {
		response.Records = append(response.Records, toResponse(r))
	}
	response.Count = len(response.Records)
	return jsonResponseV2(http.StatusOK, response)
}

func toResponse(r *model.CheckRecord) *CheckResponse {
	return &CheckResponse{
		ID:           r.ID,
		Input:        r.Input,
		Unit:         string(r.Unit),
		IsPalindrome: r.IsPalindrome,
		Message:      presenter.Verdict(r.IsPalindrome),
	}
}

func jsonResponseV2(statusCode int, body any) (events.APIGatewayV2HTTPResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return errorResponseV2(http.StatusInternalServerError, "failed to generate response")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(data),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": message})

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
