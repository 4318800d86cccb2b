package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"rental-assistant/internal/domain"
	"rental-assistant/internal/observability"
	"rental-assistant/internal/usecase"
)

const (
	conversationPath = "/assistant/conversation"
	messagesPath     = "/assistant/messages"

	headerCorrelationID = "X-Correlation-Id"
	headerSessionID     = "X-Session-Id"
	headerAuthorization = "Authorization"

	maxBodyBytes = 16 << 10
)

var tracer = otel.Tracer("rental-assistant/handler")

type ConversationUseCase interface {
	SendMessage(ctx context.Context, in usecase.SendInput) (usecase.SendOutput, error)
	GetConversation(ctx context.Context, c usecase.Credentials) (usecase.ConversationView, error)
	ClearConversation(ctx context.Context, c usecase.Credentials) error
}

type Handler struct {
	uc     ConversationUseCase
	logger *slog.Logger
}

func NewHandler(uc ConversationUseCase, logger *slog.Logger) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{uc: uc, logger: logger}, nil
}

type sendMessageRequest struct {
	Text   string `json:"text"`
	Locale string `json:"locale,omitempty"`
}

type messageResponse struct {
	Speaker     string   `json:"speaker"`
	Text        string   `json:"text"`
	Timestamp   string   `json:"timestamp"`
	Suggestions []string `json:"suggestions"`
	Intent      string   `json:"intent,omitempty"`
}

type sendMessageResponse struct {
	CallerMessage  messageResponse `json:"callerMessage"`
	EngineMessage  messageResponse `json:"engineMessage"`
	ConversationID string          `json:"conversationId"`
}

type conversationResponse struct {
	ConversationID   string            `json:"conversationId,omitempty"`
	Messages         []messageResponse `json:"messages"`
	Locale           string            `json:"locale"`
	CallerRole       string            `json:"callerRole"`
	MaxMessageLength int               `json:"maxMessageLength,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Handle serves API Gateway HTTP API (payload v2) requests.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	start := time.Now()
	correlationID := header(req.Headers, headerCorrelationID)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	ctx = observability.WithCorrelationID(ctx, correlationID)

	method := strings.ToUpper(req.RequestContext.HTTP.Method)
	path := strings.TrimRight(req.RawPath, "/")
	if path == "" {
		path = strings.TrimRight(req.RequestContext.HTTP.Path, "/")
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(req.Headers))
	ctx, span := tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	resp := h.route(ctx, method, path, req)
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.Int("http.response.status_code", resp.StatusCode),
	)
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers[headerCorrelationID] = correlationID

	h.logger.InfoContext(ctx, "request handled",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (h *Handler) route(ctx context.Context, method, path string, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	creds := credentials(req.Headers)
	switch {
	case path == conversationPath && method == http.MethodGet:
		view, err := h.uc.GetConversation(ctx, creds)
		if err != nil {
			return h.errorResponse(ctx, err)
		}
		return jsonResponse(http.StatusOK, toConversationResponse(view))

	case path == conversationPath && method == http.MethodDelete:
		if err := h.uc.ClearConversation(ctx, creds); err != nil {
			return h.errorResponse(ctx, err)
		}
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNoContent}

	case path == messagesPath && method == http.MethodPost:
		body, err := requestBody(req)
		if err != nil {
			return jsonResponse(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Reason: "invalid_body"})
		}
		var in sendMessageRequest
		if err := json.Unmarshal(body, &in); err != nil {
			return jsonResponse(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Reason: "invalid_json"})
		}
		out, err := h.uc.SendMessage(ctx, usecase.SendInput{Credentials: creds, Text: in.Text, LocaleHint: in.Locale})
		if err != nil {
			return h.errorResponse(ctx, err)
		}
		return jsonResponse(http.StatusOK, sendMessageResponse{
			CallerMessage:  toMessageResponse(out.CallerMessage),
			EngineMessage:  toMessageResponse(out.EngineMessage),
			ConversationID: out.ConversationID,
		})

	case path == conversationPath || path == messagesPath:
		return jsonResponse(http.StatusMethodNotAllowed, errorResponse{Error: "METHOD_NOT_ALLOWED"})
	}
	return jsonResponse(http.StatusNotFound, errorResponse{Error: "ROUTE_NOT_FOUND"})
}

func (h *Handler) errorResponse(ctx context.Context, err error) events.APIGatewayV2HTTPResponse {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		h.logger.ErrorContext(ctx, "unexpected error", "err", err)
		return jsonResponse(http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal)})
	}
	status := statusFor(ucErr.Code)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", "code", ucErr.Code, "reason", ucErr.Reason, "err", ucErr.Err)
	}
	return jsonResponse(status, errorResponse{Error: string(ucErr.Code), Reason: ucErr.Reason})
}

func statusFor(code usecase.ErrorCode) int {
	switch code {
	case usecase.ErrorIdentityRequired:
		return http.StatusUnauthorized
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest
	case usecase.ErrorNotFound:
		return http.StatusNotFound
	case usecase.ErrorStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func credentials(headers map[string]string) usecase.Credentials {
	var token string
	if auth := header(headers, headerAuthorization); len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		token = strings.TrimSpace(auth[len("bearer "):])
	}
	return usecase.Credentials{AuthToken: token, SessionID: header(headers, headerSessionID)}
}

func requestBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}
	if len(body) > maxBodyBytes {
		return nil, errors.New("handler: body too large")
	}
	return body, nil
}

// header looks up name case-insensitively. API Gateway lower-cases header
// names but local adapters may not.
func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func jsonResponse(status int, v any) events.APIGatewayV2HTTPResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func toMessageResponse(m domain.Message) messageResponse {
	suggestions := m.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return messageResponse{
		Speaker:     string(m.Speaker),
		Text:        m.Text,
		Timestamp:   m.Timestamp.UTC().Format(time.RFC3339Nano),
		Suggestions: suggestions,
		Intent:      m.Intent,
	}
}

func toConversationResponse(v usecase.ConversationView) conversationResponse {
	msgs := make([]messageResponse, 0, len(v.Messages))
	for _, m := range v.Messages {
		msgs = append(msgs, toMessageResponse(m))
	}
	return conversationResponse{
		ConversationID:   v.ConversationID,
		Messages:         msgs,
		Locale:           string(v.Locale),
		CallerRole:       string(v.CallerRole),
		MaxMessageLength: v.MaxMessageLength,
	}
}
