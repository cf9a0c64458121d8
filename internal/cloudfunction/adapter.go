package cloudfunction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/lumiforge/tierhub-backend/internal/bootstrap"
)

// CloudFunctionRequest структура запроса от API Gateway
type CloudFunctionRequest struct {
	HTTPMethod        string            `json:"httpMethod"`
	Headers           map[string]string `json:"headers"`
	Path              string            `json:"path"`
	QueryStringParams map[string]string `json:"queryStringParameters"`
	Body              string            `json:"body"`
	IsBase64Encoded   bool              `json:"isBase64Encoded"`
}

// CloudFunctionResponse структура ответа для API Gateway
type CloudFunctionResponse struct {
	StatusCode        int                 `json:"statusCode"`
	Headers           map[string]string   `json:"headers"`
	MultiValueHeaders map[string][]string `json:"multiValueHeaders,omitempty"`
	Body              string              `json:"body"`
	IsBase64Encoded   bool                `json:"isBase64Encoded"`
}

var (
	router   http.Handler
	initOnce sync.Once
	initErr  error
)

// HTTPHandler лениво собирает приложение при первом вызове (холодный старт)
func HTTPHandler(ctx context.Context) (http.Handler, error) {
	initOnce.Do(func() {
		var app *bootstrap.App
		app, initErr = bootstrap.Initialize(ctx)
		if initErr == nil {
			router = app.Handler
		}
	})
	return router, initErr
}

// Handler - главная функция для Cloud Function
func Handler(ctx context.Context, request []byte) ([]byte, error) {
	h, err := HTTPHandler(ctx)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return respondError(http.StatusInternalServerError, "Internal Server Error: Initialization failed")
	}

	return Serve(h, request), nil
}

// Serve прогоняет запрос API Gateway через обработчик
func Serve(h http.Handler, request []byte) []byte {
	// Парсинг запроса от API Gateway
	var cfReq CloudFunctionRequest
	if err := json.Unmarshal(request, &cfReq); err != nil {
		slog.Error("Failed to parse request", "error", err)
		resp, _ := respondError(http.StatusBadRequest, "Invalid request format")
		return resp
	}

	httpReq, err := buildHTTPRequest(&cfReq)
	if err != nil {
		slog.Error("Failed to build HTTP request", "error", err)
		resp, _ := respondError(http.StatusBadRequest, "Failed to build request")
		return resp
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httpReq)

	return buildCloudFunctionResponse(rr)
}

// buildHTTPRequest - создание HTTP запроса из Cloud Function request
func buildHTTPRequest(cfReq *CloudFunctionRequest) (*http.Request, error) {
	var bodyReader io.Reader
	if cfReq.Body != "" {
		if cfReq.IsBase64Encoded {
			raw, err := base64.StdEncoding.DecodeString(cfReq.Body)
			if err != nil {
				return nil, err
			}
			bodyReader = bytes.NewReader(raw)
		} else {
			bodyReader = bytes.NewBufferString(cfReq.Body)
		}
	}

	req, err := http.NewRequest(cfReq.HTTPMethod, cfReq.Path, bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range cfReq.Headers {
		req.Header.Set(key, value)
	}
	// шлюз дописывает адрес клиента последним, начало заголовка задает сам клиент
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		req.RemoteAddr = strings.TrimSpace(hops[len(hops)-1])
	}

	if len(cfReq.QueryStringParams) > 0 {
		q := req.URL.Query()
		for key, value := range cfReq.QueryStringParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req, nil
}

// buildCloudFunctionResponse - создание Cloud Function response из HTTP response
func buildCloudFunctionResponse(rr *httptest.ResponseRecorder) []byte {
	headers := make(map[string]string)
	multi := make(map[string][]string)
	for key, values := range rr.Header() {
		if len(values) > 0 {
			headers[key] = values[0]
		}
		// Set-Cookie и подобные заголовки могут повторяться
		if len(values) > 1 {
			multi[key] = values
		}
	}
	if len(multi) == 0 {
		multi = nil
	}

	response := CloudFunctionResponse{
		StatusCode:        rr.Code,
		Headers:           headers,
		MultiValueHeaders: multi,
		Body:              rr.Body.String(),
		IsBase64Encoded:   false,
	}

	respData, _ := json.Marshal(response)
	return respData
}

// respondError - вспомогательная функция для ответа об ошибке
func respondError(statusCode int, message string) ([]byte, error) {
	errorBody := map[string]string{
		"error": message,
	}
	body, _ := json.Marshal(errorBody)

	response := CloudFunctionResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body:            string(body),
		IsBase64Encoded: false,
	}

	return json.Marshal(response)
}
