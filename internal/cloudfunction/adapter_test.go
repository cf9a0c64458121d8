package cloudfunction

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("Set-Cookie", "token=abc")
		w.Header().Add("Set-Cookie", "other=1")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"method":  r.Method,
			"path":    r.URL.Path,
			"billing": r.URL.Query().Get("billing"),
			"body":    string(body),
			"auth":    r.Header.Get("Authorization"),
		})
	})
}

func TestServe_RoundTrip(t *testing.T) {
	req, _ := json.Marshal(CloudFunctionRequest{
		HTTPMethod:        "POST",
		Path:              "/api/v1/checkout/cart",
		Headers:           map[string]string{"Authorization": "Bearer t"},
		QueryStringParams: map[string]string{"billing": "annual"},
		Body:              `{"plan_id":"basic"}`,
	})

	var resp CloudFunctionResponse
	require.NoError(t, json.Unmarshal(Serve(echoHandler(), req), &resp))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, []string{"token=abc", "other=1"}, resp.MultiValueHeaders["Set-Cookie"])

	var echoed map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &echoed))
	assert.Equal(t, "POST", echoed["method"])
	assert.Equal(t, "/api/v1/checkout/cart", echoed["path"])
	assert.Equal(t, "annual", echoed["billing"])
	assert.Equal(t, `{"plan_id":"basic"}`, echoed["body"])
	assert.Equal(t, "Bearer t", echoed["auth"])
}

func TestServe_Base64Body(t *testing.T) {
	req, _ := json.Marshal(CloudFunctionRequest{
		HTTPMethod:      "PUT",
		Path:            "/x",
		Body:            base64.StdEncoding.EncodeToString([]byte("hello")),
		IsBase64Encoded: true,
	})

	var resp CloudFunctionResponse
	require.NoError(t, json.Unmarshal(Serve(echoHandler(), req), &resp))

	var echoed map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &echoed))
	assert.Equal(t, "hello", echoed["body"])
}

func TestServe_InvalidRequest(t *testing.T) {
	var resp CloudFunctionResponse
	require.NoError(t, json.Unmarshal(Serve(echoHandler(), []byte("{not json")), &resp))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "Invalid request format")
}

func TestServe_BadBase64(t *testing.T) {
	req, _ := json.Marshal(CloudFunctionRequest{
		HTTPMethod:      "POST",
		Path:            "/x",
		Body:            "%%%",
		IsBase64Encoded: true,
	})

	var resp CloudFunctionResponse
	require.NoError(t, json.Unmarshal(Serve(echoHandler(), req), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServe_RemoteAddrFromGatewayHop(t *testing.T) {
	var remote string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remote = r.RemoteAddr
		w.WriteHeader(http.StatusNoContent)
	})
	req, _ := json.Marshal(CloudFunctionRequest{
		HTTPMethod: "GET",
		Path:       "/health",
		Headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7"},
	})

	Serve(h, req)
	assert.Equal(t, "203.0.113.7", remote)
}
