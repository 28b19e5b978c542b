package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// Event is a single invocation as delivered by a function runtime.
type Event struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	Headers               map[string]string `json:"headers"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded"`
}

// Response is the function runtime's view of an HTTP response.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// ServeEvent runs ev through handler as if it had arrived over HTTP. A
// function is deployed per endpoint, so events usually carry no path: route
// is used when ev.Path is empty. A malformed event yields a 400 response
// rather than an error so the runtime always gets a well-formed reply.
func ServeEvent(ctx context.Context, handler http.Handler, route string, ev Event) Response {
	if ev.Path == "" {
		ev.Path = route
	}
	req, err := eventRequest(ctx, ev)
	if err != nil {
		return Response{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"Некорректный запрос"}`,
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headers := make(map[string]string, len(rec.Header()))
	for k, vs := range rec.Header() {
		headers[k] = strings.Join(vs, ", ")
	}
	return Response{
		StatusCode: rec.Code,
		Headers:    headers,
		Body:       rec.Body.String(),
	}
}

// ServeEventStream decodes one Event from r, serves it on route and writes
// the Response to w.
func ServeEventStream(ctx context.Context, handler http.Handler, route string, r io.Reader, w io.Writer) error {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if err := json.NewEncoder(w).Encode(ServeEvent(ctx, handler, route, ev)); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func eventRequest(ctx context.Context, ev Event) (*http.Request, error) {
	method := ev.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}
	path := ev.Path
	if path == "" {
		path = "/"
	}

	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	u := &url.URL{Path: path}
	if len(ev.QueryStringParameters) > 0 {
		q := url.Values{}
		for k, v := range ev.QueryStringParameters {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range ev.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
