package httpclient

import "encoding/json"

// Request describes a single HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, ...).
	Method string
	// Path is resolved against the client's BaseURL unless absolute.
	Path string
	// Headers are request-specific headers, overriding client defaults.
	Headers map[string]string
	// Query holds query parameters.
	Query map[string]string
	// Body is the request body. Structs are JSON-encoded; []byte and
	// string pass through unchanged.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is a fully-read HTTP response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers holds the response headers, first value wins.
	Headers map[string]string
	// Body is the complete response body.
	Body []byte
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
