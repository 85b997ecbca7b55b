// Package httpclient provides the HTTP transport shared by the remote
// transcription and refinement clients.
//
// It wraps net/http with base URL resolution, per-request auth, a hard
// request timeout, and status-code classification into typed errors so
// callers can distinguish authentication failures (401/403) and rate
// limiting (429) from generic remote failures:
//
//	client, _ := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 15 * time.Second,
//	    Auth:    httpclient.BearerAuth(apiKey),
//	})
//	resp, err := client.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/predictions", Body: body})
//	if httpclient.IsAuth(err) { ... }
//
// There is deliberately no retry or circuit breaking here: the pipeline
// never retries a remote call within a single user-initiated run.
package httpclient
