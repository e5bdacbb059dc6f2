// Package pipeline sends authenticated requests to the SAT API.
//
// Components:
//   - Transport: an http.RoundTripper that attaches a bearer token and the
//     standard SAT headers to every request
//   - Client: resolves paths against a base URL, attaches an optional
//     payload signature and turns the HTTP status into either a Response
//     or an error
//
// # Accepted Statuses
//
// The SAT API reports business failures (unknown product, duplicate
// request ID, unknown transaction) as 400, 401 or 500 with a JSON error
// document. Those statuses, and 200, are returned as a *Response with a nil
// error so the caller can inspect the payload. Every other status is a
// transport failure and returns a *apierrors.StatusError instead.
//
// # Basic Usage
//
//	client, err := pipeline.New(pipeline.Config{
//		BaseURL:    "https://b2b-playground.tokopedia.com/api",
//		Tokens:     tokens,
//		SDKVersion: "go-sat@1.0.0",
//	})
//
//	resp, err := client.Post(ctx, "v2/order", body, pipeline.WithSignature(sig))
//
// The Client never retries. Deadlines and cancellation come from the
// context passed to each call.
package pipeline
