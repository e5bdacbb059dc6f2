// Package sat is a client for the SAT payment and fulfillment API.
//
// A Client can inquire about a billable product, place a signed checkout
// order, poll the status of an order and read the account balance.
//
// Every request carries a bearer token obtained with the OAuth2 client
// credentials grant. The token is cached in memory and exchanged again only
// when a call finds it expired. Checkout payloads are signed with RSA-PSS
// (SHA-256) and the signature travels in the Signature header; status
// responses can optionally be verified the same way with the server's
// public key.
//
// # Basic Usage
//
//	signer, err := signature.NewBuilder().
//		PrivateKeyFile("private.pem").
//		PublicKeyFile("sat-public.pem").
//		Build()
//
//	cfg, err := sat.NewConfigBuilder(clientID, clientSecret).
//		Signer(signer).
//		VerifyStatusSignature(true).
//		Build()
//
//	client, err := sat.New(cfg)
//
//	resp, err := client.Checkout(ctx, sat.CheckoutRequest{
//		RequestID:    sat.NewRequestID(),
//		ProductCode:  "pln-postpaid",
//		ClientNumber: "2121212",
//		Amount:       12500,
//	})
//
// # Responses and Errors
//
// The API answers business failures such as an unknown product or a
// duplicate request ID with status 400, 401 or 500 and a JSON errors
// document. These are returned as a *Response with a nil error; use
// Response.OK and Response.Errors to branch on them. An error return always
// means the call itself failed: invalid configuration or input, a failed
// token exchange, a rejected response signature, an unexpected HTTP status
// or a network problem. The error types can be matched with errors.As and
// the Err* sentinels with errors.Is.
//
// No call is ever retried. Deadlines and cancellation come from the
// context passed to each operation.
package sat
