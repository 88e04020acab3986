/*
Package authsdk provides a client SDK for the authsvc authentication service.

# Overview

The service registers users, authenticates them with a username or email and a
password, and issues HS256 bearer tokens. SDKClient wraps the HTTP API:

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Create an account; the response carries the user and a bearer token.
	res, err := client.Register(ctx, authsdk.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
	})

	// Log in with either the username or the email address.
	res, err = client.Authenticate(ctx, "alice@example.com", "correct horse battery staple")

	// Resolve a token back to its user.
	user, err := client.Me(ctx, res.Token)

# Error Handling

Any non-2xx response is returned as *APIError carrying the HTTP status code and
the server's message:

	_, err := client.Authenticate(ctx, "alice", "wrong")
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		fmt.Println(apiErr.Message) // "Password is incorrect"
	}

Register and Authenticate report every failure as 400. Me reports a missing or
malformed Authorization header as 400 and an invalid, expired or orphaned
token as 401.

# Health

GetLiveness and GetReadiness call /livez and /readyz. Readiness fails with an
*APIError of status 503 when the database is unreachable.

# Thread Safety

SDKClient holds no mutable state beyond its http.Client and is safe for
concurrent use.
*/
package authsdk
