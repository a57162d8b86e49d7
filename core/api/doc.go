// Package api is the client side gateway to the storefront backend.
//
// Every request goes through Client.Call, which resolves the base URL at call
// time, merges JSON default headers with the caller's, and attaches the bearer
// token for protected paths (/users/, /products/ and /auth/logout by default,
// or any call made with WithAuth). When no usable token is available the
// session is expired through the configured Authorizer and the error is
// returned. A 5xx response produces a "server unavailable" notice and is
// returned untouched; a transport failure produces a "cannot reach server"
// notice and an error wrapping ErrUnreachable.
//
//	client, err := api.New(
//		api.WithBaseURL("https://shop.example.com"),
//		api.WithAuthorizer(sessionManager),
//		api.WithNotifier(console),
//	)
//	if err != nil {
//		return err
//	}
//	orders, err := client.MyOrders(ctx)
//
// Typed helpers decode JSON responses and translate failures into *Error,
// whose Unwrap yields ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrServerUnavailable or ErrRequestFailed. A successful response that is not
// JSON yields ErrInvalidResponse.
//
// Decoding is lenient about field spellings that differ between endpoints,
// such as productId/id and title/ko_name/name for products, and
// access_token/accessToken/token for the login token.
package api
