package common

// AuthorizationHeaderName is the HTTP header carrying the access token on
// inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "
