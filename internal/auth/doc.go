// Package auth resolves the caller of an API request from its bearer token
// and gates handlers on the caller's current role.
//
// Every protected request is checked against the users table: the role held
// in the token is ignored, so promotions, demotions and deletions apply on the
// next request instead of at token expiry.
package auth
