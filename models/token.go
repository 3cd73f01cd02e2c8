package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by every bearer token issued by the
// service.
//
// The subject ("sub") holds the user identifier and IsAdm mirrors the
// account's admin flag at issuance time. Expiry is the only invalidation
// mechanism; there is no revocation list.
type Claims struct {
	jwt.RegisteredClaims

	// IsAdm is the admin flag of the subject when the token was issued.
	IsAdm bool `json:"isAdm"`
}

// Actor returns the request identity described by the claims.
func (c Claims) Actor() Actor {
	return Actor{ID: c.Subject, IsAdm: c.IsAdm}
}

// Token wraps a signed bearer token together with the claims it carries.
type Token struct {
	// Claims are the claims signed into SignedString.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"token"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// Actor is the authenticated caller of a lifecycle operation, extracted from
// a verified bearer token by the transport layer.
type Actor struct {
	ID    string
	IsAdm bool
}
