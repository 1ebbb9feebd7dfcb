// Package auth provides the authentication and ownership primitives used by
// the book and quote service: credential hashing, bearer token issuance and
// validation, identity resolution, and the ownership guard.
//
// Credentials:
//   - HMACHasher keys HMAC-SHA512 with a 64 byte random salt. The salt is
//     stored next to the hash and reused verbatim on login.
//
// Tokens:
//   - TokenServiceImpl signs HS256 tokens carrying the decimal user id as
//     "sub" and the username as "name". Validation checks signature, issuer,
//     audience and expiry. Claim keys are never renamed unless the service is
//     built with WithInboundClaimMap.
//
// Identity and ownership:
//   - ResolveUserID reads "sub" and falls back to the long form name
//     identifier claim. A verified token without a usable id is rejected
//     with ErrIdentityMissing.
//   - Authorize is the one ownership check for every record implementing
//     HasOwner. It only guards writes.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by Auther, the
//     registration handler and the record services. Sinks run best-effort
//     (errors are logged).
package auth
