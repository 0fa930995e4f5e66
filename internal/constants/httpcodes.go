// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as response codes,
// headers, and content types. These constants ensure consistent HTTP communication
// patterns across the application.
package constants

// HTTP Response Code Types define application-specific response codes.
// They are attached to log entries so failures can be grouped by kind.
const (
	// CodeBadRequest indicates a malformed or invalid request.
	CodeBadRequest = "bad_request"

	// CodeNotFound indicates the requested resource does not exist.
	CodeNotFound = "not_found"

	// CodeTooManyRequests indicates the client exceeded its request budget.
	CodeTooManyRequests = "too_many_requests"

	// CodeInternalError indicates an unexpected server error.
	CodeInternalError = "internal_error"

	// CodeDatabaseError indicates the database rejected or failed a query.
	CodeDatabaseError = "database_error"

	// CodeServiceUnavailable indicates a dependency is not healthy.
	CodeServiceUnavailable = "service_unavailable"
)

// HTTP Header Names define common HTTP headers used in requests and responses.
const (
	// HeaderContentType specifies the media type of the resource.
	HeaderContentType = "Content-Type"

	// HeaderCacheControl directs caching behavior for the request/response chain.
	HeaderCacheControl = "Cache-Control"

	// HeaderXRequestID contains a unique identifier for the HTTP request.
	HeaderXRequestID = "X-Request-ID"

	// HeaderRetryAfter tells a throttled client when to come back.
	HeaderRetryAfter = "Retry-After"

	// HeaderXContentTypeOptions controls MIME type sniffing.
	HeaderXContentTypeOptions = "X-Content-Type-Options"

	// HeaderXFrameOptions controls whether the page can be displayed in a frame.
	HeaderXFrameOptions = "X-Frame-Options"

	// HeaderReferrerPolicy controls how much referrer information should be included with requests.
	HeaderReferrerPolicy = "Referrer-Policy"
)

// HTTP Content Types define media types used in the Content-Type header.
const (
	// ContentTypeJSON specifies the content is in JSON format.
	ContentTypeJSON = "application/json"

	// ContentTypeText specifies plain text bodies, used for not-found answers.
	ContentTypeText = "text/plain; charset=utf-8"
)

// Security Header Values define the values for various security-related HTTP headers.
const (
	// FrameOptionsDeny prevents the page from being displayed in a frame.
	FrameOptionsDeny = "DENY"

	// ContentTypeOptionsNoSniff prevents MIME type sniffing.
	ContentTypeOptionsNoSniff = "nosniff"

	// ReferrerPolicyStrictOrigin restricts referrer information to origin only for cross-origin requests.
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"

	// CacheControlNoStore keeps point-in-time economy data out of shared caches.
	CacheControlNoStore = "no-store"
)
