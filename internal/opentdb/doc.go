// Package opentdb provides an HTTP client for the Open Trivia DB API.
//
// # Overview
//
// The client issues a single read-only request:
//
//	GET <base>/api.php?amount=<n>
//
// and decodes the `{response_code, results}` payload into strongly typed
// TriviaItem values.
//
// # Error Injection
//
// Query.CauseError rewrites the request host to garbage<host>.invalid. The
// .invalid top-level domain is reserved, so the request always fails host
// resolution. The UI exposes this as the "Cause Error on Refresh" toggle.
//
// # Error Handling
//
// FetchQuestions returns:
//   - *StatusError for non-2xx responses
//   - "execute request: ..." for transport failures (DNS, refused, timeout)
//   - "decode response: ..." for malformed JSON
//
// Reason condenses any of these into the short text displayed after
// "ERROR - " in the status line.
//
// # Text Encoding
//
// The API HTML-encodes question and answer text. DecodeEntities and the
// TriviaItem.Decoded* helpers turn entities back into characters.
//
// # Design
//
// No retries, no caching and no pagination. The caller decides when to
// fetch again.
package opentdb
