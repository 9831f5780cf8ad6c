// Package errors provides standardized error handling patterns for Enola.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing). On top of it sits the conversion
// taxonomy used by the value model, the datatype registry, the IRI router and
// both codecs.
//
// # Conversion Errors
//
//   - ErrNoMatch: a datatype or router lookup found nothing. Recoverable; the
//     caller picks a fallback. IsNoMatch identifies it.
//   - ErrUnknownDatatype, ErrUnknownField: a reference to an undeclared IRI or
//     field. Terminal for that item.
//   - ErrMalformedValue: text does not parse under its claimed datatype, or an
//     IRI does not follow the synthesized-IRI convention.
//   - ErrVariantMismatch: a Value variant does not fit the destination slot.
//   - ErrMultipleRoots: a graph decoded through the single-entity path had
//     more than one top-level subject.
//   - ErrNoDatatypeForType: no registered datatype claims a Go type.
//
// All of them classify as Invalid. Conversions are deterministic, so retrying
// with the same input never helps; batch drivers decide whether to skip the
// item or abort.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")  // For retryable errors
//	errors.WrapInvalid(err, "Component", "Method", "action")    // For validation errors
//	errors.WrapFatal(err, "Component", "Method", "action")      // For unrecoverable errors
//
// Conversion failures usually combine a sentinel with a formatted detail:
//
//	return errors.Invalidf(errors.ErrUnknownDatatype, "Repository", "Decode", "datatype %s", iri)
//
// Callers check the sentinel, never the message:
//
//	if _, err := repo.Match(text); errors.IsNoMatch(err) {
//	    // treat as a plain string
//	}
//
// # Retry Configuration
//
// RetryConfig decides whether an error deserves another attempt and converts
// to the retry package's Config:
//
//	cfg := errors.DefaultRetryConfig()
//	err := retry.Do(ctx, cfg.ToRetryConfig(), func() error {
//	    return store.Put(ctx, t)
//	})
//
// # Thread Safety
//
// All classification and wrapping operations are thread-safe. Error variables
// are immutable and safe for concurrent access.
package errors
