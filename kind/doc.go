// Package kind maps entity IRIs to the kind of entity they name.
//
// A Catalog lists kinds, each with an IRI template, usually from a YAML
// file:
//
//	kinds:
//	  - name: book
//	    iri: https://example.org/book/{isbn}
//	    message: example.Book
//	    label: Book
//	  - name: chapter
//	    iri: https://example.org/book/{isbn}/chapter/{n}
//
// A Resolver answers which kind an IRI belongs to, using the template router
// so the most specific template wins, and remembers answers in an LRU cache.
// Expand goes the other way and builds an IRI from a kind and its variables.
package kind
