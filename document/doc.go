// Package document reads and writes Things as YAML or JSON documents.
//
// Each value is a single-key mapping naming its variant:
//
//	iri: https://example.org/alice
//	properties:
//	  https://schema.org/name: {string: Alice}
//	  https://example.org/age: {literal: "42", datatype: http://www.w3.org/2001/XMLSchema#int}
//	  https://example.org/knows: {link: https://example.org/bob}
//	  https://example.org/home:
//	    struct:
//	      properties:
//	        https://example.org/street: {string: Main Street}
//	  https://example.org/tags: {list: [{string: a}, {string: b}]}
//	  https://example.org/nickname: {unset: true}
//
// A struct without an iri is an anonymous Thing. Both formats share the same
// shape; JSON is written with encoding/json and read by the YAML parser.
// A file holds exactly one Thing: a second YAML document is rejected with
// ErrMultipleRoots.
package document
