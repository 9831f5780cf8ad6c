package vocabulary

// Standard Vocabulary IRIs
//
// These constants provide the W3C and semantic web IRIs the codecs and the
// value model refer to. Property keys in a Thing are full IRIs; CURIEs such as
// "rdfs:label" only appear at the CLI boundary (see Compact and Expand).
//
// References:
// - RDF 1.1: https://www.w3.org/TR/rdf11-concepts/
// - XSD datatypes: https://www.w3.org/TR/xmlschema11-2/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
// - Schema.org: https://schema.org/

// Namespace IRIs
const (
	RDFNamespace    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace   = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace    = "http://www.w3.org/2001/XMLSchema#"
	OWLNamespace    = "http://www.w3.org/2002/07/owl#"
	SKOSNamespace   = "http://www.w3.org/2004/02/skos/core#"
	DCNamespace     = "http://purl.org/dc/terms/"
	SchemaNamespace = "https://schema.org/"
)

// RDF Standard IRIs
const (
	// RdfType links a resource to its class.
	RdfType = RDFNamespace + "type"

	// RdfFirst is the head of an RDF collection cell.
	RdfFirst = RDFNamespace + "first"

	// RdfRest links an RDF collection cell to the remainder of the list.
	RdfRest = RDFNamespace + "rest"

	// RdfNil terminates an RDF collection; an empty list is rdf:nil itself.
	RdfNil = RDFNamespace + "nil"

	// RdfLangString is the datatype of language-tagged literals.
	RdfLangString = RDFNamespace + "langString"
)

// RDF Schema Standard IRIs
const (
	// RdfsLabel provides a human-readable name for a resource.
	RdfsLabel = RDFSNamespace + "label"

	// RdfsComment provides a human-readable description
	RdfsComment = RDFSNamespace + "comment"

	// RdfsSeeAlso indicates a resource that provides additional information
	RdfsSeeAlso = RDFSNamespace + "seeAlso"
)

// XSD datatype IRIs
const (
	XsdString       = XSDNamespace + "string"
	XsdBoolean      = XSDNamespace + "boolean"
	XsdDate         = XSDNamespace + "date"
	XsdDateTime     = XSDNamespace + "dateTime"
	XsdInteger      = XSDNamespace + "integer"
	XsdDouble       = XSDNamespace + "double"
	XsdFloat        = XSDNamespace + "float"
	XsdInt          = XSDNamespace + "int"
	XsdLong         = XSDNamespace + "long"
	XsdUnsignedInt  = XSDNamespace + "unsignedInt"
	XsdUnsignedLong = XSDNamespace + "unsignedLong"
	XsdBase64Binary = XSDNamespace + "base64Binary"
	XsdAnyURI       = XSDNamespace + "anyURI"
)

// OWL (Web Ontology Language) Standard IRIs
const (
	// OwlSameAs indicates that two URI references refer to the same entity.
	OwlSameAs = OWLNamespace + "sameAs"
)

// SKOS (Simple Knowledge Organization System) Standard IRIs
const (
	// SkosPrefLabel provides the preferred lexical label for a resource.
	SkosPrefLabel = SKOSNamespace + "prefLabel"

	// SkosAltLabel provides an alternative lexical label for a resource.
	SkosAltLabel = SKOSNamespace + "altLabel"

	// SkosDefinition provides a statement of the meaning of a concept.
	SkosDefinition = SKOSNamespace + "definition"
)

// Dublin Core Metadata Terms Standard IRIs
const (
	// DcTitle provides the name given to the resource.
	DcTitle = DCNamespace + "title"

	// DcDescription provides an account of the resource.
	DcDescription = DCNamespace + "description"

	// DcIdentifier provides an unambiguous reference to the resource.
	DcIdentifier = DCNamespace + "identifier"
)

// Schema.org Standard IRIs
const (
	// SchemaName provides the name of the item.
	SchemaName = SchemaNamespace + "name"

	// SchemaDescription provides a description of the item.
	SchemaDescription = SchemaNamespace + "description"

	// SchemaURL is the URL of the item.
	SchemaURL = SchemaNamespace + "url"

	// SchemaSameAs indicates a URL that unambiguously indicates the item's identity.
	SchemaSameAs = SchemaNamespace + "sameAs"
)
