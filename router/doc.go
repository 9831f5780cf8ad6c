// Package router matches IRIs and paths against templates with named
// placeholders.
//
//	r := router.New[string]()
//	_ = r.Add("ns.kind", "kind")
//	_ = r.Add("ns.kind/{a}/{b}", "instance")
//	m, ok := r.Match("ns.kind/x/y")
//	// m.Payload == "instance", m.Captures == {"a": "x", "b": "y"}
//
// Placeholders may sit mid-segment, as in "people/{first}-{last}/overview",
// and each captures one or more characters other than '/'. The longest
// matching pattern wins and equal lengths break lexicographically.
//
// Expand runs the inverse direction through RFC 6570 simple expansion.
package router
