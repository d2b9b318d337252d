// Package functions provides the catalog of named, parameter-bearing
// functions used as spectral shapes, spatial shapes and link laws.
//
// The Registry maps the names used in model documents (e.g. "powerlaw") to
// Definitions. Lookup instantiates a fresh Function whose parameters carry
// the catalog defaults; callers then override them. The parser depends only
// on the Catalog interface, so tests can inject a small fake catalog.
package functions
