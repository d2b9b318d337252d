// Package source implements the astrophysical sources of a model and the
// spectral components they own.
//
// A source's components are attached directly under the source, so the
// path to a spectral parameter is `<source>.<component>.shape.<param>`:
// the intermediate "spectrum" level of model documents is elided.
package source
