// Package document reads model documents into an ordered, format-neutral
// tree of mappings, lists and cty scalars.
//
// YAML documents are decoded through yaml.v3 nodes and JSON documents through
// the HCL JSON parser, so key order always follows the source text. Documents
// are fetched from the local filesystem or from S3 (s3://bucket/key).
package document
