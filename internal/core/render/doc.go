// Package render turns answer payloads into display-ready output.
//
// Format applies the fixed six-stage markup pipeline to freeform text.
// Render maps an answer to an ordered sequence of display blocks. Flatten
// and the transcript builders produce the plain-text forms stored in
// history and offered for download.
//
// Everything in this package is a pure function of its inputs.
package render
