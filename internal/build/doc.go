// Package build runs one complete site generation pass.
//
// A build walks the content root, loads and renders every post into the
// mirrored output tree, then writes the index page, the RSS feed and the
// stylesheet, in that order. Any failure aborts the build; there is no
// partial-success mode. Execution is strictly sequential.
package build
