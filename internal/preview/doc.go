// Package preview serves a generated site locally and rebuilds it whenever
// the content root or the stylesheet changes.
package preview
