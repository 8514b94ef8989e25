// Package hooks lets declarative render functions retain state, schedule side
// effects and bind asynchronous work across a render loop the package does
// not own. A host drives passes over a Scope and honors its re-render
// requests; hooks address persistent slots by explicit keys, recompute under
// dependency-key control, and marshal async completions back onto the host's
// single UI context.
package hooks
