// Package render turns a release note template into text by substituting
// {{TOKEN}} markers with values from a model.ReleaseContext.
//
// Rendering is a pure function: it performs no I/O, never fails and is safe
// for concurrent use. Unknown markers are left in place, empty bullet
// sections render as "- None" and an empty narrative renders as an empty
// string.
package render
