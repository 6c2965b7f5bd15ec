// Package property defines the typed property model: a closed value union
// over the six kinds carried by photo metadata, the descriptor catalog that
// maps two-character property codes to parse/render behavior, and the
// file-safe sanitization applied to rendered values.
//
// The catalog is built once at startup by [NewRegistry] and passed by
// reference to every component that needs it.
package property
