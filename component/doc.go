// Package component models the electrical components of a microgrid:
// identifiers, categories, administrative status, directed connections,
// and the data and state samples that arrive on component streams.
package component
