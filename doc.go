// Package spatial demultiplexes spatial (stereo) photos into standalone JPEG files.
//
// A spatial photo is a Multi-Picture Format (MPF/MPO) container: a primary composite
// image followed by auxiliary images, described by an MP Index table in the first
// image's APP2 segment. The package parses that table, resolves the stereo pair
// (left/right views) and re-encodes each selected image with its own metadata.
// Decoding and encoding rely on image/jpeg through github.com/disintegration/imaging.
package spatial
