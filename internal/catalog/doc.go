// Package catalog loads the list of items to rank.
//
// A catalog file is YAML (.yaml, .yml) or CUE (.cue). Both carry an
// optional name and a list of item IDs:
//
//	name: movies
//	items: [alien, heat, ran]
//
// A YAML file may also be a bare sequence of IDs. IDs are NFC-normalized
// and must be non-empty and unique after normalization; the list is
// otherwise taken as given. Choosing which items to rank is the caller's
// business.
package catalog
