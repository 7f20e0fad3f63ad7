// Package tcx loads Training Center XML documents into a generic element tree.
//
// The loader does not know anything about the TCX schema. It produces labeled
// nodes with ordered element children and a first-text accessor; the track
// package decides what the labels mean.
package tcx
