// Package abi provides internal utilities shared by the layout encoder and
// decoder.
//
// # Contents
//
//   - helpers.go: alignment, padding and checked arithmetic
//   - scalar.go: little-endian scalar access and scalar kinds
//
// This package is internal to the codec.
package abi
