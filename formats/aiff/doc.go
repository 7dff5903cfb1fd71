// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio with github.com/go-audio/aiff.
//
// 16, 24 and 32-bit big-endian PCM are supported at any channel count.
// Inputs that cannot seek are buffered in memory, since the chunk walker
// needs random access.
//
// # Errors
//
//   - ErrNotAiffFile: no FORM/AIFF header
//   - ErrUnsupportedBitDepth: 8-bit or exotic depths
//   - ErrUnsupportedAiffLayout: COMM chunk missing or empty
package aiff
