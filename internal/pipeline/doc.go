// Package pipeline implements the plant mask extraction core.
//
// A leaf photograph is reduced to a binary foreground/background mask in
// three stages: a single color channel is projected out of the RGB image
// (Lab, HSV, or CMYK), the resulting grayscale buffer is binarized with an
// automatically selected Otsu threshold, and interior holes in the
// foreground are filled by boundary-reachability flood fill. ExtractMask
// composes the three stages and is the only entry point downstream
// consumers should use.
//
// # Conventions
//
// Grayscale buffers and masks are *image.Gray with the same bounds as the
// source image. Mask cells hold exactly 0 (background) or 255 (foreground).
// Projected channel values are normalized into 0-255 regardless of the
// colorspace's native range.
//
// # Purity
//
// Every function in this package is a pure function of its inputs apart
// from allocating its result. Input images are never mutated, no state is
// retained between calls, and separate calls may run concurrently on
// different images without coordination.
//
// # Error Handling
//
// Configuration mistakes surface as ErrInvalidChannel or ErrInvalidImage
// before any pixel work happens. Unexpected failures inside a stage are
// wrapped in a StageError naming the stage; the package never retries.
package pipeline
