// Package transform derives output artifacts from a plant mask.
//
// Every function here is a thin, deterministic consumer of the mask that
// pipeline.ExtractMask produces: recoloring the background away, drawing a
// region-of-interest overlay, measuring size and shape, placing
// pseudolandmark points, and aggregating per-channel color histograms.
// None of them re-derive a mask; callers extract it once and hand the same
// mask to each consumer.
//
// Source images are never mutated. Functions that draw return a fresh copy;
// functions that measure return plain result structs.
package transform
