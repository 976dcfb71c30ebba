// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface declares the narrow collaborator contract the
// geometric core draws through (spec 6.3): fill_trapezoids, fill_boxes,
// create_similar_solid, acquire/release_source_image, and get_extents.
// The core never interprets pixel data itself; it only hands a surface
// the trapezoids or boxes it produced and asks it to consume them.
//
// ImageSurface is a reference implementation of that contract over
// *image.RGBA, kept mainly so the facade and its tests have something
// concrete to render into; production backends (GPU, window-system,
// vector output) are expected to implement Surface directly and are
// explicitly out of scope here.
package surface
