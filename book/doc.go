// Package book is a page-turn engine for a virtual book.
//
// A book is a sequence of two-sided leaves. Exactly one leaf at a time may
// be turning, either under a continuous drag gesture or because the book
// was asked to turn a page. The engine never draws anything itself: every
// frame it hands each page face a [Pose] (rotation about the spine,
// horizontal mirror, offset and stacking order) which any 2D surface can
// apply, and it reports which pages became visible when a leaf settles.
//
// The engine is single-threaded. The host calls [Book.Advance] from its
// frame loop; gestures and flip requests must be issued from that same
// loop.
package book
