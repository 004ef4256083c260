// Package lichen is the rendering core of a toy web browser: an
// incremental two-phase layout engine driven by a two-thread rendering
// event loop.
//
// The main thread owns script execution, content mutation, and the
// size/position layout passes; the compositor thread owns the drawing
// surface, input routing, scrolling, browser chrome, and animation-frame
// scheduling at a fixed cadence. The two meet at exactly one point: the
// commit of a finished display list under a lock.
//
// Layout is incremental. Content mutations register reflow roots, the
// layout subtrees whose size pass must re-run, while the position pass
// is cheap and runs globally every frame, so stale coordinates can never
// leak between layout generations. When script reads geometry mid-task,
// the pending pipeline runs synchronously inline instead of waiting for
// the next frame.
//
// Parsing, networking, rasterization, and the JavaScript engine itself
// are external collaborators behind narrow interfaces: content trees
// arrive pre-styled, display lists leave as typed command sequences, and
// scripts reach the engine only through the script.Host surface.
package lichen
