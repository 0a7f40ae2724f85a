// Package grid fills a rectangular grid with self-avoiding random walks.
//
// # Overview
//
// A [Session] owns a width×height grid and hands out [Path] values, one per
// call to [Session.FillOne]. Each path is a "snake": it starts on a random
// unvisited cell and steps to a random unvisited neighbour until it runs
// into a dead end. Successive paths never share a cell, so draining
// [Session.FillAll] covers every cell exactly once.
//
//	s, err := grid.NewSession(15, 15, grid.NewRand(42))
//	if err != nil {
//	    return err
//	}
//	for path, err := range s.FillAll() {
//	    if err != nil {
//	        return err
//	    }
//	    draw(path)
//	}
//
// # Rendering Metadata
//
// Every [PathStep] carries two values derived purely from the direction the
// walk arrived from and the direction it leaves in:
//
//   - [EdgeMask]: which of the cell's four borders are drawn. The border the
//     walk leaves through and the one it entered through stay open, so a
//     path reads as one continuous corridor.
//   - [HachureAngle]: the orientation of the fill texture. Vertical flow is
//     0°, horizontal flow 90°, turns are ±45°.
//
// See [ResolveEdges] and [ResolveHachure].
//
// # Randomness
//
// All randomness comes from the [Rand] passed to [NewSession]. [Shuffle] is
// the only consumer: the tracker shuffles its pool of start cells once per
// reset, and [ChooseNext] shuffles the four directions once per step. A
// fixed seed therefore reproduces the same drawing.
//
// # Concurrency
//
// A Session is owned by one goroutine. Callers that share one (the HTTP
// server does) must serialize access themselves.
package grid
