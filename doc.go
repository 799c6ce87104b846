// Package polydec reduces the number of points in polyline meshes.
//
// # Overview
//
// polydec is a Pure Go polyline decimation library. Given points and line
// connectivity it greedily removes the vertex whose removal introduces the
// smallest deviation, until a requested fraction of the points is gone or no
// further vertex may be removed.
//
// # Quick Start
//
//	import "github.com/gogpu/polydec"
//
//	mesh := &polydec.Mesh{
//	    Points: polydec.PointsFromVec3(pts),
//	    Lines:  polydec.NewLines([]int{0, 1, 2, 3, 4}),
//	}
//
//	res, err := polydec.New(polydec.WithTargetReduction(0.5)).Decimate(mesh)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Mesh.Points.Len(), "points left")
//
// # Error Metric
//
// The error of a vertex is its perpendicular distance to the line through its
// two current neighbors. Vertices are removed in ascending error order, ties
// broken by ascending position in the chain, so output is reproducible.
//
// # Chains
//
// Input lines are grouped into chains. A chain whose last point equals its
// first is closed. Open chains always keep their two end points; closed chains
// keep at least three points. Lines that meet end to end at a point used by
// nothing else are joined into one chain (see [WithLineMerging]). Points
// shared by more than two line ends are not tracked across chains: every
// chain treats its own copy independently.
//
// # Reduction Target
//
// [WithTargetReduction] is a mesh-wide target. With [StrategySequential]
// chains are decimated in input order until the whole mesh reaches the
// target; with [StrategyProRata] every chain first gets its proportional
// share, optionally in parallel.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Decimator, Mesh, Points, Lines, Attributes
//   - Internal: chain (partitioning), metric (error), queue (priority
//     structures), buffer (typed arrays), parallel (worker pool)
//   - Tooling: cmd/polydec command-line tool
package polydec

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
