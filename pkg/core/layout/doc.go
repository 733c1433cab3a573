// Package layout computes positions and connector geometry for a mind map.
//
// A content tree ([tree.Node]) is turned into an arena of layout nodes
// ([Tree]) in four phases:
//
//  1. Base values: every visible node is created, the root is centered on
//     the configured origin and every other node is placed one margin step
//     away from its parent along the growth axis. On the way back up each
//     node records the aggregate cross-axis span its children need.
//  2. Cross values: children are distributed along the cross axis, centered
//     on their parent.
//  3. Overflow: where a node's children need more room than the node itself
//     occupies, the node's siblings and their subtrees are pushed apart, and
//     the correction is repeated for every ancestor.
//  4. Geometry: connector paths, expand button offsets and generalization
//     brackets are emitted for the final coordinates.
//
// The three supported strategies share this algorithm and differ only in
// their [Strategy] record: [Logical] grows to the right, [MindMap] grows to
// both sides alternating per first-level child, and [OrganizationStructure]
// grows downwards.
//
// [Compute] runs the phases synchronously. A [Driver] runs them as queued
// tasks on a worker goroutine, yielding between phases; a newer request on
// the same driver supersedes older ones.
package layout
