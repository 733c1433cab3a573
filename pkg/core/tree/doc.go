// Package tree provides the content model of a mind map and the generic
// depth-first walker shared by the layout engine.
//
// # Content model
//
// A mind map is a single [Node] tree. Each node carries [Data] (label, the
// expand/collapse flag, an optional pre-measured box, an optional custom
// position and an optional generalization) and an ordered list of
// children. The layout engine reads content nodes but never modifies them.
//
// # Walking
//
// [Walk] visits a tree depth-first, calling an enter visitor before a node's
// children and a leave visitor after them. The enter visitor may return true
// to skip the node's children (collapsed nodes); the leave visitor still
// fires for that node. Walk is generic over the node handle, so the same
// traversal drives both content trees (*Node) and arena-backed layout trees.
//
// # Import and export
//
// [ReadJSON], [ReadYAML] and [ReadFile] decode the wire format:
//
//	{
//	  "data": {"text": "Root", "expand": true},
//	  "children": [
//	    {"data": {"text": "Child", "width": 80, "height": 30}}
//	  ]
//	}
//
// Missing "expand" flags default to true. Missing ids are filled with UUIDs
// by [AssignIDs]. Boxes without width/height are filled in by a [Measurer].
package tree
