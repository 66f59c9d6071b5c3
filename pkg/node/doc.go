// Package node models the rectangles reported by annotated view elements and
// the hierarchy queries the inspector runs over them.
//
// A [Node] carries its own ID, the ID of its nearest annotated ancestor and
// its frame. A [Set] is everything one layout pass reported. The hierarchy
// is reconstructed purely from parent IDs; arrival order only decides render
// order.
//
// # Untrusted parent links
//
// Parent IDs come from the host application and are not validated. Queries
// degrade instead of failing:
//
//   - A ParentID that names no node in the set behaves like no parent.
//   - A parent chain that loops back on itself is cut at the first revisit,
//     so [Set.ZIndex] and [Set.Ancestors] always terminate.
//   - Duplicate IDs resolve to the first occurrence in set order.
package node
