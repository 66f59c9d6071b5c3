// Package spacing measures distances between the edges of observed nodes.
//
// # Nearest-neighbor search
//
// [Find] answers "what is closest to this edge of n?". Candidates are every
// node except n and its direct children that overlaps n on the other axis
// ([Intersects]). Each candidate is read twice:
//
//   - same-side edge: the candidate's top measured from n's top. This is the
//     reading for containers that reach past n.
//   - opposite edge: the candidate's bottom measured from n's top. This is
//     the reading for neighbors sitting beside n.
//
// The smaller magnitude represents the candidate. Distances are signed so
// that outward is positive; the smallest non-negative distance wins, and if
// every candidate lies inward the smallest magnitude wins. Exact ties are
// settled by a [TieBreak] policy, encounter order by default. Recorded
// passes list containers before their children, so encounter order favours
// an ancestor over an equally distant sibling; [TieSibling] prefers the
// sibling.
//
// # All edges
//
// [All] runs [Find] for top, bottom, leading and trailing, then collapses an
// axis whose two edges landed on the same neighbor edge down to the longer
// reading.
//
// # Focus
//
// [Direct] measures between two chosen nodes without searching, used when
// the user focuses a second node.
//
// # Cost
//
// One [Find] is linear in the set size; [All] is four of them. The
// inspector also computes a z-index for every node, which walks parent
// chains, so a full recomputation is O(n²) in the worst case. Node counts
// are expected to stay in the hundreds; BenchmarkAll tracks regressions.
package spacing
