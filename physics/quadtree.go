// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/sock-lobster/CollisionDetection/math/lin"

// defaultMaxParticlesPerLevel mirrors MAX_PARTICLES_PER_LEVEL when a
// Quadtree is constructed without an explicit override.
const defaultMaxParticlesPerLevel = 5

// Quadtree is a recursive spatial subdivision: 2D quadtree when Dims
// is 2, 3D octree when Dims is 3. Cleared and rebuilt every tick, as
// the particle count is small enough that a persistent tree brings no
// benefit and a fresh tree can't go stale.
type Quadtree struct {
	Dims        int
	Bounds      AABB
	MaxPerLevel int // defaults to defaultMaxParticlesPerLevel
}

type qtNode struct {
	bounds    AABB
	depth     int
	particles []int
	children  []*qtNode
}

func newQtNode(bounds AABB, depth int) *qtNode { return &qtNode{bounds: bounds, depth: depth} }

// split partitions a node into 4 (2D) or 8 (3D) equal child regions.
func (n *qtNode) split(dims int) {
	mid := lin.V3{
		X: (n.bounds.Min.X + n.bounds.Max.X) / 2,
		Y: (n.bounds.Min.Y + n.bounds.Max.Y) / 2,
		Z: (n.bounds.Min.Z + n.bounds.Max.Z) / 2,
	}
	xr := [2][2]float64{{n.bounds.Min.X, mid.X}, {mid.X, n.bounds.Max.X}}
	yr := [2][2]float64{{n.bounds.Min.Y, mid.Y}, {mid.Y, n.bounds.Max.Y}}
	zr := [][2]float64{{n.bounds.Min.Z, n.bounds.Max.Z}}
	if dims == 3 {
		zr = [][2]float64{{n.bounds.Min.Z, mid.Z}, {mid.Z, n.bounds.Max.Z}}
	}
	n.children = make([]*qtNode, 0, len(xr)*len(yr)*len(zr))
	for _, z := range zr {
		for _, y := range yr {
			for _, x := range xr {
				bounds := AABB{
					Min: lin.V3{X: x[0], Y: y[0], Z: z[0]},
					Max: lin.V3{X: x[1], Y: y[1], Z: z[1]},
				}
				n.children = append(n.children, newQtNode(bounds, n.depth+1))
			}
		}
	}
}

// childFor returns the unique child whose region wholly contains box,
// or nil if box straddles a boundary and must stay at this node.
func (n *qtNode) childFor(box AABB) *qtNode {
	for _, c := range n.children {
		if box.Min.X >= c.bounds.Min.X && box.Max.X <= c.bounds.Max.X &&
			box.Min.Y >= c.bounds.Min.Y && box.Max.Y <= c.bounds.Max.Y &&
			box.Min.Z >= c.bounds.Min.Z && box.Max.Z <= c.bounds.Max.Z {
			return c
		}
	}
	return nil
}

func (q *Quadtree) CandidatePairs(particles []*Particle) []Pair {
	n := len(particles)
	if n == 0 {
		return nil
	}
	maxPerLevel := q.MaxPerLevel
	if maxPerLevel <= 0 {
		maxPerLevel = defaultMaxParticlesPerLevel
	}
	maxLevels := n / maxPerLevel

	boxes := make([]AABB, n)
	root := newQtNode(q.Bounds, 0)
	for i, p := range particles {
		boxes[i] = p.AABB()
		insertQt(root, i, boxes, q.Dims, maxPerLevel, maxLevels)
	}

	seen := make(map[int64]bool)
	var pairs []Pair
	for i := range particles {
		for _, j := range collectPath(root, boxes[i]) {
			if j == i {
				continue
			}
			key := pairKey(i, j)
			if seen[key] {
				continue
			}
			seen[key] = true
			pairs = append(pairs, orderedPair(i, j))
		}
	}
	return pairs
}

// insertQt descends to the unique wholly-containing child, splitting a
// leaf that has exceeded maxPerLevel and isn't already at maxLevels.
// Particles straddling a split remain at the parent.
func insertQt(node *qtNode, idx int, boxes []AABB, dims, maxPerLevel, maxLevels int) {
	if node.children != nil {
		if child := node.childFor(boxes[idx]); child != nil {
			insertQt(child, idx, boxes, dims, maxPerLevel, maxLevels)
			return
		}
		node.particles = append(node.particles, idx)
		return
	}

	node.particles = append(node.particles, idx)
	if len(node.particles) > maxPerLevel && node.depth < maxLevels {
		node.split(dims)
		kept := node.particles[:0]
		for _, pidx := range node.particles {
			if child := node.childFor(boxes[pidx]); child != nil {
				insertQt(child, pidx, boxes, dims, maxPerLevel, maxLevels)
			} else {
				kept = append(kept, pidx)
			}
		}
		node.particles = kept
	}
}

// collectPath gathers every particle index held at each node visited
// while descending toward box's unique containing leaf.
func collectPath(node *qtNode, box AABB) []int {
	var result []int
	for {
		result = append(result, node.particles...)
		if node.children == nil {
			break
		}
		child := node.childFor(box)
		if child == nil {
			break
		}
		node = child
	}
	return result
}
