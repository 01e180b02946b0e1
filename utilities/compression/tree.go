package compression

import (
	"container/heap"

	"github.com/dargueta/squeeze"
)

// NodeKind tells leaves and internal nodes apart. Leaves are never identified by
// their symbol value, since every byte value including 0 is a legitimate symbol.
type NodeKind uint8

const (
	LeafNode NodeKind = iota + 1
	InternalNode
)

// NoChild is the child index stored in leaves.
const NoChild = -1

// TreeNode is a single node in a [Tree].
type TreeNode struct {
	Kind NodeKind
	// Symbol is only meaningful for leaves.
	Symbol byte
	// Weight is the symbol's count for a leaf, or the sum of the weights of all
	// leaves below an internal node.
	Weight uint64
	// Left and Right are indexes of the children of an internal node, or
	// [NoChild] for a leaf.
	Left  int
	Right int
}

func (node TreeNode) IsLeaf() bool {
	return node.Kind == LeafNode
}

// Tree is a Huffman tree stored as an arena of nodes addressed by index.
//
// Leaves occupy indexes [0, LeafCount()) in ascending symbol order. Every
// internal node is stored after both of its children, so the root is always
// the last node.
type Tree struct {
	nodes     []TreeNode
	leafCount int
}

// Root returns the index of the root node.
func (tree *Tree) Root() int {
	return len(tree.nodes) - 1
}

// Node returns the node at the given index.
func (tree *Tree) Node(index int) TreeNode {
	return tree.nodes[index]
}

// Len returns the total number of nodes in the tree.
func (tree *Tree) Len() int {
	return len(tree.nodes)
}

// LeafCount returns the number of leaves, equal to the number of distinct
// symbols the tree was built from.
func (tree *Tree) LeafCount() int {
	return tree.leafCount
}

func (tree *Tree) newNode(node TreeNode) int {
	tree.nodes = append(tree.nodes, node)
	return len(tree.nodes) - 1
}

// nodeQueue is a min-heap of node indexes into a tree, ordered by weight. Equal
// weights are ordered by index so that the output is deterministic.
type nodeQueue struct {
	tree    *Tree
	indexes []int
}

func (q *nodeQueue) Len() int { return len(q.indexes) }

func (q *nodeQueue) Less(i, j int) bool {
	a := q.tree.nodes[q.indexes[i]]
	b := q.tree.nodes[q.indexes[j]]
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	return q.indexes[i] < q.indexes[j]
}

func (q *nodeQueue) Swap(i, j int) {
	q.indexes[i], q.indexes[j] = q.indexes[j], q.indexes[i]
}

func (q *nodeQueue) Push(x interface{}) {
	q.indexes = append(q.indexes, x.(int))
}

func (q *nodeQueue) Pop() interface{} {
	last := len(q.indexes) - 1
	item := q.indexes[last]
	q.indexes = q.indexes[:last]
	return item
}

// BuildTree builds a Huffman tree from a frequency table by repeatedly merging
// the two lightest nodes until only the root remains.
//
// A table with a single symbol gives a tree whose root is that symbol's leaf.
// An empty table fails with [squeeze.ErrEmptyInput].
func BuildTree(frequencies *FrequencyTable) (*Tree, error) {
	if frequencies.Distinct() == 0 {
		return nil, squeeze.ErrEmptyInput.WithMessage("no symbols to build a tree from")
	}

	// A full binary tree with N leaves has 2N - 1 nodes.
	tree := &Tree{
		nodes:     make([]TreeNode, 0, 2*frequencies.Distinct()-1),
		leafCount: frequencies.Distinct(),
	}
	queue := &nodeQueue{
		tree:    tree,
		indexes: make([]int, 0, frequencies.Distinct()),
	}

	for _, symbol := range frequencies.Symbols() {
		index := tree.newNode(
			TreeNode{
				Kind:   LeafNode,
				Symbol: symbol,
				Weight: frequencies.Count(symbol),
				Left:   NoChild,
				Right:  NoChild,
			},
		)
		queue.indexes = append(queue.indexes, index)
	}
	heap.Init(queue)

	for queue.Len() > 1 {
		left := heap.Pop(queue).(int)
		right := heap.Pop(queue).(int)
		parent := tree.newNode(
			TreeNode{
				Kind:   InternalNode,
				Weight: tree.nodes[left].Weight + tree.nodes[right].Weight,
				Left:   left,
				Right:  right,
			},
		)
		heap.Push(queue, parent)
	}
	return tree, nil
}
