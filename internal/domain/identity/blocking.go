package identity

import (
	"sort"

	"github.com/riskibarqy/hoops-scout/internal/domain/naming"
)

// Block is a set of subjects sharing a surname prefix. Members are indexes
// into the subject slice the Blocking was built from.
type Block struct {
	Key     string
	Members []int
}

// Blocking buckets subjects so pairwise scoring only runs inside a bucket.
// A subject can sit in several blocks; each pair is owned by the smallest
// key both subjects share so it is scored exactly once.
type Blocking struct {
	keys   [][]string
	blocks []Block
}

func NewBlocking(subjects []Subject, prefixLen int) Blocking {
	keys := make([][]string, len(subjects))
	index := make(map[string][]int)
	for i, s := range subjects {
		k := naming.BlockKeys(s.Name, prefixLen)
		sort.Strings(k)
		keys[i] = k
		for _, key := range k {
			index[key] = append(index[key], i)
		}
	}

	blocks := make([]Block, 0, len(index))
	for key, members := range index {
		if len(members) < 2 {
			continue
		}
		blocks = append(blocks, Block{Key: key, Members: members})
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Key < blocks[j].Key })

	return Blocking{keys: keys, blocks: blocks}
}

func (b Blocking) Blocks() []Block {
	return b.blocks
}

// PairCount is the number of comparisons ForEachPair will make.
func (b Blocking) PairCount() int {
	total := 0
	for _, block := range b.blocks {
		b.ForEachPair(block, func(int, int) { total++ })
	}
	return total
}

// ForEachPair calls fn for each pair in block that the block owns.
func (b Blocking) ForEachPair(block Block, fn func(i, j int)) {
	for x := 0; x < len(block.Members); x++ {
		for y := x + 1; y < len(block.Members); y++ {
			i, j := block.Members[x], block.Members[y]
			if firstSharedKey(b.keys[i], b.keys[j]) != block.Key {
				continue
			}
			fn(i, j)
		}
	}
}

// firstSharedKey walks two sorted key lists and returns the smallest common key.
func firstSharedKey(a, b []string) string {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return a[i]
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return ""
}
