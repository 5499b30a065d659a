package ipld

import (
	"context"
	"sort"
	"sync"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"

	"github.com/leakr-project/leakr-actors/actors/util/adt"
)

// Creates a new, empty IPLD store in memory.
// This store is appropriate for most kinds of testing.
func NewADTStore(ctx context.Context) adt.Store {
	return adt.WrapBlockStore(ctx, NewBlockStoreInMemory())
}

// An in-memory block store keyed by CID.
// Safe for concurrent use, though the VM itself only ever touches it from one goroutine.
type BlockStoreInMemory struct {
	mu   sync.RWMutex
	data map[cid.Cid]block.Block
}

var _ ipldcbor.IpldBlockstore = (*BlockStoreInMemory)(nil)

func NewBlockStoreInMemory() *BlockStoreInMemory {
	return &BlockStoreInMemory{data: make(map[cid.Cid]block.Block)}
}

func (mb *BlockStoreInMemory) Get(c cid.Cid) (block.Block, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	d, ok := mb.data[c]
	if ok {
		return d, nil
	}
	return nil, xerrors.Errorf("not found: %s", c)
}

func (mb *BlockStoreInMemory) Put(b block.Block) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.data[b.Cid()] = b
	return nil
}

// Has reports whether a block is present.
func (mb *BlockStoreInMemory) Has(c cid.Cid) bool {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	_, ok := mb.data[c]
	return ok
}

// Len is the number of blocks held.
func (mb *BlockStoreInMemory) Len() int {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	return len(mb.data)
}

// ForEach visits every block in CID key order, so that iteration is deterministic.
func (mb *BlockStoreInMemory) ForEach(fn func(b block.Block) error) error {
	mb.mu.RLock()
	keys := make([]cid.Cid, 0, len(mb.data))
	for c := range mb.data {
		keys = append(keys, c)
	}
	mb.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].KeyString() < keys[j].KeyString()
	})
	for _, c := range keys {
		b, err := mb.Get(c)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
	}
	return nil
}
