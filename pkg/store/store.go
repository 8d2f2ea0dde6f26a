// Package store holds the in-memory inventory state for the store assistant:
// item records, per-shelf slot grids, and outstanding storage requests.
// A Store is an explicit object passed by handle to the tool functions and
// test harnesses; there is no package-level mutable state.
//
// The store is written for a single-session, single-actor process. Mutations
// are plain in-place writes with no locking or transactional isolation.
package store

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Item is one inventory record. Items are mutated in place and never deleted.
type Item struct {
	ID         string `json:"item_id"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	Category   string `json:"category"`
	LocationID string `json:"location_id"`
	Position   int    `json:"position"`
}

// RequestStatus is the delivery state of a storage request. It only ever
// advances Pending -> In Transit -> Delivered.
type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusInTransit RequestStatus = "In Transit"
	StatusDelivered RequestStatus = "Delivered"
)

// StorageRequest tracks one "bring stock from the back" request. Requests are
// never removed once created.
type StorageRequest struct {
	ID             string        `json:"request_id"`
	ItemID         string        `json:"item_id"`
	Quantity       int           `json:"quantity"`
	TargetLocation string        `json:"target_location"`
	Status         RequestStatus `json:"status"`
}

// EmptySlot marks a vacant shelf position in a layout grid.
const EmptySlot = ""

// Store owns the inventory, shelf layout, and storage request tables.
type Store struct {
	items    map[string]*Item
	shelves  map[string][][]string
	requests map[string]*StorageRequest

	// rand drives the simulated delivery progression. Swappable in tests
	// via SetRand for deterministic status advancement.
	rand func() float64
}

// New returns an empty Store. Most callers want NewWithFixtures.
func New() *Store {
	return &Store{
		items:    make(map[string]*Item),
		shelves:  make(map[string][][]string),
		requests: make(map[string]*StorageRequest),
		rand:     rand.Float64,
	}
}

// SetRand replaces the random source used by AdvanceRequest.
func (s *Store) SetRand(fn func() float64) {
	if fn != nil {
		s.rand = fn
	}
}

// AddItem registers an inventory record, overwriting any existing record with
// the same ID.
func (s *Store) AddItem(it Item) {
	copied := it
	s.items[it.ID] = &copied
}

// Item looks up a record by ID. The returned pointer is live; stock updates
// through UpdateStock are visible to previous callers.
func (s *Store) Item(id string) (*Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// Items returns all records ordered by item ID.
func (s *Store) Items() []*Item {
	out := make([]*Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateStock applies a signed delta to an item's stock count, clamping the
// result at zero. It returns the stock before and after the change.
func (s *Store) UpdateStock(id string, delta int) (previous, current int, err error) {
	it, ok := s.items[id]
	if !ok {
		return 0, 0, fmt.Errorf("item ID %s not found", id)
	}
	previous = it.Stock
	it.Stock += delta
	if it.Stock < 0 {
		it.Stock = 0
	}
	return previous, it.Stock, nil
}

// AddShelf registers a layout grid under a shelf ID. Grid dimensions are
// fixed after registration; only slot contents change.
func (s *Store) AddShelf(id string, grid [][]string) {
	copied := make([][]string, len(grid))
	for i, row := range grid {
		copied[i] = append([]string(nil), row...)
	}
	s.shelves[id] = copied
}

// Shelf returns a copy of the layout grid for a shelf ID. Mutate slots
// through SetSlot, not through the returned grid.
func (s *Store) Shelf(id string) ([][]string, bool) {
	grid, ok := s.shelves[id]
	if !ok {
		return nil, false
	}
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = append([]string(nil), row...)
	}
	return out, true
}

// HasShelf reports whether a shelf ID is provisioned.
func (s *Store) HasShelf(id string) bool {
	_, ok := s.shelves[id]
	return ok
}

// ShelfIDs returns all provisioned shelf IDs in sorted order.
func (s *Store) ShelfIDs() []string {
	out := make([]string, 0, len(s.shelves))
	for id := range s.shelves {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SetSlot writes an item ID (or EmptySlot) into the addressed slot,
// overwriting prior contents. Level and position are zero-based.
func (s *Store) SetSlot(shelfID string, level, position int, itemID string) error {
	grid, ok := s.shelves[shelfID]
	if !ok {
		return fmt.Errorf("shelf ID %s not found", shelfID)
	}
	if level < 0 || level >= len(grid) {
		return fmt.Errorf("invalid shelf index %d for shelf %s", level, shelfID)
	}
	if position < 0 || position >= len(grid[level]) {
		return fmt.Errorf("invalid position index %d for shelf %s, level %d", position, shelfID, level+1)
	}
	grid[level][position] = itemID
	return nil
}

// CreateRequest records a new storage request in Pending status and returns
// it. The caller is responsible for validating the item, quantity, and target
// shelf beforehand.
func (s *Store) CreateRequest(itemID string, quantity int, targetLocation string) *StorageRequest {
	req := &StorageRequest{
		ID:             newRequestID(),
		ItemID:         itemID,
		Quantity:       quantity,
		TargetLocation: targetLocation,
		Status:         StatusPending,
	}
	s.requests[req.ID] = req
	return req
}

// Request looks up a storage request by ID without advancing its status.
func (s *Store) Request(id string) (*StorageRequest, bool) {
	req, ok := s.requests[id]
	return req, ok
}

// AdvanceRequest looks up a request and stochastically advances its delivery
// status: Pending moves to In Transit with probability 0.3 per call, In
// Transit moves to Delivered with probability 0.5 per call. This simulates a
// fulfillment process that only progresses when polled; it is not
// authoritative delivery tracking.
func (s *Store) AdvanceRequest(id string) (*StorageRequest, bool) {
	req, ok := s.requests[id]
	if !ok {
		return nil, false
	}
	switch req.Status {
	case StatusPending:
		if s.rand() < 0.3 {
			req.Status = StatusInTransit
		}
	case StatusInTransit:
		if s.rand() < 0.5 {
			req.Status = StatusDelivered
		}
	}
	return req, true
}

func newRequestID() string {
	return "REQ-" + strings.ToUpper(uuid.NewString()[:8])
}
