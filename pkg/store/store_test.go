package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStock(t *testing.T) {
	tests := []struct {
		name         string
		start        int
		delta        int
		wantPrevious int
		wantCurrent  int
	}{
		{name: "positive delta", start: 10, delta: 5, wantPrevious: 10, wantCurrent: 15},
		{name: "negative delta", start: 10, delta: -4, wantPrevious: 10, wantCurrent: 6},
		{name: "underflow clamps to zero", start: 3, delta: -100, wantPrevious: 3, wantCurrent: 0},
		{name: "zero delta", start: 7, delta: 0, wantPrevious: 7, wantCurrent: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			s.AddItem(Item{ID: "SKU999", Name: "Test Item", Stock: tc.start})

			previous, current, err := s.UpdateStock("SKU999", tc.delta)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPrevious, previous)
			assert.Equal(t, tc.wantCurrent, current)

			it, ok := s.Item("SKU999")
			require.True(t, ok)
			assert.Equal(t, tc.wantCurrent, it.Stock)
		})
	}
}

func TestUpdateStockUnknownItem(t *testing.T) {
	s := New()
	_, _, err := s.UpdateStock("SKU404", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SKU404")
}

func TestSetSlot(t *testing.T) {
	grid := [][]string{
		{"SKU001", EmptySlot},
		{EmptySlot, EmptySlot},
	}

	tests := []struct {
		name     string
		shelf    string
		level    int
		position int
		wantErr  bool
	}{
		{name: "valid slot", shelf: "A1", level: 0, position: 1, wantErr: false},
		{name: "unknown shelf", shelf: "Z9", level: 0, position: 0, wantErr: true},
		{name: "level out of range", shelf: "A1", level: 2, position: 0, wantErr: true},
		{name: "negative level", shelf: "A1", level: -1, position: 0, wantErr: true},
		{name: "position out of range", shelf: "A1", level: 0, position: 2, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			s.AddShelf("A1", grid)

			err := s.SetSlot(tc.shelf, tc.level, tc.position, "SKU002")
			if tc.wantErr {
				require.Error(t, err)
				// State is untouched after a failed write.
				got, ok := s.Shelf("A1")
				require.True(t, ok)
				assert.Equal(t, grid, got)
				return
			}
			require.NoError(t, err)
			got, ok := s.Shelf("A1")
			require.True(t, ok)
			assert.Equal(t, "SKU002", got[tc.level][tc.position])
		})
	}
}

func TestShelfReturnsCopy(t *testing.T) {
	s := New()
	s.AddShelf("A1", [][]string{{"SKU001"}})

	grid, ok := s.Shelf("A1")
	require.True(t, ok)
	grid[0][0] = "SKU999"

	fresh, ok := s.Shelf("A1")
	require.True(t, ok)
	assert.Equal(t, "SKU001", fresh[0][0], "mutating the returned grid must not affect the store")
}

func TestCreateRequest(t *testing.T) {
	s := New()
	req := s.CreateRequest("SKU001", 5, "A1")

	require.NotNil(t, req)
	assert.True(t, strings.HasPrefix(req.ID, "REQ-"))
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, 5, req.Quantity)

	got, ok := s.Request(req.ID)
	require.True(t, ok)
	assert.Equal(t, req, got)

	other := s.CreateRequest("SKU001", 5, "A1")
	assert.NotEqual(t, req.ID, other.ID, "request IDs must be unique")
}

func TestAdvanceRequest(t *testing.T) {
	t.Run("unknown request", func(t *testing.T) {
		s := New()
		_, ok := s.AdvanceRequest("REQ-NOPE")
		assert.False(t, ok)
	})

	t.Run("advances when the roll succeeds", func(t *testing.T) {
		s := New()
		s.SetRand(func() float64 { return 0.0 })
		req := s.CreateRequest("SKU001", 1, "A1")

		got, ok := s.AdvanceRequest(req.ID)
		require.True(t, ok)
		assert.Equal(t, StatusInTransit, got.Status)

		got, ok = s.AdvanceRequest(req.ID)
		require.True(t, ok)
		assert.Equal(t, StatusDelivered, got.Status)

		// Delivered is terminal.
		got, ok = s.AdvanceRequest(req.ID)
		require.True(t, ok)
		assert.Equal(t, StatusDelivered, got.Status)
	})

	t.Run("stays put when the roll fails", func(t *testing.T) {
		s := New()
		s.SetRand(func() float64 { return 0.99 })
		req := s.CreateRequest("SKU001", 1, "A1")

		for i := 0; i < 5; i++ {
			got, ok := s.AdvanceRequest(req.ID)
			require.True(t, ok)
			assert.Equal(t, StatusPending, got.Status)
		}
	})
}

func TestFixtures(t *testing.T) {
	s := NewWithFixtures()

	assert.Len(t, s.Items(), 20)
	assert.Len(t, s.ShelfIDs(), 11)

	it, ok := s.Item("SKU003")
	require.True(t, ok)
	assert.Equal(t, "Adventure Granola", it.Name)
	assert.Equal(t, 8, it.Stock)
	assert.Equal(t, "A2", it.LocationID)

	grid, ok := s.Shelf("A1")
	require.True(t, ok)
	require.Len(t, grid, 4)
	for _, row := range grid {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, "SKU001", grid[0][0])
	assert.Equal(t, EmptySlot, grid[3][0])
}
