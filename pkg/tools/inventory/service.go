// Package inventory implements the store management tool functions exposed
// to the agent: stock checks, shelf layouts, storage requests, restock
// bookkeeping, and the simulated image-scan restock.
//
// Every function returns a JSON-serializable payload. Validation failures
// (unknown IDs, out-of-range indices, non-positive quantities) come back as
// an ErrorResult rather than a Go error, so the agent can read the message
// and retry; Go errors are reserved for faults the agent cannot fix.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/aymenfurter/store-agent/pkg/store"
)

// DefaultMinStockLevel is the restock threshold used when a query does not
// specify one.
const DefaultMinStockLevel = 5

// Service executes tool functions against a shared Store. Each invocation is
// wrapped in a span carrying its key arguments and result or error.
type Service struct {
	store  *store.Store
	tracer trace.Tracer
}

// NewService wires the tool functions to a store. A nil tracer disables
// span recording.
func NewService(st *store.Store, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("inventory")
	}
	return &Service{store: st, tracer: tracer}
}

// CheckItemStock reports the current stock count for an item.
func (s *Service) CheckItemStock(ctx context.Context, args CheckStockArgs) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "check_item_stock")
	defer span.End()
	span.SetAttributes(attribute.String("item_id", args.ItemID))

	it, ok := s.store.Item(args.ItemID)
	if !ok {
		return s.fail(span, "Item ID %s not found.", args.ItemID), nil
	}
	span.SetAttributes(attribute.Int("result.stock", it.Stock))
	return StockResult{ItemID: it.ID, Name: it.Name, Stock: it.Stock}, nil
}

// FindItemLocation reports which shelf and position an item belongs on.
func (s *Service) FindItemLocation(ctx context.Context, args FindLocationArgs) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "find_item_location")
	defer span.End()
	span.SetAttributes(attribute.String("item_id", args.ItemID))

	it, ok := s.store.Item(args.ItemID)
	if !ok {
		return s.fail(span, "Item ID %s not found.", args.ItemID), nil
	}
	if it.LocationID == "" {
		return s.fail(span, "Location for Item ID %s not defined.", args.ItemID), nil
	}
	span.SetAttributes(
		attribute.String("result.location_id", it.LocationID),
		attribute.Int("result.position", it.Position),
	)
	return LocationResult{ItemID: it.ID, Name: it.Name, LocationID: it.LocationID, Position: it.Position}, nil
}

// GetShelfLayout renders the slot grid of one shelf as a fixed-width table.
func (s *Service) GetShelfLayout(ctx context.Context, args ShelfLayoutArgs) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "get_shelf_layout")
	defer span.End()
	span.SetAttributes(attribute.String("shelf_id", args.ShelfID))

	grid, ok := s.store.Shelf(args.ShelfID)
	if !ok {
		return s.fail(span, "Shelf ID %s not found.", args.ShelfID), nil
	}
	span.SetAttributes(attribute.Int("result.shelf_count", len(grid)))
	return LayoutResult{ShelfID: args.ShelfID, LayoutVisual: s.renderLayout(args.ShelfID, grid)}, nil
}

// RequestItemFromStorage creates a Pending storage request after validating
// the item, target shelf, and quantity.
func (s *Service) RequestItemFromStorage(ctx context.Context, args StorageRequestArgs) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "request_item_from_storage")
	defer span.End()
	span.SetAttributes(
		attribute.String("item_id", args.ItemID),
		attribute.Int("quantity", args.Quantity),
		attribute.String("target_location_id", args.TargetLocationID),
	)

	it, ok := s.store.Item(args.ItemID)
	if !ok {
		return s.fail(span, "Item ID %s not found in inventory system.", args.ItemID), nil
	}
	if !s.store.HasShelf(args.TargetLocationID) {
		return s.fail(span, "Target Shelf ID %s does not exist.", args.TargetLocationID), nil
	}
	if args.Quantity <= 0 {
		return s.fail(span, "Quantity must be positive."), nil
	}

	req := s.store.CreateRequest(args.ItemID, args.Quantity, args.TargetLocationID)
	span.SetAttributes(attribute.String("result.request_id", req.ID))
	return StorageRequestResult{
		RequestID: req.ID,
		Status:    string(req.Status),
		Message: fmt.Sprintf("Request %s created for %d of %s to shelf %s.",
			req.ID, args.Quantity, it.Name, args.TargetLocationID),
	}, nil
}

// CheckDeliveryStatus polls a storage request, advancing its simulated
// delivery status before reporting it.
func (s *Service) CheckDeliveryStatus(ctx context.Context, args DeliveryStatusArgs) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "check_delivery_status")
	defer span.End()
	span.SetAttributes(attribute.String("request_id", args.RequestID))

	req, ok := s.store.AdvanceRequest(args.RequestID)
	if !ok {
		return s.fail(span, "Request ID %s not found.", args.RequestID), nil
	}
	span.SetAttributes(attribute.String("result.status", string(req.Status)))
	return DeliveryStatusResult{RequestID: req.ID, Status: string(req.Status), Details: req}, nil
}

// GetItemsNeedingRestock reports items whose stock is strictly below the
// threshold, optionally filtered by category.
func (s *Service) GetItemsNeedingRestock(ctx context.Context, args RestockQueryArgs) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "get_items_needing_restock")
	defer span.End()

	threshold := args.MinStockLevel
	if threshold <= 0 {
		threshold = DefaultMinStockLevel
	}
	category := args.Category
	if category == "" {
		span.SetAttributes(attribute.String("category_filter", "None"))
	} else {
		span.SetAttributes(attribute.String("category_filter", category))
	}
	span.SetAttributes(attribute.Int("min_stock_level", threshold))

	low := []LowStockItem{}
	for _, it := range s.store.Items() {
		if it.Stock >= threshold {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		low = append(low, LowStockItem{
			ItemID:       it.ID,
			Name:         it.Name,
			CurrentStock: it.Stock,
			LocationID:   it.LocationID,
		})
	}
	span.SetAttributes(attribute.Int("result.count", len(low)))
	return RestockQueryResult{LowStockItems: low, Count: len(low)}, nil
}

// UpdateInventoryCount applies a signed stock delta, clamping at zero.
func (s *Service) UpdateInventoryCount(ctx context.Context, args UpdateCountArgs) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "update_inventory_count")
	defer span.End()

	reason := args.Reason
	if reason == "" {
		reason = "Restock"
	}
	span.SetAttributes(
		attribute.String("item_id", args.ItemID),
		attribute.Int("quantity_change", args.QuantityChange),
		attribute.String("reason", reason),
	)

	it, ok := s.store.Item(args.ItemID)
	if !ok {
		return s.fail(span, "Item ID %s not found.", args.ItemID), nil
	}
	previous, current, err := s.store.UpdateStock(args.ItemID, args.QuantityChange)
	if err != nil {
		return s.fail(span, "%s", err.Error()), nil
	}
	span.SetAttributes(attribute.Int("result.new_stock", current))
	return UpdateCountResult{
		ItemID:        it.ID,
		Name:          it.Name,
		PreviousStock: previous,
		NewStock:      current,
		Change:        args.QuantityChange,
		Reason:        reason,
	}, nil
}

// MarkItemRestocked writes the item into the addressed slot and bumps its
// stock count. All validation happens before any mutation: an invalid shelf
// or position leaves both the layout and the inventory untouched.
func (s *Service) MarkItemRestocked(ctx context.Context, args MarkRestockedArgs) (interface{}, error) {
	ctx, span := s.tracer.Start(ctx, "mark_item_restocked")
	defer span.End()
	span.SetAttributes(
		attribute.String("item_id", args.ItemID),
		attribute.String("shelf_id", args.ShelfID),
		attribute.Int("shelf_index", args.ShelfIndex),
		attribute.Int("position_index", args.PositionIndex),
		attribute.Int("quantity", args.Quantity),
	)

	it, ok := s.store.Item(args.ItemID)
	if !ok {
		return s.fail(span, "Item ID %s not found.", args.ItemID), nil
	}
	grid, ok := s.store.Shelf(args.ShelfID)
	if !ok {
		return s.fail(span, "Shelf ID %s not found.", args.ShelfID), nil
	}
	if args.ShelfIndex < 0 || args.ShelfIndex >= len(grid) {
		return s.fail(span, "Invalid shelf index %d for Shelf %s.", args.ShelfIndex, args.ShelfID), nil
	}
	if args.PositionIndex < 0 || args.PositionIndex >= len(grid[args.ShelfIndex]) {
		return s.fail(span, "Invalid position index %d for Shelf %s, Shelf %d.",
			args.PositionIndex, args.ShelfID, args.ShelfIndex+1), nil
	}
	if args.Quantity <= 0 {
		return s.fail(span, "Quantity must be positive."), nil
	}

	if err := s.store.SetSlot(args.ShelfID, args.ShelfIndex, args.PositionIndex, args.ItemID); err != nil {
		return s.fail(span, "%s", err.Error()), nil
	}

	reason := fmt.Sprintf("Restocked on %s-S%d-P%d", args.ShelfID, args.ShelfIndex+1, args.PositionIndex+1)
	updated, err := s.UpdateInventoryCount(ctx, UpdateCountArgs{
		ItemID:         args.ItemID,
		QuantityChange: args.Quantity,
		Reason:         reason,
	})
	if err != nil {
		return nil, err
	}
	update, ok := updated.(UpdateCountResult)
	if !ok {
		inner := updated.(ErrorResult)
		return s.fail(span, "Failed to update inventory: %s", inner.Error), nil
	}

	span.SetAttributes(attribute.String("result.message", "Success"))
	return MarkRestockedResult{
		Message: fmt.Sprintf("Successfully restocked %d of %s (%s) at %s-S%d-P%d.",
			args.Quantity, it.Name, it.ID, args.ShelfID, args.ShelfIndex+1, args.PositionIndex+1),
		InventoryUpdate: update,
	}, nil
}

// LogDamagedItem removes damaged units from stock with a reason string
// embedding the reporter's notes.
func (s *Service) LogDamagedItem(ctx context.Context, args LogDamagedArgs) (interface{}, error) {
	ctx, span := s.tracer.Start(ctx, "log_damaged_item")
	defer span.End()
	span.SetAttributes(
		attribute.String("item_id", args.ItemID),
		attribute.Int("quantity", args.Quantity),
	)
	if args.Notes != "" {
		span.SetAttributes(attribute.String("notes", args.Notes))
	}

	if args.Quantity <= 0 {
		return s.fail(span, "Quantity must be positive."), nil
	}

	notes := args.Notes
	if notes == "" {
		notes = "No details"
	}
	updated, err := s.UpdateInventoryCount(ctx, UpdateCountArgs{
		ItemID:         args.ItemID,
		QuantityChange: -args.Quantity,
		Reason:         fmt.Sprintf("Damaged (%s)", notes),
	})
	if err != nil {
		return nil, err
	}
	update, ok := updated.(UpdateCountResult)
	if !ok {
		inner := updated.(ErrorResult)
		return s.fail(span, "Failed to log damage: %s", inner.Error), nil
	}

	span.SetAttributes(attribute.String("result.message", "Success"))
	return DamageResult{
		Message:         fmt.Sprintf("Successfully logged %d damaged units of %s (%s).", args.Quantity, update.Name, args.ItemID),
		InventoryUpdate: update,
	}, nil
}

// GetStoreLayoutOverview lists all provisioned shelf IDs.
func (s *Service) GetStoreLayoutOverview(ctx context.Context, _ struct{}) (interface{}, error) {
	_, span := s.tracer.Start(ctx, "get_store_layout_overview")
	defer span.End()

	ids := s.store.ShelfIDs()
	span.SetAttributes(attribute.Int("result.count", len(ids)))
	return OverviewResult{ShelfIDs: ids, Count: len(ids)}, nil
}

// IdentifyAndRestockItemFromImage simulates a vision-based restock. The
// "image" payload is treated literally as an item ID; the item's shelf is
// resolved, a slot is chosen (the first slot already holding the item, or
// failing that the first empty slot), and the restock is delegated to
// MarkItemRestocked.
func (s *Service) IdentifyAndRestockItemFromImage(ctx context.Context, args ImageRestockArgs) (interface{}, error) {
	ctx, span := s.tracer.Start(ctx, "identify_and_restock_item_from_image")
	defer span.End()
	span.SetAttributes(
		attribute.String("simulated_input_type", "item_id_from_image_data"),
		attribute.Int("quantity", args.Quantity),
	)

	itemID := args.ImageData
	span.SetAttributes(attribute.String("identified_item_id", itemID))
	if itemID == "" {
		return s.fail(span, "Could not identify item from image data (simulation)."), nil
	}

	located, err := s.FindItemLocation(ctx, FindLocationArgs{ItemID: itemID})
	if err != nil {
		return nil, err
	}
	location, ok := located.(LocationResult)
	if !ok {
		inner := located.(ErrorResult)
		return s.fail(span, "Could not find location for identified item %s: %s", itemID, inner.Error), nil
	}

	level, position, found := s.locateSlot(location.LocationID, itemID)
	if !found {
		return s.fail(span, "Could not determine specific shelf/position for item %s on shelf %s. Layout might need update.",
			itemID, location.LocationID), nil
	}
	span.SetAttributes(
		attribute.Int("determined_shelf_index", level),
		attribute.Int("determined_position_index", position),
	)

	restocked, err := s.MarkItemRestocked(ctx, MarkRestockedArgs{
		ItemID:        itemID,
		ShelfID:       location.LocationID,
		ShelfIndex:    level,
		PositionIndex: position,
		Quantity:      args.Quantity,
	})
	if err != nil {
		return nil, err
	}
	details, ok := restocked.(MarkRestockedResult)
	if !ok {
		inner := restocked.(ErrorResult)
		return s.fail(span, "Failed to restock after identification: %s", inner.Error), nil
	}

	span.SetAttributes(attribute.String("result.message", "Success"))
	return ImageRestockResult{
		Message:        fmt.Sprintf("Simulated vision identification and restocking complete for %s.", itemID),
		RestockDetails: details,
	}, nil
}

// locateSlot finds where an item should go on a shelf: the first slot
// already holding the item wins, otherwise the first empty slot.
func (s *Service) locateSlot(shelfID, itemID string) (level, position int, found bool) {
	grid, ok := s.store.Shelf(shelfID)
	if !ok {
		return 0, 0, false
	}
	emptyLevel, emptyPosition, haveEmpty := 0, 0, false
	for l, row := range grid {
		for p, slot := range row {
			if slot == itemID {
				return l, p, true
			}
			if slot == store.EmptySlot && !haveEmpty {
				emptyLevel, emptyPosition, haveEmpty = l, p, true
			}
		}
	}
	return emptyLevel, emptyPosition, haveEmpty
}

// fail records an error attribute on the span and returns the structured
// error payload.
func (s *Service) fail(span trace.Span, format string, a ...interface{}) ErrorResult {
	message := fmt.Sprintf(format, a...)
	span.SetAttributes(attribute.String("error", message))
	return ErrorResult{Error: message}
}

// renderLayout draws a shelf grid as a markdown-style table: one row per
// shelf level, one column per position, item names truncated and padded to a
// fixed cell width, vacant slots shown as Empty.
func (s *Service) renderLayout(shelfID string, grid [][]string) string {
	const cellWidth = 20

	var b strings.Builder
	fmt.Fprintf(&b, "### Layout for Shelf %s\n\n", shelfID)

	columns := 0
	if len(grid) > 0 {
		columns = len(grid[0])
	}
	b.WriteString("| Position |")
	for p := 0; p < columns; p++ {
		fmt.Fprintf(&b, " %d |", p+1)
	}
	b.WriteString("\n|----------|")
	for p := 0; p < columns; p++ {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for l, row := range grid {
		cells := make([]string, 0, len(row))
		for _, slot := range row {
			label := "Empty"
			if slot != store.EmptySlot {
				label = slot
				if it, ok := s.store.Item(slot); ok {
					label = it.Name
				}
			}
			if len(label) > cellWidth {
				label = label[:cellWidth]
			}
			cells = append(cells, fmt.Sprintf("%-*s", cellWidth, label))
		}
		fmt.Fprintf(&b, "| Shelf %d | %s |\n", l+1, strings.Join(cells, " | "))
	}

	return strings.TrimSpace(b.String())
}
