package inventory

// Argument and result types for the store management tool functions.
// Argument structs carry jsonschema tags so the tool registry can generate
// input schemas for the agent; result structs define the JSON payloads the
// agent receives back.

import "github.com/aymenfurter/store-agent/pkg/store"

// --- Argument Structs ---

// CheckStockArgs represents arguments for the check_item_stock tool.
type CheckStockArgs struct {
	ItemID string `json:"item_id" jsonschema:"required,description=The item ID (SKU) to check (e.g. SKU001)."`
}

// FindLocationArgs represents arguments for the find_item_location tool.
type FindLocationArgs struct {
	ItemID string `json:"item_id" jsonschema:"required,description=The item ID (SKU) whose shelf location is needed."`
}

// ShelfLayoutArgs represents arguments for the get_shelf_layout tool.
type ShelfLayoutArgs struct {
	ShelfID string `json:"shelf_id" jsonschema:"required,description=The shelf unit ID (e.g. A1 or B2)."`
}

// StorageRequestArgs represents arguments for the request_item_from_storage tool.
type StorageRequestArgs struct {
	ItemID           string `json:"item_id" jsonschema:"required,description=The item ID (SKU) to bring from the back."`
	Quantity         int    `json:"quantity" jsonschema:"required,description=How many units to deliver. Must be positive."`
	TargetLocationID string `json:"target_location_id" jsonschema:"required,description=The shelf ID the delivery should go to."`
}

// DeliveryStatusArgs represents arguments for the check_delivery_status tool.
type DeliveryStatusArgs struct {
	RequestID string `json:"request_id" jsonschema:"required,description=The storage request ID returned by request_item_from_storage."`
}

// RestockQueryArgs represents arguments for the get_items_needing_restock tool.
type RestockQueryArgs struct {
	Category      string `json:"category,omitempty" jsonschema:"description=Optional category filter (e.g. Dairy or Drinks)."`
	MinStockLevel int    `json:"min_stock_level,omitempty" jsonschema:"description=Items with stock strictly below this level are reported. Defaults to 5."`
}

// UpdateCountArgs represents arguments for the update_inventory_count tool.
type UpdateCountArgs struct {
	ItemID         string `json:"item_id" jsonschema:"required,description=The item ID (SKU) to adjust."`
	QuantityChange int    `json:"quantity_change" jsonschema:"required,description=Signed stock delta: positive to add and negative to remove."`
	Reason         string `json:"reason,omitempty" jsonschema:"description=Why the count changed. Defaults to Restock."`
}

// MarkRestockedArgs represents arguments for the mark_item_restocked tool.
type MarkRestockedArgs struct {
	ItemID        string `json:"item_id" jsonschema:"required,description=The item ID (SKU) that was placed on the shelf."`
	ShelfID       string `json:"shelf_id" jsonschema:"required,description=The shelf unit ID (e.g. A1)."`
	ShelfIndex    int    `json:"shelf_index" jsonschema:"required,description=Zero-based shelf level index (0 is the top shelf)."`
	PositionIndex int    `json:"position_index" jsonschema:"required,description=Zero-based position index within the shelf level."`
	Quantity      int    `json:"quantity" jsonschema:"required,description=How many units were added. Must be positive."`
}

// LogDamagedArgs represents arguments for the log_damaged_item tool.
type LogDamagedArgs struct {
	ItemID   string `json:"item_id" jsonschema:"required,description=The item ID (SKU) of the damaged goods."`
	Quantity int    `json:"quantity" jsonschema:"required,description=How many damaged units to remove from stock. Must be positive."`
	Notes    string `json:"notes,omitempty" jsonschema:"description=Optional free-form notes about the damage."`
}

// ImageRestockArgs represents arguments for the identify_and_restock_item_from_image tool.
type ImageRestockArgs struct {
	ImageData string `json:"image_data" jsonschema:"required,description=Simulated image scan payload. Pass the item ID (SKU) as the image data."`
	Quantity  int    `json:"quantity" jsonschema:"required,description=How many units were restocked. Must be positive."`
}

// --- Result Structs ---

// ErrorResult is the structured error payload every tool returns on a
// validation failure. Errors are data, not faults: the agent is expected to
// read the message and retry with corrected arguments.
type ErrorResult struct {
	Error string `json:"error"`
}

// StockResult is the check_item_stock success payload.
type StockResult struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Stock  int    `json:"stock"`
}

// LocationResult is the find_item_location success payload.
type LocationResult struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	LocationID string `json:"location_id"`
	Position   int    `json:"position"`
}

// LayoutResult is the get_shelf_layout success payload. LayoutVisual holds a
// rendered fixed-width table and is displayed verbatim in the chat.
type LayoutResult struct {
	ShelfID      string `json:"shelf_id"`
	LayoutVisual string `json:"layout_visual"`
}

// StorageRequestResult is the request_item_from_storage success payload.
type StorageRequestResult struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// DeliveryStatusResult is the check_delivery_status success payload.
type DeliveryStatusResult struct {
	RequestID string                `json:"request_id"`
	Status    string                `json:"status"`
	Details   *store.StorageRequest `json:"details"`
}

// LowStockItem is one row of a get_items_needing_restock report.
type LowStockItem struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	LocationID   string `json:"location_id"`
}

// RestockQueryResult is the get_items_needing_restock success payload.
type RestockQueryResult struct {
	LowStockItems []LowStockItem `json:"low_stock_items"`
	Count         int            `json:"count"`
}

// UpdateCountResult is the update_inventory_count success payload.
type UpdateCountResult struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Change        int    `json:"change"`
	Reason        string `json:"reason"`
}

// MarkRestockedResult is the mark_item_restocked success payload. It embeds
// the inventory update that the slot write triggered.
type MarkRestockedResult struct {
	Message         string            `json:"message"`
	InventoryUpdate UpdateCountResult `json:"inventory_update"`
}

// DamageResult is the log_damaged_item success payload.
type DamageResult struct {
	Message         string            `json:"message"`
	InventoryUpdate UpdateCountResult `json:"inventory_update"`
}

// OverviewResult is the get_store_layout_overview success payload.
type OverviewResult struct {
	ShelfIDs []string `json:"shelf_ids"`
	Count    int      `json:"count"`
}

// ImageRestockResult is the identify_and_restock_item_from_image success
// payload.
type ImageRestockResult struct {
	Message        string              `json:"message"`
	RestockDetails MarkRestockedResult `json:"restock_details"`
}
