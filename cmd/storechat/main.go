// Command storechat runs the store restocking assistant: a terminal chat
// client backed by the Anthropic API and a set of inventory tool functions
// over a simulated store.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/aymenfurter/store-agent/agentlink"
	"github.com/aymenfurter/store-agent/chat"
	"github.com/aymenfurter/store-agent/pkg/store"
	"github.com/aymenfurter/store-agent/pkg/tools/inventory"
	"github.com/aymenfurter/store-agent/toolbox"
	"github.com/aymenfurter/store-agent/tracing"
	"github.com/aymenfurter/store-agent/ui"
)

const instructions = `You are a helpful Store Management assistant for front-of-store staff focused on restocking. Follow these rules:

1.  **Stock Checks:** If the user asks about stock levels, use check_item_stock with the item ID (SKU).
2.  **Item Location:** If the user asks where an item goes, use find_item_location with the item ID.
3.  **Shelf Layout:** If the user asks what's on a specific shelf (shelf unit), use get_shelf_layout with the shelf ID (e.g., "A1", "B2"). Display the visual layout provided in the response.
4.  **Request from Storage:** If the user needs items brought from the back, use request_item_from_storage. You need the item ID, quantity, and target shelf ID.
5.  **Delivery Status:** To check on a storage request, use check_delivery_status with the request ID.
6.  **Low Stock:** To find items that need restocking, use get_items_needing_restock. You can filter by category or use the default minimum stock level.
7.  **Manual Inventory Update:** If stock needs adjusting manually (e.g., cycle count), use update_inventory_count. Specify the item ID and the *change* in quantity (positive to add, negative to remove) and a reason.
8.  **Marking Restock:** When an item has been placed on the shelf, use mark_item_restocked. You need item ID, shelf ID, shelf index (0-based), position index (0-based), and quantity added. This also updates inventory.
9.  **Damaged Goods:** To report damaged items, use log_damaged_item with item ID and quantity. This removes stock. Provide notes if possible.
10. **Store Overview:** For a list of all shelfs, use get_store_layout_overview.
11. **Vision Simulation (Restock):** If the user wants to mark an item restocked using an 'image' (provide the item ID for simulation), use identify_and_restock_item_from_image. You need the item ID (as image_data) and quantity restocked.
12. **Clarification:** If unsure about an item ID, shelf ID, or specific location, ask the user for clarification.
13. **Be Clear:** Provide concise and clear responses, including results from function calls (like stock counts, locations, or confirmation messages). Extract key information from the JSON results.

Print out markdown tables whenever you are asked to display a shelf.`

func main() {
	// Load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		fmt.Println("Error: ANTHROPIC_API_KEY environment variable is required.")
		fmt.Println("Please create a .env file with ANTHROPIC_API_KEY=your_key")
		os.Exit(1)
	}

	ctx := context.Background()
	tracer := tracing.Disabled()
	if os.Getenv("STORE_TRACING") != "off" {
		// Spans go to a file so the export does not fight the chat
		// window for the terminal.
		traceFile, err := os.OpenFile(traceFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("WARN: tracing disabled: %v", err)
		} else {
			defer traceFile.Close()
			t, shutdown, initErr := tracing.Init(ctx, "store-restock-agent", traceFile)
			if initErr != nil {
				log.Printf("WARN: tracing disabled: %v", initErr)
			} else {
				tracer = t
				defer func() {
					if err := shutdown(ctx); err != nil {
						log.Printf("WARN: failed to flush spans: %v", err)
					}
				}()
			}
		}
	}

	inv := store.NewWithFixtures()
	service := inventory.NewService(inv, tracer)
	registry := newRegistry(service)

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	agent := agentlink.NewSession(client, registry, agentlink.Config{
		Model:  os.Getenv("MODEL_NAME"),
		System: instructions,
	})
	session := chat.NewSession(agent, tracer)

	program := tea.NewProgram(ui.New(session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("chat window failed: %v", err)
	}
}

// traceFilePath is where span JSON accumulates, overridable via
// STORE_TRACE_FILE.
func traceFilePath() string {
	if path := os.Getenv("STORE_TRACE_FILE"); path != "" {
		return path
	}
	return "storechat-traces.json"
}

// newRegistry wires every inventory operation into the tool registry
// offered to the agent.
func newRegistry(service *inventory.Service) *toolbox.Registry {
	return toolbox.NewRegistry("store_tools",
		toolbox.NewTool("check_item_stock",
			"Checks the current stock level for an item by its ID (SKU).",
			service.CheckItemStock),
		toolbox.NewTool("find_item_location",
			"Finds the assigned shelf location for an item by its ID.",
			service.FindItemLocation),
		toolbox.NewTool("get_shelf_layout",
			"Returns the visual layout of a shelf unit, e.g. A1 or B2.",
			service.GetShelfLayout),
		toolbox.NewTool("request_item_from_storage",
			"Requests a quantity of an item to be brought from back storage to a target shelf.",
			service.RequestItemFromStorage),
		toolbox.NewTool("check_delivery_status",
			"Checks the status of a storage request by its request ID.",
			service.CheckDeliveryStatus),
		toolbox.NewTool("get_items_needing_restock",
			"Lists items at or below a minimum stock level, optionally filtered by category.",
			service.GetItemsNeedingRestock),
		toolbox.NewTool("update_inventory_count",
			"Adjusts an item's inventory count by a positive or negative change, with a reason.",
			service.UpdateInventoryCount),
		toolbox.NewTool("mark_item_restocked",
			"Records that an item was placed on a shelf position and updates its inventory.",
			service.MarkItemRestocked),
		toolbox.NewTool("log_damaged_item",
			"Logs damaged units of an item and removes them from stock.",
			service.LogDamagedItem),
		toolbox.NewTool("get_store_layout_overview",
			"Lists all shelf units in the store.",
			service.GetStoreLayoutOverview),
		toolbox.NewTool("identify_and_restock_item_from_image",
			"Simulates identifying an item from an image and restocks it at its shelf position.",
			service.IdentifyAndRestockItemFromImage),
	)
}
