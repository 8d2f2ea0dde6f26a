package chat

// Display titles for the tool bubbles, keyed by function name. Unrecognized
// names fall back to a generic wrench icon plus the raw name.
var toolTitles = map[string]string{
	"check_item_stock":                     "🔍 Checking Stock",
	"find_item_location":                   "📍 Finding Location",
	"get_shelf_layout":                     "🗄️ Viewing Shelf Layout",
	"request_item_from_storage":            "📦 Requesting from Storage",
	"check_delivery_status":                "🚚 Checking Delivery",
	"get_items_needing_restock":            "⚠️ Finding Low Stock",
	"update_inventory_count":               "🔢 Updating Inventory",
	"mark_item_restocked":                  "✅ Marking Restocked",
	"log_damaged_item":                     "🚫 Logging Damage",
	"get_store_layout_overview":            "🏪 Viewing Store Layout",
	"identify_and_restock_item_from_image": "📷 'Scanning' Item (Simulated)",
	"web_search":                           "🔎 Searching Web Sources",
}

var statusIcons = map[BubbleStatus]string{
	BubblePending: "⏳",
	BubbleDone:    "✅",
	BubbleError:   "❌",
}

// bubbleTitle composes the status icon and the human label for a function
// name into a bubble title.
func bubbleTitle(name string, status BubbleStatus) string {
	label, ok := toolTitles[name]
	if !ok {
		label = "🔧 " + name
	}
	icon := statusIcons[status]
	if icon == "" {
		return label
	}
	return icon + " " + label
}

// shortcuts maps fixed example phrases to the fuller natural-language
// prompts actually submitted to the agent. Pure presentation sugar.
var shortcuts = map[string]string{
	"Request 10 SKU004 for C3":                      "I need 10 units of SKU004 delivered to shelf C3.",
	"Mark 5 SKU002 restocked on A1, shelf 1, pos 2": "I just put 5 units of SKU002 on shelf A1, shelf 1, position 2.",
	"Log 1 damaged SKU005":                          "I found 1 damaged unit of SKU005.",
	"'Scan' SKU001 and restock 5 units":             "I scanned SKU001 with my device, I restocked 5 units.",
}

// Shortcuts lists the example phrases offered by the UI.
func Shortcuts() []string {
	return []string{
		"Check stock for SKU001",
		"Where does SKU003 go?",
		"Show layout for shelf C3",
		"Request 10 SKU004 for C3",
		"Which items are low on stock?",
		"Mark 5 SKU002 restocked on A1, shelf 1, pos 2",
		"Log 1 damaged SKU005",
		"'Scan' SKU001 and restock 5 units",
	}
}

// ExpandShortcut rewrites a known example phrase into its full prompt and
// returns anything else unchanged.
func ExpandShortcut(input string) string {
	if full, ok := shortcuts[input]; ok {
		return full
	}
	return input
}
