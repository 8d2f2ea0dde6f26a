package store

// NewWithFixtures returns a Store pre-provisioned with the demo inventory:
// five product categories across shelves A1-A2, B1-B2, C1-C3, P1-P2, and
// H1-H2, each shelf a grid of 4 levels by 3 positions.
func NewWithFixtures() *Store {
	s := New()

	items := []Item{
		// Breakfast aisle
		{ID: "SKU001", Name: "Contoso Cereal", Stock: 15, Category: "Breakfast", LocationID: "A1", Position: 1},
		{ID: "SKU002", Name: "Northwind Oatmeal", Stock: 12, Category: "Breakfast", LocationID: "A1", Position: 2},
		{ID: "SKU003", Name: "Adventure Granola", Stock: 8, Category: "Breakfast", LocationID: "A2", Position: 0},
		{ID: "SKU004", Name: "Fabrikam Pancake Mix", Stock: 10, Category: "Breakfast", LocationID: "A2", Position: 1},

		// Dairy section
		{ID: "SKU010", Name: "Fabrikam Milk (1L)", Stock: 20, Category: "Dairy", LocationID: "B1", Position: 0},
		{ID: "SKU011", Name: "Contoso Yogurt", Stock: 18, Category: "Dairy", LocationID: "B1", Position: 1},
		{ID: "SKU012", Name: "Adventure Cheese", Stock: 15, Category: "Dairy", LocationID: "B2", Position: 0},
		{ID: "SKU013", Name: "Northwind Butter", Stock: 12, Category: "Dairy", LocationID: "B2", Position: 1},

		// Beverages
		{ID: "SKU020", Name: "Northwind Cola (Can)", Stock: 48, Category: "Drinks", LocationID: "C1", Position: 0},
		{ID: "SKU021", Name: "Adventure Water (1L)", Stock: 36, Category: "Drinks", LocationID: "C1", Position: 1},
		{ID: "SKU022", Name: "Fabrikam Juice (2L)", Stock: 15, Category: "Drinks", LocationID: "C2", Position: 0},
		{ID: "SKU023", Name: "Contoso Energy Drink", Stock: 24, Category: "Drinks", LocationID: "C2", Position: 1},

		// Produce section
		{ID: "SKU030", Name: "Adatum Apples (Bag)", Stock: 20, Category: "Produce", LocationID: "P1", Position: 0},
		{ID: "SKU031", Name: "Fabrikam Bananas", Stock: 25, Category: "Produce", LocationID: "P1", Position: 1},
		{ID: "SKU032", Name: "Contoso Oranges (Net)", Stock: 15, Category: "Produce", LocationID: "P2", Position: 0},
		{ID: "SKU033", Name: "Northwind Carrots", Stock: 18, Category: "Produce", LocationID: "P2", Position: 1},

		// Household
		{ID: "SKU040", Name: "Woodgrove Cleaning Spray", Stock: 14, Category: "Household", LocationID: "H1", Position: 0},
		{ID: "SKU041", Name: "Adventure Paper Towels", Stock: 22, Category: "Household", LocationID: "H1", Position: 1},
		{ID: "SKU042", Name: "Contoso Dish Soap", Stock: 16, Category: "Household", LocationID: "H2", Position: 0},
		{ID: "SKU043", Name: "Fabrikam Laundry Det.", Stock: 10, Category: "Household", LocationID: "H2", Position: 1},
	}
	for _, it := range items {
		s.AddItem(it)
	}

	e := EmptySlot
	shelves := map[string][][]string{
		"A1": {
			{"SKU001", "SKU001", "SKU002"}, // top shelf
			{"SKU001", "SKU002", "SKU002"}, // eye level
			{"SKU001", "SKU002", e},        // waist level
			{e, e, e},                      // bottom shelf
		},
		"A2": {
			{"SKU003", "SKU003", "SKU004"},
			{"SKU003", "SKU004", "SKU004"},
			{"SKU004", e, e},
			{e, e, e},
		},
		"B1": {
			{"SKU010", "SKU010", "SKU011"},
			{"SKU010", "SKU011", "SKU011"},
			{"SKU010", "SKU011", e},
			{"SKU010", e, e}, // bottom shelf cooler
		},
		"B2": {
			{"SKU012", "SKU012", "SKU013"},
			{"SKU012", "SKU013", "SKU013"},
			{"SKU012", "SKU013", e},
			{e, e, e},
		},
		"C1": {
			{"SKU020", "SKU020", "SKU021"},
			{"SKU020", "SKU021", "SKU021"},
			{"SKU020", "SKU021", e},
			{"SKU020", "SKU021", e}, // heavy items on bottom
		},
		"C2": {
			{"SKU022", "SKU022", "SKU023"},
			{"SKU022", "SKU023", "SKU023"},
			{"SKU022", "SKU023", e},
			{e, e, e},
		},
		"C3": {
			{"SKU022", "SKU022", "SKU023"},
			{"SKU022", "SKU023", "SKU023"},
			{"SKU022", "SKU023", e},
			{e, e, e},
		},
		"P1": {
			{"SKU030", "SKU030", "SKU031"},
			{"SKU030", "SKU031", "SKU031"},
			{"SKU030", "SKU031", e},
			{e, e, e},
		},
		"P2": {
			{"SKU032", "SKU032", "SKU033"},
			{"SKU032", "SKU033", "SKU033"},
			{"SKU032", "SKU033", e},
			{e, e, e},
		},
		"H1": {
			{"SKU040", "SKU040", "SKU041"},
			{"SKU040", "SKU041", "SKU041"},
			{"SKU040", "SKU041", e},
			{"SKU040", e, e}, // heavy cleaning supplies on bottom
		},
		"H2": {
			{"SKU042", "SKU042", "SKU043"},
			{"SKU042", "SKU043", "SKU043"},
			{"SKU042", "SKU043", e},
			{"SKU042", e, e}, // heavy detergents on bottom
		},
	}
	for id, grid := range shelves {
		s.AddShelf(id, grid)
	}

	return s
}
