package items

// Category agrupa los ítems del catálogo.
// @Enum food, medicine, toy
type Category string

const (
	CategoryFood     Category = "food"
	CategoryMedicine Category = "medicine"
	CategoryToy      Category = "toy"
)

// Item es data de referencia del catálogo; el precio lo usa el flujo de
// compra (externo a este core), acá viaja solo para mostrarlo.
type Item struct {
	ID       string
	Name     string
	Category Category
	Price    int
}

// InventoryEntry es la cantidad de un ítem que posee una mascota.
type InventoryEntry struct {
	PetID    string
	ItemName string
	Quantity int
}

// DefaultCatalog es el catálogo con el que arranca el bot; los stores lo
// siembran si la tabla está vacía.
func DefaultCatalog() []Item {
	return []Item{
		{ID: "item-basic-food", Name: "basic_food", Category: CategoryFood, Price: 0},
		{ID: "item-premium-food", Name: "premium_food", Category: CategoryFood, Price: 25},
		{ID: "item-medicine", Name: "medicine", Category: CategoryMedicine, Price: 40},
		{ID: "item-toy", Name: "toy", Category: CategoryToy, Price: 30},
	}
}

// StarterKit es lo que recibe cada cría nueva (1 medicina, 1 juguete),
// igual que el alta original del bot.
func StarterKit() map[string]int {
	return map[string]int{
		"medicine": 1,
		"toy":      1,
	}
}
