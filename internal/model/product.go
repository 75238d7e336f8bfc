package model

// Product categories form a fixed set; the catalog rejects anything else at seed time.
const (
	CategoryComputers   = "computers"
	CategoryLaptops     = "laptops"
	CategoryPeripherals = "peripherals"
)

// Product represents a catalog product. Price is a decimal string to avoid
// floating-point drift between the store and API responses.
type Product struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	Image          string   `json:"image"`
	Category       string   `json:"category"`
	Specifications []string `json:"specifications"`
	InStock        bool     `json:"inStock"`
}

// ValidCategory reports whether c is one of the known product categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryComputers, CategoryLaptops, CategoryPeripherals:
		return true
	}
	return false
}
