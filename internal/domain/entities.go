package domain

// Flat records with no nested-structure policy beyond pass-through.

type Brand struct {
	ID          string `json:"id"`
	AccountID   string `json:"accountId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

type City struct {
	ID       string `json:"id"`
	BrandID  string `json:"brandId"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type Point struct {
	ID         string   `json:"id"`
	BrandID    string   `json:"brandId"`
	CityID     string   `json:"cityId"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	IsActive   bool     `json:"isActive"`
	OrderTypes []string `json:"orderTypes"`
}

type Order struct {
	ID        string      `json:"id"`
	BrandID   string      `json:"brandId"`
	PointID   string      `json:"pointId"`
	AccountID string      `json:"accountId"`
	OrderType string      `json:"orderType"`
	Status    string      `json:"status"`
	Comment   string      `json:"comment"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt string      `json:"createdAt"`
}

type OrderItem struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price,omitempty"`
}

type User struct {
	ID         string `json:"id"`
	AccountID  string `json:"accountId"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Menu is the aggregate served for one (brandId, pointId, orderType) context.
// The cache merges partial menu responses for the same context by shallow
// field union.
type Menu struct {
	BrandID    string     `json:"brandId"`
	PointID    string     `json:"pointId"`
	OrderType  string     `json:"orderType"`
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}
