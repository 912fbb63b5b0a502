package product

type ProductDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	FabricType  string  `json:"fabricType"`
	ImageURL    string  `json:"imageUrl"`
}

type ListProductsResponse struct {
	Products []ProductDTO `json:"products"`
}
