package domain

import "time"

type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Category    string
	FabricType  string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
