package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Product товар каталога с допустимыми форматами (например "500ml", "1L").
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Sizes     []string  `json:"sizes"`
	CreatedAt time.Time `json:"created_at"`
}

// HasSize сообщает, продается ли товар в указанном формате
func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}
