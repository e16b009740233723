package pagination

import (
	"strconv"
	"strings"
)

// PageSize es fijo para todos los listados.
const PageSize = 5

// Page es una ventana de resultados ya recortada.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"number"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
	PageSize   int `json:"page_size"`
}

func (p Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool     { return p.Number < p.TotalPages }

// ParseNumber interpreta ?page=. Cualquier cosa no numérica es la página 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// Paginate corta items en páginas de size. Un número fuera de rango se ajusta
// a la primera o a la última página; un conjunto vacío es la página 1 de 1.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = PageSize
	}

	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	window := make([]T, 0, end-start)
	window = append(window, items[start:end]...)

	return Page[T]{
		Items:      window,
		Number:     number,
		TotalPages: pages,
		TotalItems: total,
		PageSize:   size,
	}
}
