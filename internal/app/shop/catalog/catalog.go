package catalog

import (
	"math"
	"sort"

	"orbitpaws/internal/app/shop/entity"
)

// Bounds представляет глобальные границы цен каталога
// Выводятся как floor(min(prices))..ceil(max(prices))
type Bounds struct {
	Min float64
	Max float64
}

// Catalog представляет неизменяемую упорядоченную последовательность товаров
// Фиксируется при старте процесса; доступ только на чтение, полным сканированием
type Catalog struct {
	products []entity.Product
	byID     map[string]int
	bounds   Bounds
}

// New создает каталог из упорядоченного списка товаров
// Порядок сохраняется: он служит разрешением ничьих при сортировке
func New(products []entity.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.byID[p.ID] = i
	}
	c.bounds = deriveBounds(products)
	return c
}

func deriveBounds(products []entity.Product) Bounds {
	if len(products) == 0 {
		return Bounds{}
	}
	min, max := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return Bounds{Min: math.Floor(min), Max: math.Ceil(max)}
}

// All возвращает все товары в каталожном порядке
// Возвращается копия среза: каталог не мутирует
func (c *Catalog) All() []entity.Product {
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID возвращает товар по идентификатору
// Второе значение false, если товара нет в каталоге
func (c *Catalog) ByID(id string) (entity.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return entity.Product{}, false
	}
	return c.products[i], true
}

// Len возвращает количество товаров в каталоге
func (c *Catalog) Len() int {
	return len(c.products)
}

// Bounds возвращает глобальные границы цен каталога
func (c *Catalog) Bounds() Bounds {
	return c.bounds
}

// Featured возвращает top-n товаров по популярности
func (c *Catalog) Featured(n int) []entity.Product {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Popularity > out[j].Popularity
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}
