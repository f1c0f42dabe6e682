package service

import (
	"sort"
	"strings"

	"orbitpaws/internal/app/shop/entity"
)

// Recompute - чистая функция пересчета результатов витрины
// Последовательные сужающие проходы (каждый - чистый subset-фильтр),
// затем стабильная сортировка; ничьи разрешаются каталожным порядком
func Recompute(products []entity.Product, filters entity.FiltersState, query string, sortKey entity.SortKey) []entity.Product {
	list := FilterProducts(products, filters, query)
	return SortProducts(list, sortKey)
}

// FilterProducts применяет все активные предикаты фильтров к каталогу
func FilterProducts(products []entity.Product, filters entity.FiltersState, query string) []entity.Product {
	list := products

	// 1. Категория: товары "both" проходят при любом выборе
	if len(filters.Categories) > 0 {
		list = keep(list, func(p entity.Product) bool {
			if p.Category == entity.PetCategoryBoth {
				return true
			}
			return containsCategory(filters.Categories, p.Category)
		})
	}

	// 2. Тип
	if len(filters.Types) > 0 {
		list = keep(list, func(p entity.Product) bool {
			return containsType(filters.Types, p.Type)
		})
	}

	// 3. Цена: применяется всегда, границы включительно
	list = keep(list, func(p entity.Product) bool {
		return p.Price >= filters.Price[0] && p.Price <= filters.Price[1]
	})

	// 4. Минимальный рейтинг
	if filters.MinRating != nil {
		min := *filters.MinRating
		list = keep(list, func(p entity.Product) bool {
			return p.Rating >= min
		})
	}

	// 5. Только одобренные ветеринарами
	if filters.VetApprovedOnly {
		list = keep(list, func(p entity.Product) bool {
			return p.VetApproved
		})
	}

	// 6. Поиск: подстрока в "name + tags" без учета регистра
	if needle := strings.ToLower(strings.TrimSpace(query)); needle != "" {
		list = keep(list, func(p entity.Product) bool {
			haystack := strings.ToLower(p.Name + " " + strings.Join(p.Tags, " "))
			return strings.Contains(haystack, needle)
		})
	}

	return list
}

// SortProducts возвращает отсортированную копию списка
// Сортировка стабильна для детерминизма при равных ключах
func SortProducts(products []entity.Product, key entity.SortKey) []entity.Product {
	out := make([]entity.Product, len(products))
	copy(out, products)

	switch key {
	case entity.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case entity.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case entity.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		// popular - порядок по умолчанию
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	}

	return out
}

func keep(products []entity.Product, pred func(entity.Product) bool) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func containsCategory(list []entity.PetCategory, c entity.PetCategory) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

func containsType(list []entity.ProductType, t entity.ProductType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
