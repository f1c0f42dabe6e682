package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"orbitpaws/internal/app/shop/catalog"
	"orbitpaws/internal/app/shop/entity"
)

// State представляет состояние витрины, проецируемое в query string
// URL - всегда проекция, никогда не владелец состояния
type State struct {
	Query   string
	Sort    entity.SortKey
	View    entity.ViewMode
	Filters entity.FiltersState
}

// shopParams - распознаваемые ключи query string витрины
// Наличие любого из них означает, что URL авторитетен при первой загрузке
var shopParams = []string{"q", "sort", "view", "c", "t", "p", "r", "v"}

// HasShopParams сообщает, несет ли query string явное состояние витрины
func HasShopParams(values url.Values) bool {
	for _, key := range shopParams {
		if values.Has(key) {
			return true
		}
	}
	return false
}

// Encode преобразует состояние витрины в query string
// sort и view пишутся всегда (URL самоописываем), остальные ключи
// опускаются при дефолтных значениях
func Encode(s State, bounds catalog.Bounds) url.Values {
	values := url.Values{}

	if q := strings.TrimSpace(s.Query); q != "" {
		values.Set("q", q)
	}

	values.Set("sort", string(s.Sort))
	values.Set("view", string(s.View))

	if len(s.Filters.Categories) > 0 {
		values.Set("c", joinCategories(s.Filters.Categories))
	}
	if len(s.Filters.Types) > 0 {
		values.Set("t", joinTypes(s.Filters.Types))
	}

	if s.Filters.Price[0] != bounds.Min || s.Filters.Price[1] != bounds.Max {
		values.Set("p", formatNumber(s.Filters.Price[0])+"-"+formatNumber(s.Filters.Price[1]))
	}

	if s.Filters.MinRating != nil {
		values.Set("r", formatNumber(*s.Filters.MinRating))
	}

	if s.Filters.VetApprovedOnly {
		values.Set("v", "1")
	}

	return values
}

// Decode восстанавливает состояние витрины из query string
// Полная функция: никогда не возвращает ошибку, непарсящиеся поля
// деградируют к дефолтам по отдельности. Второе значение - имена
// деградировавших полей (для логирования и метрик)
func Decode(values url.Values, bounds catalog.Bounds) (State, []string) {
	var degraded []string

	s := State{
		Query: values.Get("q"),
		Sort:  entity.SortPopular,
		View:  entity.ViewGrid,
		Filters: entity.FiltersState{
			Categories: nil,
			Types:      nil,
			Price:      [2]float64{bounds.Min, bounds.Max},
			MinRating:  nil,
		},
	}

	if raw := values.Get("sort"); raw != "" {
		if sort, ok := parseSort(raw); ok {
			s.Sort = sort
		} else {
			degraded = append(degraded, "sort")
		}
	}

	if raw := values.Get("view"); raw != "" {
		if view, ok := parseView(raw); ok {
			s.View = view
		} else {
			degraded = append(degraded, "view")
		}
	}

	s.Filters.Categories = parseCategories(splitCSV(values.Get("c")))
	s.Filters.Types = parseTypes(splitCSV(values.Get("t")))

	// p принимается только при наличии разделителя и двух валидных чисел
	if raw := values.Get("p"); raw != "" {
		min, max, ok := parsePriceRange(raw)
		if ok {
			s.Filters.Price = [2]float64{min, max}
		} else {
			degraded = append(degraded, "p")
		}
	}

	if raw := values.Get("r"); raw != "" {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil {
			s.Filters.MinRating = &rating
		} else {
			degraded = append(degraded, "r")
		}
	}

	s.Filters.VetApprovedOnly = values.Get("v") == "1"

	return Normalize(s, bounds), degraded
}

// Normalize приводит состояние к каноническому виду:
// обрезает поисковый запрос, дедуплицирует списки, клампит цены и рейтинг.
// Закон кодека: Decode(Encode(S)) == Normalize(S)
func Normalize(s State, bounds catalog.Bounds) State {
	out := s
	out.Query = strings.TrimSpace(s.Query)

	if _, ok := parseSort(string(s.Sort)); !ok {
		out.Sort = entity.SortPopular
	}
	if _, ok := parseView(string(s.View)); !ok {
		out.View = entity.ViewGrid
	}

	out.Filters.Categories = dedupeCategories(s.Filters.Categories)
	out.Filters.Types = dedupeTypes(s.Filters.Types)

	min := clamp(s.Filters.Price[0], bounds.Min, bounds.Max)
	max := clamp(s.Filters.Price[1], bounds.Min, bounds.Max)
	if min > max {
		min, max = max, min
	}
	out.Filters.Price = [2]float64{min, max}

	if s.Filters.MinRating != nil {
		rating := clamp(*s.Filters.MinRating, 0, 5)
		out.Filters.MinRating = &rating
	}

	return out
}

func parseSort(raw string) (entity.SortKey, bool) {
	switch entity.SortKey(raw) {
	case entity.SortPopular, entity.SortRating, entity.SortPriceAsc, entity.SortPriceDesc:
		return entity.SortKey(raw), true
	}
	return "", false
}

func parseView(raw string) (entity.ViewMode, bool) {
	switch entity.ViewMode(raw) {
	case entity.ViewGrid, entity.ViewList:
		return entity.ViewMode(raw), true
	}
	return "", false
}

func parsePriceRange(raw string) (float64, float64, bool) {
	if !strings.Contains(raw, "-") {
		return 0, 0, false
	}
	parts := strings.SplitN(raw, "-", 2)
	min, errMin := strconv.ParseFloat(parts[0], 64)
	max, errMax := strconv.ParseFloat(parts[1], 64)
	if errMin != nil || errMax != nil {
		return 0, 0, false
	}
	return min, max, true
}

func parseCategories(raw []string) []entity.PetCategory {
	var out []entity.PetCategory
	for _, v := range raw {
		c := entity.PetCategory(v)
		if c == entity.PetCategoryCat || c == entity.PetCategoryDog {
			out = append(out, c)
		}
	}
	return out
}

func parseTypes(raw []string) []entity.ProductType {
	var out []entity.ProductType
	for _, v := range raw {
		t := entity.ProductType(v)
		if t == entity.ProductTypeFood || t == entity.ProductTypeToy || t == entity.ProductTypeGrooming {
			out = append(out, t)
		}
	}
	return out
}

func dedupeCategories(in []entity.PetCategory) []entity.PetCategory {
	var out []entity.PetCategory
	seen := make(map[entity.PetCategory]bool, len(in))
	for _, c := range in {
		if c != entity.PetCategoryCat && c != entity.PetCategoryDog {
			continue
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func dedupeTypes(in []entity.ProductType) []entity.ProductType {
	var out []entity.ProductType
	seen := make(map[entity.ProductType]bool, len(in))
	for _, t := range in {
		switch t {
		case entity.ProductTypeFood, entity.ProductTypeToy, entity.ProductTypeGrooming:
		default:
			continue
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func joinCategories(in []entity.PetCategory) string {
	parts := make([]string, len(in))
	for i, c := range in {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

func joinTypes(in []entity.ProductType) string {
	parts := make([]string, len(in))
	for i, t := range in {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
