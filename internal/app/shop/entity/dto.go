package entity

type SetQueryRequest struct {
	Query string `json:"query" validate:"max=200"`
}

type SetSortRequest struct {
	Sort SortKey `json:"sort" validate:"required,oneof=popular rating price-asc price-desc"`
}

type SetViewRequest struct {
	View ViewMode `json:"view" validate:"required,oneof=grid list"`
}

type SetFiltersRequest struct {
	Categories      []PetCategory `json:"categories" validate:"dive,oneof=cat dog"`
	Types           []ProductType `json:"types" validate:"dive,oneof=food toy grooming"`
	PriceMin        float64       `json:"price_min"`
	PriceMax        float64       `json:"price_max"`
	MinRating       *float64      `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
	VetApprovedOnly bool          `json:"vet_approved_only"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Qty       int    `json:"qty"` // Значения меньше 1 поднимаются до 1
}

type SetCartQtyRequest struct {
	Qty int `json:"qty"` // Клампится снизу до 1
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SessionResponse возвращается при создании сессии витрины
type SessionResponse struct {
	SessionID string       `json:"session_id"`
	Phase     SessionPhase `json:"phase"`
	Snapshot  ShopSnapshot `json:"snapshot"`
}

// ShopSnapshot - полная проекция состояния витрины для слоя представления
type ShopSnapshot struct {
	Phase             SessionPhase `json:"phase"`
	Query             string       `json:"query"`
	Sort              SortKey      `json:"sort"`
	View              ViewMode     `json:"view"`
	Filters           FiltersState `json:"filters"`
	ActiveFilterCount int          `json:"active_filter_count"`
	Chips             []Chip       `json:"chips"`
	Results           []Product    `json:"results"`
	Total             int          `json:"total"`
	IsLoading         bool         `json:"is_loading"`
	CanonicalQuery    string       `json:"canonical_query"` // Канонический query string для адресной строки
}

// CartResponse - проекция корзины для слоя представления
type CartResponse struct {
	Hydrated   bool               `json:"hydrated"`
	Lines      []CartLine         `json:"lines"`
	Resolved   []ResolvedCartLine `json:"resolved"`
	TotalItems int                `json:"total_items"`
	Subtotal   float64            `json:"subtotal"`
	Shipping   float64            `json:"shipping"`
	Total      float64            `json:"total"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
