package chat

// Intent is the closed set of actions the chat endpoint can route to.
type Intent string

const (
	IntentViewFeaturedProducts   Intent = "view_featured_products"
	IntentViewCategories         Intent = "view_categories"
	IntentViewProductsInCategory Intent = "view_products_by_category"
	IntentAddToCart              Intent = "add_to_cart"
	IntentPlaceOrder             Intent = "place_order"
	IntentUnknown                Intent = "unknown"
)

// parseIntent maps a model-reported intent string onto the closed set.
func parseIntent(s string) Intent {
	switch Intent(s) {
	case IntentViewFeaturedProducts, IntentViewCategories, IntentViewProductsInCategory,
		IntentAddToCart, IntentPlaceOrder:
		return Intent(s)
	default:
		return IntentUnknown
	}
}

// ProductInfo carries whatever product entities the classifier extracted.
type ProductInfo struct {
	Name     string `json:"name,omitempty"`
	ID       string `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
}

// CartInfo carries the extracted cart action and quantity.
type CartInfo struct {
	Action   string `json:"action,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// Result is one classified utterance. It is ephemeral, produced per request.
type Result struct {
	Intent                Intent      `json:"intent"`
	Confidence            float64     `json:"confidence"`
	ProductInfo           ProductInfo `json:"product_info"`
	CartInfo              CartInfo    `json:"cart_info"`
	ExtractedRequirements string      `json:"extracted_requirements"`
}

// Request identifies the caller for a dispatched turn. UserID is empty for
// anonymous callers; handlers that mutate cart or orders answer with a
// login prompt in that case.
type Request struct {
	UserID string
	Input  string
}

// Response is what a handler returns for one chat turn.
type Response struct {
	Response              string      `json:"response"`
	Intent                Intent      `json:"intent"`
	Confidence            float64     `json:"confidence"`
	ProductInfo           ProductInfo `json:"product_info"`
	CartInfo              CartInfo    `json:"cart_info"`
	ExtractedRequirements string      `json:"extracted_requirements"`
}

// respond echoes the classification fields around a response text.
func respond(res Result, text string) Response {
	return Response{
		Response:              text,
		Intent:                res.Intent,
		Confidence:            res.Confidence,
		ProductInfo:           res.ProductInfo,
		CartInfo:              res.CartInfo,
		ExtractedRequirements: res.ExtractedRequirements,
	}
}
