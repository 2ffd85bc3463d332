package chat

import "strings"

// Keyword sets for the deterministic fallback classifier. Tested in priority
// order; the first set containing a match wins.
var (
	featuredKeywords = []string{"nổi bật", "sản phẩm hot", "bán chạy", "đề xuất", "featured"}
	categoryKeywords = []string{"danh mục", "loại sản phẩm", "thể loại", "category"}
	cartKeywords     = []string{"giỏ hàng", "thêm vào giỏ", "add to cart", "mua"}
	orderKeywords    = []string{"đặt hàng", "thanh toán", "checkout", "order"}
)

// ClassifyByKeywords is the fallback strategy used whenever the remote model
// is unreachable or returns something unparseable. It never fails: inputs
// matching no keyword set come back as IntentUnknown with low confidence.
func ClassifyByKeywords(input string) Result {
	lower := strings.ToLower(input)
	res := Result{
		Intent:                IntentUnknown,
		Confidence:            0.3,
		ExtractedRequirements: input,
	}

	switch {
	case containsAny(lower, featuredKeywords):
		res.Intent = IntentViewFeaturedProducts
		res.Confidence = 0.8
	case containsAny(lower, categoryKeywords):
		res.Intent = IntentViewCategories
		res.Confidence = 0.8
	case containsAny(lower, cartKeywords):
		res.Intent = IntentAddToCart
		res.Confidence = 0.7
		res.CartInfo = CartInfo{Action: "add", Quantity: 1}
	case containsAny(lower, orderKeywords):
		res.Intent = IntentPlaceOrder
		res.Confidence = 0.8
	}
	return res
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
