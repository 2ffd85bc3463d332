package chat

import "testing"

func TestKeywordPriorityFeaturedWins(t *testing.T) {
	// Contains both a featured keyword and a category keyword; the
	// first-priority set must win.
	res := ClassifyByKeywords("xem sản phẩm nổi bật và danh mục")
	if res.Intent != IntentViewFeaturedProducts {
		t.Fatalf("expected %s, got %s", IntentViewFeaturedProducts, res.Intent)
	}
	if res.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", res.Confidence)
	}
}

func TestKeywordCategories(t *testing.T) {
	res := ClassifyByKeywords("Xem danh mục sản phẩm")
	if res.Intent != IntentViewCategories {
		t.Fatalf("expected %s, got %s", IntentViewCategories, res.Intent)
	}
	if res.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", res.Confidence)
	}
}

func TestKeywordCartDefaults(t *testing.T) {
	res := ClassifyByKeywords("Thêm iPhone vào giỏ hàng")
	if res.Intent != IntentAddToCart {
		t.Fatalf("expected %s, got %s", IntentAddToCart, res.Intent)
	}
	if res.Confidence != 0.7 {
		t.Fatalf("expected confidence 0.7, got %v", res.Confidence)
	}
	if res.CartInfo.Action != "add" || res.CartInfo.Quantity != 1 {
		t.Fatalf("expected default cart info add/1, got %+v", res.CartInfo)
	}
}

func TestKeywordOrder(t *testing.T) {
	res := ClassifyByKeywords("tôi muốn đặt hàng")
	if res.Intent != IntentPlaceOrder {
		t.Fatalf("expected %s, got %s", IntentPlaceOrder, res.Intent)
	}
	if res.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", res.Confidence)
	}
}

func TestKeywordUnknown(t *testing.T) {
	res := ClassifyByKeywords("thời tiết hôm nay thế nào")
	if res.Intent != IntentUnknown {
		t.Fatalf("expected %s, got %s", IntentUnknown, res.Intent)
	}
	if res.Confidence != 0.3 {
		t.Fatalf("expected confidence 0.3, got %v", res.Confidence)
	}
	if res.ExtractedRequirements != "thời tiết hôm nay thế nào" {
		t.Fatalf("expected raw input echoed, got %q", res.ExtractedRequirements)
	}
}

func TestKeywordConfidenceAlwaysInRange(t *testing.T) {
	inputs := []string{"", "mua", "đặt hàng ngay", "xyz", "giỏ hàng nổi bật"}
	for _, in := range inputs {
		res := ClassifyByKeywords(in)
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Fatalf("confidence out of range for %q: %v", in, res.Confidence)
		}
	}
}
