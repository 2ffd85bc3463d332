package chat

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type stubProvider struct {
	out string
	err error
}

func (s stubProvider) Completion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.out, s.err
}

func TestClassifyModelSuccessWithFencedJSON(t *testing.T) {
	c := NewClassifier(stubProvider{out: "```json\n" +
		`{"intent":"add_to_cart","confidence":0.92,"product_info":{"name":"iPhone 15"},"cart_info":{"quantity":2},"extracted_requirements":"mua 2 iPhone 15"}` +
		"\n```"}, nil)

	res := c.Classify(context.Background(), "mua 2 cái iPhone 15", nil)
	if res.Intent != IntentAddToCart {
		t.Fatalf("expected add_to_cart, got %s", res.Intent)
	}
	if res.Confidence != 0.92 {
		t.Fatalf("expected confidence 0.92, got %v", res.Confidence)
	}
	if res.ProductInfo.Name != "iPhone 15" {
		t.Fatalf("unexpected product info: %+v", res.ProductInfo)
	}
	if res.CartInfo.Action != "add" || res.CartInfo.Quantity != 2 {
		t.Fatalf("expected defaulted action with quantity 2, got %+v", res.CartInfo)
	}
}

func TestClassifyModelErrorFallsBackToKeywords(t *testing.T) {
	c := NewClassifier(stubProvider{err: errors.New("connection refused")}, nil)

	input := "Xem danh mục sản phẩm"
	got := c.Classify(context.Background(), input, nil)
	want := ClassifyByKeywords(input)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fallback result differs from keyword classifier:\n got %+v\nwant %+v", got, want)
	}
}

func TestClassifyMalformedJSONFallsBackToKeywords(t *testing.T) {
	c := NewClassifier(stubProvider{out: "Dạ vâng, em sẽ giúp anh ngay ạ!"}, nil)

	input := "xem sản phẩm nổi bật và danh mục"
	got := c.Classify(context.Background(), input, nil)
	want := ClassifyByKeywords(input)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fallback result differs from keyword classifier:\n got %+v\nwant %+v", got, want)
	}
}

func TestClassifyDefensiveDefaults(t *testing.T) {
	// Missing fields take documented defaults; out-of-range confidence is
	// clamped and an unrecognized intent collapses to unknown.
	c := NewClassifier(stubProvider{out: `{"intent":"make_coffee","confidence":7}`}, nil)

	res := c.Classify(context.Background(), "pha cà phê", nil)
	if res.Intent != IntentUnknown {
		t.Fatalf("expected unknown intent, got %s", res.Intent)
	}
	if res.Confidence != 1 {
		t.Fatalf("expected clamped confidence 1, got %v", res.Confidence)
	}
	if res.ExtractedRequirements != "pha cà phê" {
		t.Fatalf("expected raw input as default requirements, got %q", res.ExtractedRequirements)
	}
}

func TestClassifyNilProviderUsesKeywords(t *testing.T) {
	c := NewClassifier(nil, nil)
	res := c.Classify(context.Background(), "đặt hàng", nil)
	if res.Intent != IntentPlaceOrder {
		t.Fatalf("expected place_order, got %s", res.Intent)
	}
}

func TestClassifyNeverOutOfRange(t *testing.T) {
	providers := []stubProvider{
		{out: `{"intent":"view_categories","confidence":-3}`},
		{out: `{}`},
		{out: `[]`},
		{err: errors.New("timeout")},
	}
	for _, p := range providers {
		c := NewClassifier(p, nil)
		res := c.Classify(context.Background(), "xin chào", nil)
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Fatalf("confidence out of range: %v", res.Confidence)
		}
		if res.Intent == "" {
			t.Fatal("intent must always be populated")
		}
	}
}
