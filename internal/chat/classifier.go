package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nmh2003/shopchat/internal/helpers"
	"github.com/nmh2003/shopchat/provider"
	"github.com/nmh2003/shopchat/session"
)

const classifierSystemPrompt = `Bạn là bộ phân loại ý định cho trợ lý mua sắm của một cửa hàng trực tuyến Việt Nam.
Nhiệm vụ của bạn là đọc tin nhắn của khách và xác định khách muốn làm gì.

Các ý định hợp lệ:
- view_featured_products: khách muốn xem sản phẩm nổi bật, sản phẩm hot, bán chạy
- view_categories: khách muốn xem các danh mục sản phẩm của cửa hàng
- view_products_by_category: khách muốn xem sản phẩm thuộc một danh mục cụ thể (điền tên danh mục vào product_info.category)
- add_to_cart: khách muốn thêm một sản phẩm vào giỏ hàng (điền tên sản phẩm vào product_info.name, số lượng vào cart_info.quantity)
- place_order: khách muốn đặt hàng hoặc thanh toán giỏ hàng hiện tại
- unknown: không xác định được ý định nào ở trên

Lưu ý phân biệt: "xem danh mục" là view_categories, nhưng "xem sản phẩm trong danh mục điện thoại" là view_products_by_category.

RESPONSE FORMAT:
Respond ONLY with valid JSON in the following format:
{
  "intent": "ten_y_dinh",
  "confidence": 0.0,
  "product_info": {"name": "", "id": "", "category": ""},
  "cart_info": {"action": "add", "quantity": 1},
  "extracted_requirements": "tóm tắt yêu cầu của khách"
}
Do not include any other text or explanation.`

// Classifier converts one free-text utterance into a Result. The remote
// model is the primary strategy; any failure there (transport, timeout,
// unparseable output) degrades to the keyword fallback, so Classify never
// fails and never returns an out-of-range confidence.
type Classifier struct {
	llm    provider.Provider
	logger *log.Logger
}

func NewClassifier(llm provider.Provider, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.New(log.Writer(), "[CHAT] ", log.LstdFlags)
	}
	return &Classifier{llm: llm, logger: logger}
}

// Classify runs the primary strategy with the fallback behind it. prior is
// the caller's session context from an earlier turn, if any; it is embedded
// in the prompt so the model can resolve references like "thêm cái đó vào giỏ".
func (c *Classifier) Classify(ctx context.Context, input string, prior session.Context) Result {
	if c.llm != nil {
		res, err := c.classifyWithModel(ctx, input, prior)
		if err == nil {
			return res
		}
		c.logger.Printf("model classification failed, using keyword fallback: %v", err)
	}
	classifierFallbacks.Inc()
	return ClassifyByKeywords(input)
}

func (c *Classifier) classifyWithModel(ctx context.Context, input string, prior session.Context) (Result, error) {
	var sb strings.Builder
	if len(prior) > 0 {
		historyJSON, _ := json.Marshal(prior)
		fmt.Fprintf(&sb, "CONTEXT HISTORY:\n%s\n\n", historyJSON)
	}
	fmt.Fprintf(&sb, "USER MESSAGE: %q", input)

	raw, err := c.llm.Completion(ctx, classifierSystemPrompt, sb.String())
	if err != nil {
		return Result{}, err
	}

	cleaned, err := helpers.ExtractJSON(raw)
	if err != nil {
		return Result{}, fmt.Errorf("extract classification JSON: %w", err)
	}

	var parsed struct {
		Intent                string      `json:"intent"`
		Confidence            float64     `json:"confidence"`
		ProductInfo           ProductInfo `json:"product_info"`
		CartInfo              CartInfo    `json:"cart_info"`
		ExtractedRequirements string      `json:"extracted_requirements"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return Result{}, fmt.Errorf("parse classification JSON: %w", err)
	}

	res := Result{
		Intent:                parseIntent(parsed.Intent),
		Confidence:            clamp01(parsed.Confidence),
		ProductInfo:           parsed.ProductInfo,
		CartInfo:              parsed.CartInfo,
		ExtractedRequirements: parsed.ExtractedRequirements,
	}
	if res.ExtractedRequirements == "" {
		res.ExtractedRequirements = input
	}
	if res.Intent == IntentAddToCart {
		if res.CartInfo.Action == "" {
			res.CartInfo.Action = "add"
		}
		if res.CartInfo.Quantity <= 0 {
			res.CartInfo.Quantity = 1
		}
	}
	return res, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
