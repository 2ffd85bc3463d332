package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nmh2003/shopchat/internal/store"
)

const (
	featuredLimit = 10
	categoryLimit = 20
)

func (d *Dispatcher) handleFeaturedProducts(ctx context.Context, _ Request, res Result) Response {
	products, err := d.store.ListFeaturedProducts(ctx, featuredLimit)
	if err != nil {
		return d.failure(res, "list featured products", err)
	}
	if len(products) == 0 {
		return respond(res, msgNoFeatured)
	}

	var b strings.Builder
	b.WriteString(msgFeaturedHeader + "\n")
	for i, p := range products {
		cat := p.CategoryName
		if cat == "" {
			cat = "N/A"
		}
		fmt.Fprintf(&b, "\n%d. %s\n   Giá: %s | Danh mục: %s | Mã: %s", i+1, p.Name, FormatVND(p.Price), cat, p.ID)
	}
	return respond(res, b.String())
}

func (d *Dispatcher) handleCategories(ctx context.Context, _ Request, res Result) Response {
	categories, err := d.store.ListActiveCategories(ctx)
	if err != nil {
		return d.failure(res, "list categories", err)
	}
	if len(categories) == 0 {
		return respond(res, msgNoCategories)
	}

	var b strings.Builder
	b.WriteString(msgCategoryHeader + "\n")
	for i, c := range categories {
		fmt.Fprintf(&b, "\n%d. %s (Mã: %s)", i+1, c.Name, c.ID)
		if c.Description != "" {
			fmt.Fprintf(&b, "\n   %s", c.Description)
		}
	}
	return respond(res, b.String())
}

func (d *Dispatcher) handleProductsInCategory(ctx context.Context, _ Request, res Result) Response {
	query := strings.TrimSpace(res.ProductInfo.Category)
	if query == "" {
		// Prompt for the missing entity; the echoed confidence is fixed so
		// the follow-up turn is not re-gated.
		resp := respond(res, msgSpecifyCategory)
		resp.Confidence = 0.7
		return resp
	}

	category, found, err := d.store.FindCategoryByName(ctx, query)
	if err != nil {
		return d.failure(res, "find category", err)
	}
	if !found {
		return respond(res, fmt.Sprintf("Không tìm thấy danh mục \"%s\".", query))
	}

	products, err := d.store.ListProductsByCategory(ctx, category.ID, categoryLimit)
	if err != nil {
		return d.failure(res, "list products in category", err)
	}
	if len(products) == 0 {
		return respond(res, fmt.Sprintf("Danh mục %s hiện chưa có sản phẩm nào.", category.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔎 Sản phẩm trong danh mục %s:\n", category.Name)
	for i, p := range products {
		fmt.Fprintf(&b, "\n%d. %s\n   Giá: %s | Mã: %s", i+1, p.Name, FormatVND(p.Price), p.ID)
	}
	return respond(res, b.String())
}

func (d *Dispatcher) handleAddToCart(ctx context.Context, req Request, res Result) Response {
	if req.UserID == "" {
		return respond(res, msgPleaseLogin)
	}
	name := strings.TrimSpace(res.ProductInfo.Name)
	if name == "" {
		return respond(res, msgSpecifyProduct)
	}

	product, found, err := d.store.FindProductByName(ctx, name)
	if err != nil {
		return d.failure(res, "find product", err)
	}
	if !found {
		return respond(res, fmt.Sprintf("Không tìm thấy sản phẩm \"%s\".", name))
	}

	qty := res.CartInfo.Quantity
	if qty <= 0 {
		qty = 1
	}
	if product.CountInStock < qty {
		return respond(res, fmt.Sprintf("Rất tiếc, sản phẩm %s chỉ còn %d trong kho.", product.Name, product.CountInStock))
	}

	newQty, err := d.store.AddCartItem(ctx, req.UserID, product.ID, qty)
	if err != nil {
		return d.failure(res, "add cart item", err)
	}

	text := fmt.Sprintf("✅ Đã thêm %d x %s vào giỏ hàng.\nĐơn giá: %s\nTạm tính: %s\nSố lượng trong giỏ: %d",
		qty, product.Name, FormatVND(product.Price), FormatVND(product.Price*float64(qty)), newQty)
	resp := respond(res, text)
	resp.ProductInfo.ID = product.ID
	resp.ProductInfo.Name = product.Name
	resp.CartInfo = CartInfo{Action: "add", Quantity: qty}
	return resp
}

func (d *Dispatcher) handlePlaceOrder(ctx context.Context, req Request, res Result) Response {
	if req.UserID == "" {
		return respond(res, msgPleaseLogin)
	}

	lines, err := d.store.ListCartItems(ctx, req.UserID)
	if err != nil {
		return d.failure(res, "list cart items", err)
	}
	if len(lines) == 0 {
		return respond(res, msgCartEmpty)
	}

	// Fail-fast validation pass: no order and no stock mutation happen until
	// every remaining line is covered by current stock.
	var (
		items []store.OrderItem
		total float64
	)
	for _, line := range lines {
		if line.Product == nil || !line.Product.IsActive {
			continue
		}
		if line.Quantity > line.Product.CountInStock {
			return respond(res, fmt.Sprintf("Sản phẩm %s không đủ hàng trong kho (còn %d).", line.Product.Name, line.Product.CountInStock))
		}
		items = append(items, store.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
		total += line.Product.Price * float64(line.Quantity)
	}
	if len(items) == 0 {
		return respond(res, msgNoValidItems)
	}

	orderID, err := d.store.CreateOrder(ctx, req.UserID, items, total)
	if err != nil {
		var stockErr *store.InsufficientStockError
		if errors.As(err, &stockErr) {
			// Stock moved between validation and the transaction's
			// conditional decrement; nothing was committed.
			return respond(res, fmt.Sprintf("Sản phẩm %s vừa hết hàng, vui lòng điều chỉnh giỏ hàng.", stockErr.Product))
		}
		return d.failure(res, "create order", err)
	}

	if err := d.store.ClearCart(ctx, req.UserID); err != nil {
		d.logger.Printf("clear cart after order %s: %v", orderID, err)
	}

	text := fmt.Sprintf("🎉 Đặt hàng thành công!\nMã đơn hàng: %s\nTổng tiền: %s\nPhương thức thanh toán: COD (thanh toán khi nhận hàng)",
		orderID, FormatVND(total))
	return respond(res, text)
}
