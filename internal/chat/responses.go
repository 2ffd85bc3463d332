package chat

import (
	"math"
	"strconv"
	"strings"
)

// Response templates. The clarify and cannot-process texts are deliberately
// separate templates even though they read similarly: one answers a
// low-confidence classification, the other an intent we have no handler for.
const (
	msgClarify       = "Xin lỗi, tôi chưa hiểu rõ yêu cầu của bạn. Bạn có thể nói rõ hơn được không?"
	msgCannotProcess = "Xin lỗi, tôi không thể xử lý yêu cầu này. Bạn thử hỏi về sản phẩm, danh mục, giỏ hàng hoặc đặt hàng nhé."
	msgFailure       = "Đã có lỗi xảy ra, vui lòng thử lại sau."
	msgPleaseLogin   = "Vui lòng đăng nhập để sử dụng tính năng này."

	msgNoFeatured      = "Hiện tại chưa có sản phẩm nổi bật nào."
	msgFeaturedHeader  = "🌟 Danh sách sản phẩm nổi bật:"
	msgNoCategories    = "Hiện tại chưa có danh mục nào."
	msgCategoryHeader  = "📂 Danh sách danh mục:"
	msgSpecifyCategory = "Bạn muốn xem sản phẩm trong danh mục nào?"
	msgSpecifyProduct  = "Bạn muốn thêm sản phẩm nào vào giỏ hàng?"
	msgCartEmpty       = "Giỏ hàng của bạn đang trống."
	msgNoValidItems    = "Không có sản phẩm hợp lệ nào trong giỏ hàng để đặt."
)

// FormatVND renders an amount as Vietnamese đồng with dot-grouped thousands,
// e.g. 25000000 -> "25.000.000₫". VND has no minor unit, so the amount is
// rounded to a whole number first.
func FormatVND(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	b.WriteRune('₫')
	return b.String()
}
