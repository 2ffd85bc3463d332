package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Store wraps the catalog/cart/order database.
type Store struct {
	DB *sql.DB
}

// Order statuses persisted with new orders.
const (
	OrderStatusPending = "pending"

	// Chat-placed orders always use cash-on-delivery and a placeholder
	// address; the storefront lets the user change both afterwards.
	DefaultPaymentMethod = "cod"
	DefaultShippingAddr  = "Cập nhật sau"
)

// Product is a catalog row, optionally carrying its joined category name.
type Product struct {
	ID           string
	Name         string
	Price        float64
	CountInStock int
	IsActive     bool
	CategoryID   string
	CategoryName string
	CreatedAt    time.Time
}

// Category is an active product grouping.
type Category struct {
	ID          string
	Name        string
	Description string
}

// CartLine is one (user, product) cart row. Product is nil when the
// referenced product no longer exists.
type CartLine struct {
	ID       string
	Quantity int
	Product  *Product
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

// InsufficientStockError reports which product blocked an order.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q", e.Product)
}

func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// Catalog operations

// ListFeaturedProducts returns active products, newest first, with the
// category name joined when the category is itself active.
func (s *Store) ListFeaturedProducts(ctx context.Context, limit int) ([]Product, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT p.id, p.name, p.price, p.count_in_stock, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id AND c.is_active
		WHERE p.is_active
		ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Product
	for rows.Next() {
		p := Product{IsActive: true}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CountInStock, &p.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListActiveCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, COALESCE(description, '') FROM categories WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FindCategoryByName matches an active category by case-insensitive
// substring. The second return reports whether anything matched.
func (s *Store) FindCategoryByName(ctx context.Context, text string) (Category, bool, error) {
	var c Category
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, COALESCE(description, '') FROM categories
		WHERE is_active AND name ILIKE '%' || $1 || '%' ORDER BY name LIMIT 1`, text).
		Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, false, nil
	}
	if err != nil {
		return Category{}, false, err
	}
	return c, true, nil
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID string, limit int) ([]Product, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, price, count_in_stock FROM products
		WHERE is_active AND category_id = $1 ORDER BY created_at DESC LIMIT $2`, categoryID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Product
	for rows.Next() {
		p := Product{IsActive: true, CategoryID: categoryID}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CountInStock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindProductByName matches an active product by case-insensitive substring.
func (s *Store) FindProductByName(ctx context.Context, text string) (Product, bool, error) {
	p := Product{IsActive: true}
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, price, count_in_stock FROM products
		WHERE is_active AND name ILIKE '%' || $1 || '%' ORDER BY name LIMIT 1`, text).
		Scan(&p.ID, &p.Name, &p.Price, &p.CountInStock)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

// Cart operations

// AddCartItem adds qty to the user's cart line for the product, creating the
// line if absent. The additive update happens in a single statement so two
// concurrent adds for the same (user, product) pair cannot lose an update.
func (s *Store) AddCartItem(ctx context.Context, userID, productID string, qty int) (int, error) {
	var newQty int
	err := s.DB.QueryRowContext(ctx, `INSERT INTO carts (user_id, product_id, quantity) VALUES ($1,$2,$3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity
		RETURNING quantity`, userID, productID, qty).Scan(&newQty)
	return newQty, err
}

func (s *Store) ListCartItems(ctx context.Context, userID string) ([]CartLine, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT ci.id, ci.quantity, p.id, p.name, p.price, p.count_in_stock, p.is_active
		FROM carts ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CartLine
	for rows.Next() {
		var (
			line     CartLine
			pid      sql.NullString
			pname    sql.NullString
			price    sql.NullFloat64
			stock    sql.NullInt64
			isActive sql.NullBool
		)
		if err := rows.Scan(&line.ID, &line.Quantity, &pid, &pname, &price, &stock, &isActive); err != nil {
			return nil, err
		}
		if pid.Valid {
			line.Product = &Product{
				ID:           pid.String,
				Name:         pname.String,
				Price:        price.Float64,
				CountInStock: int(stock.Int64),
				IsActive:     isActive.Bool,
			}
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

// Order operations

// CreateOrder persists the order with its line items and decrements stock,
// all in one transaction. Each decrement is conditional on remaining stock,
// so a concurrent sale cannot drive inventory negative; the first line that
// cannot be covered aborts the whole order with InsufficientStockError.
func (s *Store) CreateOrder(ctx context.Context, userID string, items []OrderItem, total float64) (string, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	orderID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `INSERT INTO orders (id, user_id, total_amount, status, payment_method, shipping_address)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		orderID, userID, total, OrderStatusPending, DefaultPaymentMethod, DefaultShippingAddr); err != nil {
		return "", err
	}

	for _, it := range items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO order_items (order_id, product_id, name, quantity, price)
			VALUES ($1,$2,$3,$4,$5)`, orderID, it.ProductID, it.Name, it.Quantity, it.Price); err != nil {
			return "", err
		}
		res, err := tx.ExecContext(ctx, `UPDATE products SET count_in_stock = count_in_stock - $1
			WHERE id = $2 AND count_in_stock >= $1`, it.Quantity, it.ProductID)
		if err != nil {
			return "", err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return "", err
		}
		if affected == 0 {
			return "", &InsufficientStockError{Product: it.Name}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return orderID, nil
}
