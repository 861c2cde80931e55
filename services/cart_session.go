package services

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"gorilla-shop/libs"
	"gorilla-shop/models"
)

// ProductFinder resolves cart entries against the catalog in one batched
// query. Only existing, available products are returned.
type ProductFinder interface {
	FindAvailableByIDs(ctx context.Context, ids []int64) (map[int64]*models.Product, error)
}

const cartSessionKey = "cart"

var shippingRate = decimal.NewFromInt(100)

// CartSession wraps the session-resident cart: an ordered list of
// product_id/quantity pairs. Mutations touch only the in-memory copy and a
// dirty flag; Flush writes back to the session only when something changed.
// Product lookups are batched and cached for the lifetime of the instance
// (one request).
type CartSession struct {
	session  *libs.Session
	products ProductFinder

	data     models.SessionCart
	modified bool
	cache    map[int64]*models.Product
	loaded   bool
}

func NewCartSession(sess *libs.Session, products ProductFinder) *CartSession {
	cs := &CartSession{
		session:  sess,
		products: products,
		cache:    map[int64]*models.Product{},
	}
	sess.Get(cartSessionKey, &cs.data)
	return cs
}

// Entries returns a copy of the raw session entries.
func (cs *CartSession) Entries() []models.SessionCartEntry {
	entries := make([]models.SessionCartEntry, len(cs.data.Items))
	copy(entries, cs.data.Items)
	return entries
}

func (cs *CartSession) find(productID int64) *models.SessionCartEntry {
	for i := range cs.data.Items {
		if cs.data.Items[i].ProductID == productID {
			return &cs.data.Items[i]
		}
	}
	return nil
}

func (cs *CartSession) loadProducts(ctx context.Context) error {
	if cs.loaded {
		return nil
	}
	if len(cs.data.Items) == 0 {
		cs.loaded = true
		return nil
	}

	ids := make([]int64, 0, len(cs.data.Items))
	for _, item := range cs.data.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := cs.products.FindAvailableByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for id, p := range products {
		cs.cache[id] = p
	}
	cs.loaded = true
	return nil
}

// getProduct returns the available product or nil, using the batch cache
// with a single-ID fallback.
func (cs *CartSession) getProduct(ctx context.Context, productID int64) (*models.Product, error) {
	if p, ok := cs.cache[productID]; ok {
		return p, nil
	}
	if cs.loaded {
		return nil, nil
	}

	products, err := cs.products.FindAvailableByIDs(ctx, []int64{productID})
	if err != nil {
		return nil, err
	}
	p := products[productID]
	if p != nil {
		cs.cache[productID] = p
	}
	return p, nil
}

// AddProduct increments the product's quantity by one, or adds it with
// quantity 1. Returns false when the product is missing, unavailable, or
// the increment would exceed stock.
func (cs *CartSession) AddProduct(ctx context.Context, productID int64) (bool, error) {
	product, err := cs.getProduct(ctx, productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}

	if existing := cs.find(productID); existing != nil {
		if existing.Quantity+1 > product.Stock {
			return false, nil
		}
		existing.Quantity++
		cs.modified = true
		return true, nil
	}

	if product.Stock < 1 {
		return false, nil
	}
	cs.data.Items = append(cs.data.Items, models.SessionCartEntry{ProductID: productID, Quantity: 1})
	cs.modified = true
	return true, nil
}

// UpdateQuantity sets an explicit quantity for a product already in the
// cart. Non-numeric or non-positive input is ignored silently, as is an
// unchanged quantity or a product not present.
func (cs *CartSession) UpdateQuantity(productID int64, quantity string) {
	qty, err := strconv.Atoi(quantity)
	if err != nil || qty < 1 {
		return
	}

	if existing := cs.find(productID); existing != nil && existing.Quantity != qty {
		existing.Quantity = qty
		cs.modified = true
	}
}

// DecreaseQuantity decrements by one only while quantity stays above zero;
// at quantity 1 it is a no-op returning false. Removal is always explicit.
func (cs *CartSession) DecreaseQuantity(productID int64) bool {
	existing := cs.find(productID)
	if existing == nil || existing.Quantity <= 1 {
		return false
	}
	existing.Quantity--
	cs.modified = true
	return true
}

func (cs *CartSession) RemoveProduct(productID int64) {
	for i := range cs.data.Items {
		if cs.data.Items[i].ProductID == productID {
			cs.data.Items = append(cs.data.Items[:i], cs.data.Items[i+1:]...)
			cs.modified = true
			return
		}
	}
}

func (cs *CartSession) Clear() {
	cs.data = models.SessionCart{Items: []models.SessionCartEntry{}}
	cs.cache = map[int64]*models.Product{}
	cs.loaded = true
	cs.modified = true
}

// Items resolves the session entries against one batched catalog query and
// annotates each line with discounted unit price, line total, and line
// discount. Entries whose product is gone or unavailable are dropped from
// the view but stay in the session.
func (cs *CartSession) Items(ctx context.Context) ([]models.CartItemView, error) {
	if err := cs.loadProducts(ctx); err != nil {
		return nil, err
	}

	views := make([]models.CartItemView, 0, len(cs.data.Items))
	for _, item := range cs.data.Items {
		product := cs.cache[item.ProductID]
		if product == nil {
			continue
		}

		unitPrice := product.GetPrice()
		qty := decimal.NewFromInt(int64(item.Quantity))
		views = append(views, models.CartItemView{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			Product:      product,
			UnitPrice:    unitPrice,
			LineTotal:    unitPrice.Mul(qty),
			LineDiscount: product.DiscountAmount().Mul(qty),
		})
	}
	return views, nil
}

// TotalQuantity counts all units, including entries that no longer resolve
// to an available product.
func (cs *CartSession) TotalQuantity() int {
	total := 0
	for _, item := range cs.data.Items {
		total += item.Quantity
	}
	return total
}

func (cs *CartSession) TotalWeight(ctx context.Context) (int, error) {
	if err := cs.loadProducts(ctx); err != nil {
		return 0, err
	}

	total := 0
	for _, item := range cs.data.Items {
		if product := cs.cache[item.ProductID]; product != nil {
			total += product.Weight * item.Quantity
		}
	}
	return total, nil
}

// ShippingCost is total weight times 100.
func (cs *CartSession) ShippingCost(ctx context.Context) (decimal.Decimal, error) {
	weight, err := cs.TotalWeight(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(int64(weight)).Mul(shippingRate), nil
}

func (cs *CartSession) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	items, err := cs.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total, nil
}

func (cs *CartSession) TotalDiscount(ctx context.Context) (decimal.Decimal, error) {
	items, err := cs.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineDiscount)
	}
	return total, nil
}

// TotalPayment is items total plus shipping.
func (cs *CartSession) TotalPayment(ctx context.Context) (decimal.Decimal, error) {
	price, err := cs.TotalPrice(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	shipping, err := cs.ShippingCost(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Add(shipping), nil
}

// Snapshot returns the raw cart structure as stored in the session.
func (cs *CartSession) Snapshot() models.SessionCart {
	return models.SessionCart{Items: cs.Entries()}
}

// Flush writes the cart back into the session when it changed.
func (cs *CartSession) Flush() error {
	if !cs.modified {
		return nil
	}
	if err := cs.session.Set(cartSessionKey, cs.data); err != nil {
		return err
	}
	cs.modified = false
	return nil
}
