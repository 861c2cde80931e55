package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"

	"gorilla-shop/models"
)

// fakeOrderStore records created orders and deletes the cart rows from its
// companion cart store inside CreateOrder, mirroring the transactional
// contract of the SQL repository.
type fakeOrderStore struct {
	carts   *fakeCartStore
	nextID  int64
	orders  map[int64]*models.Order
	created int
}

func newFakeOrderStore(carts *fakeCartStore) *fakeOrderStore {
	return &fakeOrderStore{carts: carts, nextID: 1, orders: map[int64]*models.Order{}}
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, order *models.Order, cartID int64) error {
	if len(f.carts.items[cartID]) == 0 {
		return ErrCartEmpty
	}
	f.carts.items[cartID] = map[int64]int{}

	order.ID = f.nextID
	f.nextID++
	copied := *order
	f.orders[order.ID] = &copied
	f.created++
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) GetForUser(_ context.Context, userID, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.UserID != userID {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID int64, page, limit int) ([]models.Order, int, error) {
	out := []models.Order{}
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrderStore) List(_ context.Context, status string, page, limit int) ([]models.Order, int, error) {
	out := []models.Order{}
	for _, order := range f.orders {
		if status == "" || string(order.Status) == status {
			out = append(out, *order)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id int64, status models.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeOrderStore) SetReceipt(_ context.Context, id int64, receiptURL string) error {
	order, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.ReceiptURL = receiptURL
	return nil
}

type fakeConfirmationMailer struct {
	sent []string
}

func (f *fakeConfirmationMailer) SendOrderConfirmationEmail(to, orderNumber string, total decimal.Decimal) error {
	f.sent = append(f.sent, orderNumber)
	return nil
}

func cartItem(product *models.Product, qty int) models.CartItem {
	return models.CartItem{ProductID: product.ID, Quantity: qty, Product: product}
}

func TestComputeOrderTotals(t *testing.T) {
	a := testProduct(1, 1500, 10, 10)
	b := testProduct(2, 1000, 20, 10)
	b.Discount = decimal.RequireFromString("0.5")

	items := []models.CartItem{cartItem(a, 2), cartItem(b, 1)}
	subtotal, shipping, total := ComputeOrderTotals(items)

	if !subtotal.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("Expected subtotal 3500, got %s", subtotal)
	}
	if !shipping.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("Expected shipping 4000, got %s", shipping)
	}
	if !total.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("Expected total 7500, got %s", total)
	}
}

func TestComputeOrderTotalsSkipsUnresolvedRows(t *testing.T) {
	items := []models.CartItem{
		cartItem(testProduct(1, 1000, 5, 10), 1),
		{ProductID: 2, Quantity: 3},
	}
	subtotal, shipping, _ := ComputeOrderTotals(items)

	if !subtotal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected subtotal 1000, got %s", subtotal)
	}
	if !shipping.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected shipping 500, got %s", shipping)
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{14}-[0-9A-F]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		number := generateOrderNumber()
		if !pattern.MatchString(number) {
			t.Fatalf("Unexpected order number format: %s", number)
		}
		if seen[number] {
			t.Fatalf("Duplicate order number: %s", number)
		}
		seen[number] = true
	}
}

func TestBuildSnapshotFreezesPricesAndAddress(t *testing.T) {
	product := testProduct(1, 2000, 5, 10)
	product.Name = "Gorilla Mug"
	product.Discount = decimal.NewFromInt(25)

	addr := testAddress(7)
	addr.City = "Shiraz"
	items := []models.CartItem{cartItem(product, 2)}

	order := BuildSnapshot(7, addr, items)

	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected pending status, got %s", order.Status)
	}
	if order.ShippingCity != "Shiraz" || order.ShippingFullName != addr.FullName {
		t.Error("Shipping address fields should be copied onto the order")
	}
	if len(order.Items) != 1 {
		t.Fatalf("Expected 1 order item, got %d", len(order.Items))
	}

	line := order.Items[0]
	if line.ProductName != "Gorilla Mug" {
		t.Errorf("Expected frozen product name, got %s", line.ProductName)
	}
	if !line.ProductPrice.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected frozen discounted price 1500, got %s", line.ProductPrice)
	}
	if !line.Subtotal.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Expected line subtotal 3000, got %s", line.Subtotal)
	}

	// later catalog edits must not leak into the snapshot
	product.Name = "Renamed"
	product.Price = decimal.NewFromInt(9999)
	if order.Items[0].ProductName != "Gorilla Mug" || !order.Items[0].ProductPrice.Equal(decimal.NewFromInt(1500)) {
		t.Error("Snapshot should be independent of the live product")
	}
}

func TestBuildSnapshotSkipsUnresolvedRows(t *testing.T) {
	addr := testAddress(7)
	items := []models.CartItem{{ProductID: 9, Quantity: 2}}

	order := BuildSnapshot(7, addr, items)
	if len(order.Items) != 0 {
		t.Errorf("Expected no order items, got %+v", order.Items)
	}
}

func seedCart(t *testing.T, carts *fakeCartStore, userID int64, qty int) {
	t.Helper()
	cartID, _ := carts.GetOrCreateCart(context.Background(), userID)
	carts.items[cartID] = map[int64]int{1: qty}
}

// checkoutItems makes the fake cart store resolve products on ListItems so
// Checkout sees priced rows.
type resolvingCartStore struct {
	*fakeCartStore
	catalog map[int64]*models.Product
}

func (r *resolvingCartStore) ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	items, err := r.fakeCartStore.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Product = r.catalog[items[i].ProductID]
	}
	return items, nil
}

func newResolvingFixture(t *testing.T) (*OrderService, *resolvingCartStore, *fakeAddressStore, *fakeOrderStore, *fakeConfirmationMailer) {
	t.Helper()
	carts := &resolvingCartStore{
		fakeCartStore: newFakeCartStore(),
		catalog:       map[int64]*models.Product{1: testProduct(1, 1000, 5, 10)},
	}
	addresses := newFakeAddressStore()
	orders := newFakeOrderStore(carts.fakeCartStore)
	mailer := &fakeConfirmationMailer{}
	return NewOrderService(orders, carts, addresses, mailer), carts, addresses, orders, mailer
}

func TestCheckoutUsesDefaultAddress(t *testing.T) {
	svc, carts, addresses, _, mailer := newResolvingFixture(t)
	ctx := context.Background()

	first := testAddress(7)
	addresses.Create(ctx, first)
	second := testAddress(7)
	second.City = "Isfahan"
	second.IsDefault = true
	addresses.Create(ctx, second)

	seedCart(t, carts.fakeCartStore, 7, 2)

	order, err := svc.Checkout(ctx, 7, 0, "user@example.com")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.ShippingCity != "Isfahan" {
		t.Errorf("Expected the default address, got city %s", order.ShippingCity)
	}
	if !order.Total.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Expected total 3000, got %s", order.Total)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != order.OrderNumber {
		t.Errorf("Expected one confirmation email for %s, got %v", order.OrderNumber, mailer.sent)
	}
}

func TestCheckoutWithExplicitAddress(t *testing.T) {
	svc, carts, addresses, _, _ := newResolvingFixture(t)
	ctx := context.Background()

	first := testAddress(7)
	addresses.Create(ctx, first)
	second := testAddress(7)
	second.City = "Tabriz"
	addresses.Create(ctx, second)

	seedCart(t, carts.fakeCartStore, 7, 1)

	order, err := svc.Checkout(ctx, 7, second.ID, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.ShippingCity != "Tabriz" {
		t.Errorf("Expected the chosen address, got city %s", order.ShippingCity)
	}
}

func TestCheckoutWithoutAddress(t *testing.T) {
	svc, carts, _, orders, _ := newResolvingFixture(t)
	ctx := context.Background()

	seedCart(t, carts.fakeCartStore, 7, 1)

	if _, err := svc.Checkout(ctx, 7, 0, ""); !errors.Is(err, ErrAddressRequired) {
		t.Errorf("Expected ErrAddressRequired, got %v", err)
	}
	if orders.created != 0 {
		t.Error("No order should be created without an address")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, addresses, orders, _ := newResolvingFixture(t)
	ctx := context.Background()

	addresses.Create(ctx, testAddress(7))

	if _, err := svc.Checkout(ctx, 7, 0, ""); !errors.Is(err, ErrCartEmpty) {
		t.Errorf("Expected ErrCartEmpty, got %v", err)
	}
	if orders.created != 0 {
		t.Error("No order should be created from an empty cart")
	}
}

func TestCheckoutConsumesCartOnce(t *testing.T) {
	svc, carts, addresses, orders, _ := newResolvingFixture(t)
	ctx := context.Background()

	addresses.Create(ctx, testAddress(7))
	seedCart(t, carts.fakeCartStore, 7, 1)

	if _, err := svc.Checkout(ctx, 7, 0, ""); err != nil {
		t.Fatalf("First checkout: %v", err)
	}
	if _, err := svc.Checkout(ctx, 7, 0, ""); !errors.Is(err, ErrCartEmpty) {
		t.Errorf("Second checkout should fail with ErrCartEmpty, got %v", err)
	}
	if orders.created != 1 {
		t.Errorf("Expected exactly one order, got %d", orders.created)
	}
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	svc, carts, addresses, orders, _ := newResolvingFixture(t)
	ctx := context.Background()

	addresses.Create(ctx, testAddress(7))
	seedCart(t, carts.fakeCartStore, 7, 1)
	order, err := svc.Checkout(ctx, 7, 0, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending -> shipped should be rejected, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusPaymentVerified); err != nil {
		t.Fatalf("pending -> payment_verified: %v", err)
	}
	if err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing); err != nil {
		t.Fatalf("payment_verified -> processing: %v", err)
	}
	if err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("processing -> cancelled should be rejected, got %v", err)
	}

	if got := orders.orders[order.ID].Status; got != models.OrderStatusProcessing {
		t.Errorf("Expected final status processing, got %s", got)
	}
}

func TestAttachReceiptOnPendingOrder(t *testing.T) {
	svc, carts, addresses, orders, _ := newResolvingFixture(t)
	ctx := context.Background()

	addresses.Create(ctx, testAddress(7))
	seedCart(t, carts.fakeCartStore, 7, 1)
	order, err := svc.Checkout(ctx, 7, 0, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	updated, err := svc.AttachReceipt(ctx, 7, order.ID, "https://img.example.com/receipt.jpg")
	if err != nil {
		t.Fatalf("AttachReceipt: %v", err)
	}
	if updated.ReceiptURL != "https://img.example.com/receipt.jpg" {
		t.Errorf("Expected receipt URL on the returned order, got %q", updated.ReceiptURL)
	}
	if got := orders.orders[order.ID].ReceiptURL; got != "https://img.example.com/receipt.jpg" {
		t.Errorf("Expected receipt URL persisted, got %q", got)
	}
}

func TestAttachReceiptAfterVerificationRefused(t *testing.T) {
	svc, carts, addresses, _, _ := newResolvingFixture(t)
	ctx := context.Background()

	addresses.Create(ctx, testAddress(7))
	seedCart(t, carts.fakeCartStore, 7, 1)
	order, _ := svc.Checkout(ctx, 7, 0, "")

	if err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusPaymentVerified); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := svc.AttachReceipt(ctx, 7, order.ID, "https://img.example.com/late.jpg"); !errors.Is(err, ErrReceiptNotAllowed) {
		t.Errorf("Expected ErrReceiptNotAllowed, got %v", err)
	}
}

func TestAttachReceiptToAnotherUsersOrder(t *testing.T) {
	svc, carts, addresses, _, _ := newResolvingFixture(t)
	ctx := context.Background()

	addresses.Create(ctx, testAddress(7))
	seedCart(t, carts.fakeCartStore, 7, 1)
	order, _ := svc.Checkout(ctx, 7, 0, "")

	if _, err := svc.AttachReceipt(ctx, 8, order.ID, "https://img.example.com/receipt.jpg"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _, _, _ := newResolvingFixture(t)

	if err := svc.UpdateStatus(context.Background(), 99, models.OrderStatusCancelled); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), 99, models.OrderStatus("paid")); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Unknown status should be rejected, got %v", err)
	}
}
