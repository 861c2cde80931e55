package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gorilla-shop/models"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrAddressRequired   = errors.New("no shipping address registered")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrReceiptNotAllowed = errors.New("receipt can only be attached while the order is pending")
)

// OrderStore persists order snapshots. CreateOrder must atomically insert
// the order with its items and consume the cart rows it was built from,
// failing with ErrCartEmpty when another request already consumed them.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order, cartID int64) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetForUser(ctx context.Context, userID, id int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Order, int, error)
	List(ctx context.Context, status string, page, limit int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	SetReceipt(ctx context.Context, id int64, receiptURL string) error
}

// AddressStore is the user address book.
type AddressStore interface {
	GetByID(ctx context.Context, userID, id int64) (*models.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Address, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, addr *models.Address) error
	Update(ctx context.Context, addr *models.Address) error
	Delete(ctx context.Context, userID, id int64) error
	ClearDefault(ctx context.Context, userID, exceptID int64) error
	SetDefault(ctx context.Context, userID, id int64) error
}

type ConfirmationMailer interface {
	SendOrderConfirmationEmail(to, orderNumber string, total decimal.Decimal) error
}

type OrderService struct {
	orders    OrderStore
	carts     CartStore
	addresses AddressStore
	mailer    ConfirmationMailer
}

func NewOrderService(orders OrderStore, carts CartStore, addresses AddressStore, mailer ConfirmationMailer) *OrderService {
	return &OrderService{orders: orders, carts: carts, addresses: addresses, mailer: mailer}
}

// ComputeOrderTotals derives subtotal, shipping (total weight times 100) and
// grand total from persisted cart rows. Rows without a resolved product
// contribute nothing.
func ComputeOrderTotals(items []models.CartItem) (subtotal, shipping, total decimal.Decimal) {
	subtotal = decimal.Zero
	weight := 0
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		subtotal = subtotal.Add(item.Subtotal())
		weight += item.Product.Weight * item.Quantity
	}
	shipping = decimal.NewFromInt(int64(weight)).Mul(shippingRate)
	total = subtotal.Add(shipping)
	return subtotal, shipping, total
}

func generateOrderNumber() string {
	unique := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), unique)
}

// BuildSnapshot freezes the cart rows and the shipping address into an
// order: per-line product name and discounted price are copied so later
// catalog edits never touch the order.
func BuildSnapshot(userID int64, addr *models.Address, items []models.CartItem) *models.Order {
	subtotal, shipping, total := ComputeOrderTotals(items)

	order := &models.Order{
		UserID:      userID,
		OrderNumber: generateOrderNumber(),
		Status:      models.OrderStatusPending,

		ShippingFullName:     addr.FullName,
		ShippingPhone:        addr.Phone,
		ShippingAddressLine1: addr.AddressLine1,
		ShippingAddressLine2: addr.AddressLine2,
		ShippingCity:         addr.City,
		ShippingState:        addr.State,
		ShippingPostalCode:   addr.PostalCode,
		ShippingCountry:      addr.Country,

		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        total,
	}

	for _, item := range items {
		if item.Product == nil {
			continue
		}
		productID := item.ProductID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    &productID,
			ProductName:  item.Product.Name,
			ProductPrice: item.Product.GetPrice(),
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal(),
		})
	}
	return order
}

// Checkout materializes the user's persisted cart into an order. When
// addressID is zero the default (or first) address is used. The cart rows
// are deleted in the same transaction that creates the order.
func (s *OrderService) Checkout(ctx context.Context, userID, addressID int64, userEmail string) (*models.Order, error) {
	addr, err := s.resolveAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	cartID, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.carts.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	order := BuildSnapshot(userID, addr, items)
	if len(order.Items) == 0 {
		return nil, ErrCartEmpty
	}

	if err := s.orders.CreateOrder(ctx, order, cartID); err != nil {
		return nil, err
	}

	if s.mailer != nil && userEmail != "" {
		if err := s.mailer.SendOrderConfirmationEmail(userEmail, order.OrderNumber, order.Total); err != nil {
			log.Printf("Failed to send order confirmation for %s: %v", order.OrderNumber, err)
		}
	}
	return order, nil
}

func (s *OrderService) resolveAddress(ctx context.Context, userID, addressID int64) (*models.Address, error) {
	if addressID != 0 {
		addr, err := s.addresses.GetByID(ctx, userID, addressID)
		if err != nil {
			return nil, err
		}
		if addr == nil {
			return nil, ErrAddressRequired
		}
		return addr, nil
	}

	addrs, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, ErrAddressRequired
	}
	for i := range addrs {
		if addrs[i].IsDefault {
			return &addrs[i], nil
		}
	}
	return &addrs[0], nil
}

func (s *OrderService) GetForUser(ctx context.Context, userID, id int64) (*models.Order, error) {
	return s.orders.GetForUser(ctx, userID, id)
}

// AttachReceipt stores the payment receipt image URL on the user's own
// order. Only pending orders accept a receipt; once payment is verified the
// order is closed for changes from the customer side.
func (s *OrderService) AttachReceipt(ctx context.Context, userID, id int64, receiptURL string) (*models.Order, error) {
	order, err := s.orders.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrReceiptNotAllowed
	}

	if err := s.orders.SetReceipt(ctx, order.ID, receiptURL); err != nil {
		return nil, err
	}
	order.ReceiptURL = receiptURL
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64, page, limit int) ([]models.Order, int, error) {
	return s.orders.ListByUser(ctx, userID, page, limit)
}

func (s *OrderService) List(ctx context.Context, status string, page, limit int) ([]models.Order, int, error) {
	return s.orders.List(ctx, status, page, limit)
}

func (s *OrderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// UpdateStatus applies an administrative status change, enforcing the
// pending → payment_verified → processing → shipped → delivered chain (with
// cancellation allowed before processing).
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidTransition
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(status) {
		return ErrInvalidTransition
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
