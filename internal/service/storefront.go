package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/notify"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

// RelatedLimit caps the related products shown on a product page.
const RelatedLimit = 3

// Storefront is the application state shared by every view. Views receive it
// by reference and change state only through its containers' operations.
type Storefront struct {
	Catalog  *Catalog
	Orders   *Orders
	Session  *Session
	Cart     *Cart
	Wishlist *Wishlist
	Currency *Currency
	Images   *ImageUploader

	payment     config.PaymentConfig
	maxQuantity int
	logger      *logging.LoggerV2
}

// DefaultMaxCartQuantity is used when Options.MaxCartQuantity is unset.
const DefaultMaxCartQuantity = 99

// Options configures New. Zero values fall back to defaults.
type Options struct {
	AdminPassword string
	Payment       config.PaymentConfig
	MaxImageBytes int64
	// MaxCartQuantity caps the units one AddToCart call may add.
	MaxCartQuantity int
	Publisher       EventPublisher
	Metrics         *metrics.Metrics
	Now             func() time.Time
}

// New builds every container on top of store. Call Initialize before use.
func New(store repository.Store, opts Options) *Storefront {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewNop()
	}
	if opts.MaxCartQuantity <= 0 {
		opts.MaxCartQuantity = DefaultMaxCartQuantity
	}

	ids := NewIDGenerator(opts.Now)

	return &Storefront{
		Catalog:     NewCatalog(store, ids, opts.Publisher, opts.Metrics),
		Orders:      NewOrders(store, ids, opts.Now, opts.Publisher, opts.Metrics),
		Session:     NewSession(store, opts.AdminPassword, opts.Metrics),
		Cart:        NewCart(store, opts.Metrics),
		Wishlist:    NewWishlist(store, opts.Metrics),
		Currency:    NewCurrency(store),
		Images:      NewImageUploader(opts.MaxImageBytes),
		payment:     opts.Payment,
		maxQuantity: opts.MaxCartQuantity,
		logger:      logging.NewLoggerV2("storefront"),
	}
}

// Initialize loads every container from the store. Containers never fail on
// unreadable data, so the returned error only carries persist errors from
// seeding the catalog.
func (s *Storefront) Initialize(ctx context.Context) error {
	err := errors.Join(
		s.Catalog.Initialize(ctx),
		s.Orders.Initialize(ctx),
		s.Session.Initialize(ctx),
		s.Cart.Initialize(ctx),
		s.Wishlist.Initialize(ctx),
		s.Currency.Initialize(ctx),
	)
	s.logger.Info("Storefront initialized", logging.Fields{
		"products": len(s.Catalog.Products()),
		"orders":   len(s.Orders.Orders()),
		"currency": s.Currency.Label(),
	})
	return err
}

// Payment returns the payment gateway configuration handed to checkout.
func (s *Storefront) Payment() config.PaymentConfig {
	return s.payment
}

// ProductDetails is a product together with the products shown next to it.
type ProductDetails struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

// ProductDetails resolves id and derives its related products.
func (s *Storefront) ProductDetails(id string) (ProductDetails, error) {
	product, ok := s.Catalog.Product(id)
	if !ok {
		return ProductDetails{}, errors.ErrNotFound
	}
	return ProductDetails{
		Product: product,
		Related: s.Catalog.Related(product, RelatedLimit),
	}, nil
}

// Selection is what the shopper picked on the product page.
type Selection struct {
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Quantity int    `json:"quantity"`
}

// AddToCart validates sel against the product and adds it to the cart as
// Quantity separate single-unit adds. Selection problems are reported to n
// and returned as validation errors with the cart untouched.
func (s *Storefront) AddToCart(ctx context.Context, n notify.Notifier, id string, sel Selection) error {
	if n == nil {
		n = notify.Discard
	}

	product, ok := s.Catalog.Product(id)
	if !ok {
		return errors.ErrNotFound
	}

	if err := validateSelection(product, &sel, s.maxQuantity); err != nil {
		n.Error(err.Message)
		return err
	}

	item := models.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Size:     sel.Size,
		Color:    sel.Color,
		Quantity: 1,
	}

	var persistErr error
	for i := 0; i < sel.Quantity; i++ {
		if err := s.Cart.Add(ctx, item); err != nil {
			persistErr = err
		}
	}

	n.Success(fmt.Sprintf("Added %d %s(s) to cart!", sel.Quantity, product.Name))
	return persistErr
}

func validateSelection(product models.Product, sel *Selection, maxQuantity int) *errors.ValidationError {
	if sel.Quantity < 1 {
		sel.Quantity = 1
	}
	if sel.Quantity > maxQuantity {
		return errors.NewValidationError("quantity", fmt.Sprintf("quantity too large (max %d)", maxQuantity))
	}

	if product.HasSizes() {
		if sel.Size == "" || !contains(product.Sizes, sel.Size) {
			return errors.NewValidationError("size", "Please select a size")
		}
	} else {
		sel.Size = ""
	}

	if product.HasColors() {
		if sel.Color == "" || !contains(product.Colors, sel.Color) {
			return errors.NewValidationError("color", "Please select a color")
		}
	} else {
		sel.Color = ""
	}

	return nil
}

// ToggleWishlist adds the product to the wishlist or removes it if already
// saved. The bool is true when the product ends up in the wishlist.
func (s *Storefront) ToggleWishlist(ctx context.Context, n notify.Notifier, id string) (bool, error) {
	if n == nil {
		n = notify.Discard
	}

	product, ok := s.Catalog.Product(id)
	if !ok {
		return false, errors.ErrNotFound
	}

	added, err := s.Wishlist.Toggle(ctx, models.WishlistItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Category: product.Category,
	})

	if added {
		n.Success(fmt.Sprintf("Added %s to wishlist!", product.Name))
	} else {
		n.Success(fmt.Sprintf("Removed %s from wishlist", product.Name))
	}
	return added, err
}

// Checkout turns the cart into a pending order and empties the cart. The
// order is returned even when persisting it failed; the error is then a
// *errors.PersistError.
func (s *Storefront) Checkout(ctx context.Context, n notify.Notifier, customer models.CustomerDetails, payment models.PaymentDetails) (models.Order, error) {
	if n == nil {
		n = notify.Discard
	}

	items := s.Cart.Items()
	if len(items) == 0 {
		err := errors.NewValidationError("cart", "Your cart is empty")
		n.Error(err.Message)
		return models.Order{}, err
	}

	if err := ValidateCheckout(&customer, &payment); err != nil {
		var v *errors.ValidationError
		if errors.As(err, &v) {
			n.Error(v.Message)
		}
		return models.Order{}, err
	}

	lines := make([]models.OrderItem, len(items))
	for i, item := range items {
		lines[i] = item.ToOrderItem()
	}

	no := models.NewOrder{
		CustomerName:     customer.Name,
		CustomerPhone:    customer.Phone,
		CustomerEmail:    customer.Email,
		CustomerAddress:  customer.Address,
		Items:            lines,
		Total:            OrderTotal(lines),
		PaymentMethod:    payment.Method,
		PaymentReference: payment.Reference,
		IsPaid:           payment.Paid,
	}
	if payment.Method == models.PaymentMethodMomo {
		no.MomoNumber = payment.MomoNumber
		no.Network = payment.Network
	}

	order, orderErr := s.Orders.Add(ctx, no)
	cartErr := s.Cart.Clear(ctx)

	n.Success(fmt.Sprintf("Order %s placed successfully!", order.ID))
	return order, errors.Join(orderErr, cartErr)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
