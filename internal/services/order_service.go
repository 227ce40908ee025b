package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"emporium/internal/domain"
	"emporium/internal/repos"
	"emporium/internal/validate"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo) *OrderService {
	return &OrderService{Orders: orders, Prods: prods}
}

type LineItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type OrderInput struct {
	Items            []LineItem `json:"orderItems"`
	ShippingAddress1 string     `json:"shippingAddress1"`
	ShippingAddress2 string     `json:"shippingAddress2"`
	City             string     `json:"city"`
	Zip              string     `json:"zip"`
	Country          string     `json:"country"`
	Phone            string     `json:"phone"`
	// TotalPrice is accepted for wire compatibility but never trusted; the
	// total is always recomputed from current product prices.
	TotalPrice float64 `json:"totalPrice"`
}

// Place runs the order composition workflow: validate every line item, create
// one order item per line preserving submitted order, recompute the total from
// the products' current prices and persist the order. All writes happen in one
// transaction, so a failing line leaves nothing behind.
func (s *OrderService) Place(userID string, in OrderInput) (domain.Order, error) {
	if len(in.Items) == 0 {
		return domain.Order{}, invalid("please provide order items")
	}
	for _, f := range []struct{ name, val string }{
		{"shippingAddress1", in.ShippingAddress1},
		{"city", in.City},
		{"zip", in.Zip},
		{"country", in.Country},
		{"phone", in.Phone},
	} {
		if f.val == "" {
			return domain.Order{}, invalid("please provide a " + f.name)
		}
	}

	// All lines are checked before anything is written.
	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(in.Items))
	for i, line := range in.Items {
		pid, ok := validate.ID(line.ProductID)
		if !ok {
			return domain.Order{}, invalid("invalid product id")
		}
		if !validate.Quantity(line.Quantity) {
			return domain.Order{}, invalid("quantity must be greater than 0")
		}
		p, err := s.Prods.Get(pid)
		if err != nil {
			return domain.Order{}, notFound("product")
		}
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: pid,
			Quantity:  line.Quantity,
			Position:  i,
		})
	}
	totalPrice, _ := total.Round(2).Float64()

	o := domain.Order{
		ID:               uuid.NewString(),
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           domain.OrderPending,
		TotalPrice:       totalPrice,
		UserID:           userID,
	}
	if err := s.Orders.Compose(o, items); err != nil {
		return domain.Order{}, err
	}

	return s.load(o.ID)
}

// load re-reads a persisted order with its expansions (user name, line items
// with product name/price).
func (s *OrderService) load(id string) (domain.Order, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.Orders.Items(id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

// Mine lists the caller's orders, newest first, fully expanded.
func (s *OrderService) Mine(userID string) ([]domain.Order, error) {
	orders, err := s.Orders.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.expand(orders)
}

// All is the admin listing: every order regardless of owner.
func (s *OrderService) All() ([]domain.Order, error) {
	orders, err := s.Orders.ListAll()
	if err != nil {
		return nil, err
	}
	return s.expand(orders)
}

func (s *OrderService) expand(orders []domain.Order) ([]domain.Order, error) {
	for i := range orders {
		items, err := s.Orders.Items(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// GetOwned fetches one order with an ownership check. A non-owner gets the
// same "order not found" as a missing order, so existence is not leaked.
func (s *OrderService) GetOwned(id, userID string) (domain.Order, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Order{}, invalid("invalid order id")
	}
	o, err := s.load(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, notFound("order")
	}
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != userID {
		return domain.Order{}, notFound("order")
	}
	return o, nil
}

// UpdateStatus advances an order pending→shipped. With asAdmin the ownership
// filter is skipped; otherwise only the owner's own order can move.
func (s *OrderService) UpdateStatus(id, userID, status string, asAdmin bool) (domain.Order, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Order{}, invalid("invalid order id")
	}
	if status != domain.OrderShipped {
		return domain.Order{}, invalid("status can only move to shipped")
	}
	owner := userID
	if asAdmin {
		owner = ""
	}
	moved, err := s.Orders.MarkShipped(id, owner)
	if err != nil {
		return domain.Order{}, err
	}
	if !moved {
		return domain.Order{}, notFound("order")
	}
	return s.load(id)
}

// DeleteOwned removes the caller's order together with all its line items.
func (s *OrderService) DeleteOwned(id, userID string) error {
	id, ok := validate.ID(id)
	if !ok {
		return invalid("invalid order id")
	}
	deleted, err := s.Orders.DeleteCascade(id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("order")
	}
	return nil
}

func (s *OrderService) TotalSales() (float64, error) { return s.Orders.TotalSales() }

func (s *OrderService) Count() (int, error) { return s.Orders.Count() }
