package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emporium/internal/domain"
	"emporium/internal/repos"
	"emporium/internal/services"
)

func orderFixture(t *testing.T) (*services.OrderService, *repos.OrderRepo, *repos.ProductRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)

	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	for _, p := range []domain.Product{
		{ID: "p-console", Name: "Console", Description: "d", CategoryID: "cat-consoles", Price: 10, CountInStock: 5, ImagesJSON: "[]"},
		{ID: "p-radio", Name: "Radio", Description: "d", CategoryID: "cat-audio", Price: 5, CountInStock: 5, ImagesJSON: "[]"},
	} {
		require.NoError(t, prodRepo.Create(p))
	}

	return services.NewOrderService(orderRepo, prodRepo), orderRepo, prodRepo
}

func shippingFields(in *services.OrderInput) {
	in.ShippingAddress1 = "1 Main St"
	in.City = "College Park"
	in.Zip = "20742"
	in.Country = "US"
	in.Phone = "555-0100"
}

func TestPlaceComputesTotalFromCurrentPrices(t *testing.T) {
	svc, _, _ := orderFixture(t)

	in := services.OrderInput{
		Items: []services.LineItem{
			{ProductID: "p-console", Quantity: 2},
			{ProductID: "p-radio", Quantity: 3},
		},
		TotalPrice: 999, // caller-supplied total must be ignored
	}
	shippingFields(&in)

	o, err := svc.Place("u-alice", in)
	require.NoError(t, err)

	assert.Equal(t, 35.0, o.TotalPrice)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Equal(t, "u-alice", o.UserID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "p-console", o.Items[0].ProductID)
	assert.Equal(t, "p-radio", o.Items[1].ProductID)
	assert.Equal(t, "Console", o.Items[0].ProductName)
	assert.Equal(t, 10.0, o.Items[0].ProductPrice)
}

func TestPlacePreservesSubmittedLineOrder(t *testing.T) {
	svc, orders, _ := orderFixture(t)

	in := services.OrderInput{
		Items: []services.LineItem{
			{ProductID: "p-radio", Quantity: 1},
			{ProductID: "p-console", Quantity: 1},
		},
	}
	shippingFields(&in)

	o, err := svc.Place("u-alice", in)
	require.NoError(t, err)

	items, err := orders.Items(o.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p-radio", items[0].ProductID)
	assert.Equal(t, "p-console", items[1].ProductID)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, 1, items[1].Position)
}

func TestPlaceRejectsBadLines(t *testing.T) {
	svc, orders, _ := orderFixture(t)

	base := func(items []services.LineItem) services.OrderInput {
		in := services.OrderInput{Items: items}
		shippingFields(&in)
		return in
	}

	cases := []struct {
		name  string
		input services.OrderInput
	}{
		{"no items", base(nil)},
		{"malformed product id", base([]services.LineItem{{ProductID: "not valid!", Quantity: 1}})},
		{"zero quantity", base([]services.LineItem{{ProductID: "p-console", Quantity: 0}})},
		{"unknown product", base([]services.LineItem{{ProductID: "p-ghost", Quantity: 1}})},
		{"one bad line fails all", base([]services.LineItem{
			{ProductID: "p-console", Quantity: 1},
			{ProductID: "p-ghost", Quantity: 1},
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Place("u-alice", tc.input)
			require.Error(t, err)
		})
	}

	// No partial writes of any kind survived.
	n, err := orders.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlaceRequiresShippingFields(t *testing.T) {
	svc, _, _ := orderFixture(t)

	in := services.OrderInput{Items: []services.LineItem{{ProductID: "p-console", Quantity: 1}}}
	shippingFields(&in)
	in.Phone = ""

	_, err := svc.Place("u-alice", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
}

func TestGetOwnedHidesForeignOrders(t *testing.T) {
	svc, _, _ := orderFixture(t)

	in := services.OrderInput{Items: []services.LineItem{{ProductID: "p-console", Quantity: 1}}}
	shippingFields(&in)
	o, err := svc.Place("u-alice", in)
	require.NoError(t, err)

	_, err = svc.GetOwned(o.ID, "u-bob")
	require.EqualError(t, err, "order not found")

	got, err := svc.GetOwned(o.ID, "u-alice")
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestDeleteCascadesToOrderItems(t *testing.T) {
	svc, orders, _ := orderFixture(t)

	in := services.OrderInput{Items: []services.LineItem{
		{ProductID: "p-console", Quantity: 1},
		{ProductID: "p-radio", Quantity: 2},
	}}
	shippingFields(&in)
	o, err := svc.Place("u-alice", in)
	require.NoError(t, err)

	items, err := orders.Items(o.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// A non-owner cannot delete, and nothing is touched.
	require.EqualError(t, svc.DeleteOwned(o.ID, "u-bob"), "order not found")
	left, err := orders.Items(o.ID)
	require.NoError(t, err)
	assert.Len(t, left, 2)

	require.NoError(t, svc.DeleteOwned(o.ID, "u-alice"))
	for _, it := range items {
		_, err := orders.GetItem(it.ID)
		assert.Error(t, err, "order item %s should be gone", it.ID)
	}
	_, err = orders.Get(o.ID)
	assert.Error(t, err)
}

func TestUpdateStatusOnlyPendingToShipped(t *testing.T) {
	svc, _, _ := orderFixture(t)

	in := services.OrderInput{Items: []services.LineItem{{ProductID: "p-console", Quantity: 1}}}
	shippingFields(&in)
	o, err := svc.Place("u-alice", in)
	require.NoError(t, err)

	// Owner cannot set an unknown status.
	_, err = svc.UpdateStatus(o.ID, "u-alice", "cancelled", false)
	require.Error(t, err)

	// Another user cannot move someone else's order.
	_, err = svc.UpdateStatus(o.ID, "u-bob", domain.OrderShipped, false)
	require.EqualError(t, err, "order not found")

	got, err := svc.UpdateStatus(o.ID, "u-alice", domain.OrderShipped, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, got.Status)

	// shipped is terminal
	_, err = svc.UpdateStatus(o.ID, "u-alice", domain.OrderShipped, false)
	require.EqualError(t, err, "order not found")
}

func TestUpdateStatusAdminBypassesOwnership(t *testing.T) {
	svc, _, _ := orderFixture(t)

	in := services.OrderInput{Items: []services.LineItem{{ProductID: "p-radio", Quantity: 1}}}
	shippingFields(&in)
	o, err := svc.Place("u-alice", in)
	require.NoError(t, err)

	got, err := svc.UpdateStatus(o.ID, "u-admin", domain.OrderShipped, true)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, got.Status)
}

func TestTotalSalesAndCount(t *testing.T) {
	svc, _, _ := orderFixture(t)

	for _, items := range [][]services.LineItem{
		{{ProductID: "p-console", Quantity: 1}}, // 10
		{{ProductID: "p-radio", Quantity: 4}},   // 20
	} {
		in := services.OrderInput{Items: items}
		shippingFields(&in)
		_, err := svc.Place("u-alice", in)
		require.NoError(t, err)
	}

	total, err := svc.TotalSales()
	require.NoError(t, err)
	assert.Equal(t, 30.0, total)

	n, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMineReturnsOnlyOwnOrdersNewestFirst(t *testing.T) {
	svc, _, _ := orderFixture(t)

	place := func(user, product string) domain.Order {
		in := services.OrderInput{Items: []services.LineItem{{ProductID: product, Quantity: 1}}}
		shippingFields(&in)
		o, err := svc.Place(user, in)
		require.NoError(t, err)
		return o
	}
	place("u-alice", "p-console")
	place("u-bob", "p-radio")
	place("u-alice", "p-radio")

	mine, err := svc.Mine("u-alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, "u-alice", o.UserID)
		assert.NotEmpty(t, o.Items)
	}

	all, err := svc.All()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetOwnedSurfacesStoreFailures(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)

	prods := repos.NewProductRepo(db)
	require.NoError(t, prods.Create(domain.Product{
		ID: "p-lone", Name: "Lone", Description: "d", CategoryID: "cat-consoles",
		Price: 10, CountInStock: 5, ImagesJSON: "[]",
	}))
	svc := services.NewOrderService(repos.NewOrderRepo(db), prods)

	in := services.OrderInput{Items: []services.LineItem{{ProductID: "p-lone", Quantity: 1}}}
	shippingFields(&in)
	o, err := svc.Place("u-alice", in)
	require.NoError(t, err)

	// an absent order still reads as not found
	_, err = svc.GetOwned("o-ghost", "u-alice")
	require.EqualError(t, err, "order not found")

	// a store failure must not masquerade as a missing order
	require.NoError(t, db.Close())
	_, err = svc.GetOwned(o.ID, "u-alice")
	require.Error(t, err)
	var nf *services.NotFoundError
	assert.False(t, errors.As(err, &nf))
}
