package domain

// Image is an uploaded picture held by the remote asset store. AssetID is the
// opaque handle needed to release it later.
type Image struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId"`
}

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Color     string `db:"color" json:"color,omitempty"`
	Icon      string `db:"icon" json:"icon,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Product struct {
	ID              string  `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Description     string  `db:"description" json:"description"`
	RichDescription string  `db:"rich_description" json:"richDescription,omitempty"`
	ImageURL        string  `db:"image_url" json:"-"`
	ImageAssetID    string  `db:"image_asset_id" json:"-"`
	Image           Image   `db:"-" json:"image"`
	ImagesJSON      string  `db:"images_json" json:"-"`
	Images          []Image `db:"-" json:"images"`
	Brand           string  `db:"brand" json:"brand,omitempty"`
	Price           float64 `db:"price" json:"price"`
	CategoryID      string  `db:"category_id" json:"category"`
	CategoryName    string  `db:"category_name" json:"categoryName,omitempty"`
	CountInStock    int     `db:"count_in_stock" json:"countInStock"`
	Rating          float64 `db:"rating" json:"rating"`
	NumReviews      int     `db:"num_reviews" json:"numReviews"`
	IsFeatured      bool    `db:"is_featured" json:"isFeatured"`
	CreatedAt       string  `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt       string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// OrderItem is one line of an order. It is created only by the order
// composition workflow and owned by exactly one order.
type OrderItem struct {
	ID        string `db:"id" json:"id"`
	OrderID   string `db:"order_id" json:"-"`
	ProductID string `db:"product_id" json:"product"`
	Quantity  int    `db:"quantity" json:"quantity"`
	// Position records the line's place in the submitted order.
	Position int `db:"position" json:"-"`

	// Filled from the products table on reads.
	ProductName  string  `db:"product_name" json:"productName,omitempty"`
	ProductPrice float64 `db:"product_price" json:"productPrice,omitempty"`
}

const (
	OrderPending = "pending"
	OrderShipped = "shipped"
)

type Order struct {
	ID               string      `db:"id" json:"id"`
	ShippingAddress1 string      `db:"shipping_address1" json:"shippingAddress1"`
	ShippingAddress2 string      `db:"shipping_address2" json:"shippingAddress2,omitempty"`
	City             string      `db:"city" json:"city"`
	Zip              string      `db:"zip" json:"zip"`
	Country          string      `db:"country" json:"country"`
	Phone            string      `db:"phone" json:"phone"`
	Status           string      `db:"status" json:"status"`
	TotalPrice       float64     `db:"total_price" json:"totalPrice"`
	UserID           string      `db:"user_id" json:"user"`
	UserName         string      `db:"user_name" json:"userName,omitempty"`
	Items            []OrderItem `db:"-" json:"orderItems"`
	CreatedAt        string      `db:"created_at" json:"createdAt,omitempty"`
}
