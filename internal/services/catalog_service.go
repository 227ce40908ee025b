package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"emporium/internal/assets"
	"emporium/internal/domain"
	"emporium/internal/repos"
	"emporium/internal/validate"
)

// DefaultFeaturedCount caps the featured listing when no count is given.
const DefaultFeaturedCount = 5

const maxGalleryImages = 10

type CatalogService struct {
	Cats   *repos.CategoryRepo
	Prods  *repos.ProductRepo
	Assets assets.Store
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, store assets.Store) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Assets: store}
}

type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ProductInput carries both JSON and multipart form bodies (product creation
// arrives as multipart because of the image upload).
type ProductInput struct {
	Name            string  `json:"name" form:"name"`
	Description     string  `json:"description" form:"description"`
	RichDescription string  `json:"richDescription" form:"richDescription"`
	Brand           string  `json:"brand" form:"brand"`
	Price           float64 `json:"price" form:"price"`
	CategoryID      string  `json:"category" form:"category"`
	CountInStock    int     `json:"countInStock" form:"countInStock"`
	Rating          float64 `json:"rating" form:"rating"`
	NumReviews      int     `json:"numReviews" form:"numReviews"`
	IsFeatured      bool    `json:"isFeatured" form:"isFeatured"`
}

// Upload is one inbound file destined for the asset store.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// ---------- Categories ----------

func (s *CatalogService) AddCategory(in CategoryInput) (domain.Category, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Category{}, invalid("please provide a name")
	}
	color, ok := validate.Color(in.Color)
	if !ok {
		return domain.Category{}, invalid("please provide a valid color")
	}
	taken, err := s.Cats.ExistsByNameColor(name, color, "")
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, duplicate("category")
	}

	c := domain.Category{ID: uuid.NewString(), Name: name, Color: color, Icon: in.Icon}
	if err := s.Cats.Create(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) Categories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) Category(id string) (domain.Category, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Category{}, invalid("invalid category id")
	}
	c, err := s.Cats.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, notFound("category")
	}
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(id string, in CategoryInput) (domain.Category, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Category{}, invalid("invalid category id")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Category{}, invalid("please provide a name")
	}
	color, ok := validate.Color(in.Color)
	if !ok {
		return domain.Category{}, invalid("please provide a valid color")
	}
	taken, err := s.Cats.ExistsByNameColor(name, color, id)
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, duplicate("category")
	}

	updated, err := s.Cats.Update(domain.Category{ID: id, Name: name, Color: color, Icon: in.Icon})
	if err != nil {
		return domain.Category{}, err
	}
	if !updated {
		return domain.Category{}, notFound("category")
	}
	return s.Cats.Get(id)
}

func (s *CatalogService) DeleteCategory(id string) error {
	id, ok := validate.ID(id)
	if !ok {
		return invalid("invalid category id")
	}
	deleted, err := s.Cats.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("category")
	}
	return nil
}

// ---------- Products ----------

// checkProductInput validates a submitted product and returns the normalized
// category id; the caller persists that id, never the raw input. A category
// that fails the referent check is a validation fault, not a missing target.
func (s *CatalogService) checkProductInput(in ProductInput, excludeID string) (string, error) {
	if in.Name == "" {
		return "", invalid("please provide a name")
	}
	if in.Description == "" {
		return "", invalid("please provide a description")
	}
	catID, ok := validate.ID(in.CategoryID)
	if !ok {
		return "", invalid("invalid category id")
	}
	exists, err := s.Cats.Exists(catID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", invalid("category not found")
	}
	if !validate.Price(in.Price) {
		return "", invalid("price must not be negative")
	}
	if !validate.Stock(in.CountInStock) {
		return "", invalid("countInStock must be between 0 and 255")
	}
	taken, err := s.Prods.ExistsByName(in.Name, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", duplicate("product")
	}
	return catID, nil
}

// AddProduct validates the submitted product, uploads the primary image when
// one is present and persists the record. Prices are normalized to two
// decimal places on the way in.
func (s *CatalogService) AddProduct(in ProductInput, image *Upload) (domain.Product, error) {
	catID, err := s.checkProductInput(in, "")
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		RichDescription: in.RichDescription,
		Brand:           in.Brand,
		Price:           normalizePrice(in.Price),
		CategoryID:      catID,
		CountInStock:    in.CountInStock,
		Rating:          in.Rating,
		NumReviews:      in.NumReviews,
		IsFeatured:      in.IsFeatured,
		ImagesJSON:      "[]",
	}

	if image != nil {
		a, err := s.Assets.Upload(image.Filename, image.Reader)
		if err != nil {
			return domain.Product{}, fmt.Errorf("upload image: %w", err)
		}
		p.ImageURL = a.URL
		p.ImageAssetID = a.ID
	}

	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, err
	}
	decorate(&p)
	return p, nil
}

func (s *CatalogService) Products() ([]domain.Product, error) {
	out, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	decorateAll(out)
	return out, nil
}

func (s *CatalogService) Product(id string) (domain.Product, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Product{}, invalid("invalid product id")
	}
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, notFound("product")
	}
	if err != nil {
		return domain.Product{}, err
	}
	decorate(&p)
	return p, nil
}

// ProductsByCategories filters by a comma-separated category id list.
func (s *CatalogService) ProductsByCategories(csv string) ([]domain.Product, error) {
	ids, ok := validate.IDList(csv)
	if !ok {
		return nil, invalid("invalid category id list")
	}
	out, err := s.Prods.ListByCategories(ids)
	if err != nil {
		return nil, err
	}
	decorateAll(out)
	return out, nil
}

func (s *CatalogService) FeaturedProducts(count int) ([]domain.Product, error) {
	if count <= 0 {
		count = DefaultFeaturedCount
	}
	out, err := s.Prods.Featured(count)
	if err != nil {
		return nil, err
	}
	decorateAll(out)
	return out, nil
}

func (s *CatalogService) ProductCount() (int, error) {
	return s.Prods.Count()
}

func (s *CatalogService) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Product{}, invalid("invalid product id")
	}
	catID, err := s.checkProductInput(in, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated, err := s.Prods.Update(domain.Product{
		ID:              id,
		Name:            in.Name,
		Description:     in.Description,
		RichDescription: in.RichDescription,
		Brand:           in.Brand,
		Price:           normalizePrice(in.Price),
		CategoryID:      catID,
		CountInStock:    in.CountInStock,
		Rating:          in.Rating,
		NumReviews:      in.NumReviews,
		IsFeatured:      in.IsFeatured,
	})
	if err != nil {
		return domain.Product{}, err
	}
	if !updated {
		return domain.Product{}, notFound("product")
	}
	return s.Product(id)
}

// UpdateProductGallery uploads up to ten secondary images and replaces the
// product's gallery with them.
func (s *CatalogService) UpdateProductGallery(id string, uploads []Upload) (domain.Product, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Product{}, invalid("invalid product id")
	}
	if len(uploads) == 0 {
		return domain.Product{}, invalid("please provide at least one image")
	}
	if len(uploads) > maxGalleryImages {
		return domain.Product{}, invalid("at most 10 gallery images are allowed")
	}
	if _, err := s.Prods.Get(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, notFound("product")
		}
		return domain.Product{}, err
	}

	images := make([]domain.Image, 0, len(uploads))
	for _, up := range uploads {
		a, err := s.Assets.Upload(up.Filename, up.Reader)
		if err != nil {
			return domain.Product{}, fmt.Errorf("upload gallery image: %w", err)
		}
		images = append(images, domain.Image{URL: a.URL, AssetID: a.ID})
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return domain.Product{}, err
	}

	if _, err := s.Prods.UpdateGallery(id, string(raw)); err != nil {
		return domain.Product{}, err
	}
	return s.Product(id)
}

// DeleteProduct releases the primary image first; a failed release keeps the
// record so no remote asset is orphaned.
func (s *CatalogService) DeleteProduct(id string) error {
	id, ok := validate.ID(id)
	if !ok {
		return invalid("invalid product id")
	}
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("product")
	}
	if err != nil {
		return err
	}

	if p.ImageAssetID != "" {
		if err := s.Assets.Release(p.ImageAssetID); err != nil {
			return fmt.Errorf("release image: %w", err)
		}
	}

	deleted, err := s.Prods.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("product")
	}
	return nil
}

// ---------- helpers ----------

func normalizePrice(p float64) float64 {
	out, _ := decimal.NewFromFloat(p).Round(2).Float64()
	return out
}

// decorate fills the JSON-facing image fields from their stored columns.
func decorate(p *domain.Product) {
	p.Image = domain.Image{URL: p.ImageURL, AssetID: p.ImageAssetID}
	p.Images = []domain.Image{}
	if p.ImagesJSON != "" {
		_ = json.Unmarshal([]byte(p.ImagesJSON), &p.Images)
	}
}

func decorateAll(ps []domain.Product) {
	for i := range ps {
		decorate(&ps[i])
	}
}
