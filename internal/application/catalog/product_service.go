package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ProductService handles the product catalog. Reads are open to every role,
// writes to Administrator and ShopManager. The full listing is served from a
// snapshot cache that every write invalidates.
type ProductService struct {
	productRepo catalog.ProductRepository
	listCache   shared.SnapshotCache[[]catalog.ProductType]
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, listCache shared.SnapshotCache[[]catalog.ProductType], logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		listCache:   listCache,
		logger:      logger,
	}
}

// Create registers a new product type. The barcode must be a valid GTIN and
// unique in the catalog.
func (s *ProductService) Create(ctx context.Context, p *identity.Principal, req CreateProductRequest) (*ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogWrite); err != nil {
		return nil, err
	}

	product, err := catalog.NewProductType(req.Code, req.Description, req.PricePerUnit, req.Notes)
	if err != nil {
		return nil, err
	}

	taken, err := s.productRepo.ExistsByCode(ctx, product.Code, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this barcode already exists")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.listCache.Invalidate()

	s.logger.Info("Product created",
		zap.String("code", string(product.Code)),
		zap.String("description", product.Description),
		zap.String("created_by", p.Username),
	)

	resp := NewProductResponse(product)
	return &resp, nil
}

// Update replaces the descriptive fields of a product. Quantity and position
// are managed by their own operations and stay untouched.
func (s *ProductService) Update(ctx context.Context, p *identity.Principal, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogWrite); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Code, req.Description, req.PricePerUnit, req.Notes); err != nil {
		return nil, err
	}

	taken, err := s.productRepo.ExistsByCode(ctx, product.Code, product.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this barcode already exists")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.listCache.Invalidate()

	resp := NewProductResponse(product)
	return &resp, nil
}

// Delete removes a product type from the catalog
func (s *ProductService) Delete(ctx context.Context, p *identity.Principal, id uuid.UUID) error {
	if err := identity.Authorize(p, identity.CatalogWrite); err != nil {
		return err
	}
	if id == uuid.Nil {
		return shared.ErrInvalidIdentifier
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.listCache.Invalidate()

	s.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("deleted_by", p.Username),
	)
	return nil
}

// SetPosition shelves a product at the given location, or clears the shelf
// when the position is empty. An occupied shelf is rejected.
func (s *ProductService) SetPosition(ctx context.Context, p *identity.Principal, id uuid.UUID, req SetPositionRequest) (*ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogWrite); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Position != "" {
		pos, err := catalog.ParsePosition(req.Position)
		if err != nil {
			return nil, err
		}
		occupied, err := s.productRepo.ExistsByPosition(ctx, pos, product.ID)
		if err != nil {
			return nil, err
		}
		if occupied {
			return nil, shared.NewDomainError("POSITION_OCCUPIED", "Another product already occupies this position")
		}
	}

	if err := product.SetPosition(req.Position); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.listCache.Invalidate()

	resp := NewProductResponse(product)
	return &resp, nil
}

// AdjustQuantity applies a signed stock delta to a shelved product
func (s *ProductService) AdjustQuantity(ctx context.Context, p *identity.Principal, id uuid.UUID, req AdjustQuantityRequest) (*ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogWrite); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustQuantity(req.Delta); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.listCache.Invalidate()

	resp := NewProductResponse(product)
	return &resp, nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, p *identity.Principal, id uuid.UUID) (*ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogRead); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := NewProductResponse(product)
	return &resp, nil
}

// FindByCode returns the product carrying the given barcode
func (s *ProductService) FindByCode(ctx context.Context, p *identity.Principal, code string) (*ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogRead); err != nil {
		return nil, err
	}

	barcode, err := catalog.ParseBarcode(code)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByCode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	resp := NewProductResponse(product)
	return &resp, nil
}

// FindByDescription returns every product whose description contains the
// text, ordered by description. Empty text returns the whole catalog.
func (s *ProductService) FindByDescription(ctx context.Context, p *identity.Principal, text string) ([]ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogRead); err != nil {
		return nil, err
	}

	products, err := s.productRepo.SearchByDescription(ctx, text)
	if err != nil {
		return nil, err
	}
	return NewProductResponses(products), nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, p *identity.Principal, filter shared.Filter) ([]ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogRead); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return NewProductResponses(products), nil
}

// Snapshot returns the full catalog from the read-through cache. It is the
// backing read for the sale screen, where the listing is hit far more often
// than it changes.
func (s *ProductService) Snapshot(ctx context.Context, p *identity.Principal) ([]ProductResponse, error) {
	if err := identity.Authorize(p, identity.CatalogRead); err != nil {
		return nil, err
	}

	products, err := s.listCache.Get(ctx, func(ctx context.Context) ([]catalog.ProductType, error) {
		return s.productRepo.SearchByDescription(ctx, "")
	})
	if err != nil {
		return nil, err
	}
	return NewProductResponses(products), nil
}

// ProductByCode resolves a barcode for the trade services. It is an internal
// lookup and carries no authorization of its own.
func (s *ProductService) ProductByCode(ctx context.Context, code catalog.Barcode) (*catalog.ProductType, error) {
	return s.productRepo.FindByCode(ctx, code)
}

// AdjustStock applies a signed stock delta on behalf of the trade services.
// Sales subtract, returns and deletions add back.
func (s *ProductService) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.AdjustQuantity(delta); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	s.listCache.Invalidate()
	return nil
}
