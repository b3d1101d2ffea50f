package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-marketplace-backend/internal/models"
)

type stubCategoryRepo struct {
	categories map[primitive.ObjectID]*models.ProductCategory
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[primitive.ObjectID]*models.ProductCategory)}
}

func (r *stubCategoryRepo) Create(ctx context.Context, category *models.ProductCategory) error {
	category.ID = primitive.NewObjectID()
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProductCategory, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return category, nil
}

func (r *stubCategoryRepo) Update(ctx context.Context, category *models.ProductCategory) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.ProductCategory, error) {
	var out []models.ProductCategory
	for _, category := range r.categories {
		if category.RestaurantID == restaurantID && category.IsActive {
			out = append(out, *category)
		}
	}
	return out, nil
}

func newProductFixture(t *testing.T) (*ProductService, primitive.ObjectID) {
	t.Helper()

	productRepo := &stubProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
	categoryRepo := newStubCategoryRepo()
	service := NewProductService(productRepo, categoryRepo, nil, nil, nil)

	category, err := service.CreateCategory(context.Background(), "5", &CreateCategoryRequest{Name: "Mains"})
	require.NoError(t, err)
	return service, category.ID
}

func TestCreateProductNormalizesPrice(t *testing.T) {
	service, categoryID := newProductFixture(t)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, "5", &CreateProductRequest{
		Name:       "Margherita",
		CategoryID: categoryID.Hex(),
		Price:      "10.5",
		Quantity:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.50", product.Price)
	assert.Equal(t, "Mains", product.CategoryName)
	assert.True(t, product.Available)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	service, categoryID := newProductFixture(t)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, "5", &CreateProductRequest{
		Name:       "Margherita",
		CategoryID: categoryID.Hex(),
		Price:      "ten euros",
	})
	assert.EqualError(t, err, "price must be a decimal number")

	_, err = service.CreateProduct(ctx, "5", &CreateProductRequest{
		Name:       "Margherita",
		CategoryID: categoryID.Hex(),
		Price:      "-1.00",
	})
	assert.EqualError(t, err, "price must not be negative")
}

func TestCreateProductChecksCategoryOwnership(t *testing.T) {
	service, categoryID := newProductFixture(t)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, "7", &CreateProductRequest{
		Name:       "Cheeseburger",
		CategoryID: categoryID.Hex(),
		Price:      "8.00",
	})
	assert.EqualError(t, err, "category does not belong to this restaurant")
}

func TestUpdateProductPatchesFields(t *testing.T) {
	service, categoryID := newProductFixture(t)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, "5", &CreateProductRequest{
		Name:       "Margherita",
		CategoryID: categoryID.Hex(),
		Price:      "10.00",
	})
	require.NoError(t, err)

	newPrice := "12.5"
	unavailable := false
	updated, err := service.UpdateProduct(ctx, "5", product.ID.Hex(), &UpdateProductRequest{
		Price:     &newPrice,
		Available: &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "12.50", updated.Price)
	assert.False(t, updated.Available)
	// Untouched fields keep their values.
	assert.Equal(t, "Margherita", updated.Name)
}

func TestUpdateProductChecksOwnership(t *testing.T) {
	service, categoryID := newProductFixture(t)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, "5", &CreateProductRequest{
		Name:       "Margherita",
		CategoryID: categoryID.Hex(),
		Price:      "10.00",
	})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = service.UpdateProduct(ctx, "7", product.ID.Hex(), &UpdateProductRequest{Name: &name})
	assert.EqualError(t, err, "product does not belong to this restaurant")
}

func TestGetMenuListsCategoriesAndProducts(t *testing.T) {
	service, categoryID := newProductFixture(t)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, "5", &CreateProductRequest{
		Name:       "Margherita",
		CategoryID: categoryID.Hex(),
		Price:      "10.00",
	})
	require.NoError(t, err)

	menu, err := service.GetMenu(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "5", menu.RestaurantID)
	require.Len(t, menu.Categories, 1)
	require.Len(t, menu.Products, 1)
	assert.Equal(t, "Margherita", menu.Products[0].Name)
}

func TestDeleteCategoryChecksOwnership(t *testing.T) {
	service, categoryID := newProductFixture(t)
	ctx := context.Background()

	assert.EqualError(t, service.DeleteCategory(ctx, "7", categoryID.Hex()), "category does not belong to this restaurant")
	require.NoError(t, service.DeleteCategory(ctx, "5", categoryID.Hex()))

	categories, err := service.GetCategories(ctx, "5")
	require.NoError(t, err)
	assert.Empty(t, categories)
}
