package catalog

import (
	"context"
	"errors"
	"fl350-gear-hub/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	products []models.Product
	err      error
	calls    int
}

func (f *fakeSource) FetchAll(context.Context) ([]models.Product, error) {
	f.calls++
	return f.products, f.err
}

func remoteProduct() models.Product {
	return models.Product{ID: "remote-cap", Name: "FL350 CREW CAP", Category: models.CategoryAccessories, Price: decimal.NewFromInt(30)}
}

func TestResolve_StaticByDefault(t *testing.T) {
	c := Resolve(Config{}, zap.NewNop())
	assert.Equal(t, KindStatic, c.Kind())

	products, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestResolve_RemoteWithoutStoreDegradesToStatic(t *testing.T) {
	c := Resolve(Config{Source: "mongo"}, zap.NewNop())
	assert.Equal(t, KindStatic, c.Kind())
}

func TestFetchAll_RemoteSuccess(t *testing.T) {
	remote := &fakeSource{products: []models.Product{remoteProduct()}}
	c := New(remote, NewStaticSource(), zap.NewNop())

	products, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "remote-cap", products[0].ID)
}

func TestFetchAll_FallsBackOnError(t *testing.T) {
	remote := &fakeSource{err: errors.New("connection refused")}
	c := New(remote, NewStaticSource(), zap.NewNop())

	products, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, 1, remote.calls)
}

func TestFetchAll_FallsBackOnEmpty(t *testing.T) {
	c := New(&fakeSource{}, NewStaticSource(), zap.NewNop())

	products, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestGet(t *testing.T) {
	c := Resolve(Config{Source: "static"}, zap.NewNop())

	product, err := c.Get(context.Background(), "v-speeds-tee")
	require.NoError(t, err)
	assert.Equal(t, "V-SPEEDS TECH TEE", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(45)))

	_, err = c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestStaticSource_ReturnsCopy(t *testing.T) {
	src := NewStaticSource()
	first, _ := src.FetchAll(context.Background())
	wantSpec := first[0].Specs[0]
	first[0].Name = "mutated"
	first[0].Specs[0] = "mutated"
	if len(first[0].Features) > 0 {
		first[0].Features[0] = "mutated"
	}

	second, _ := src.FetchAll(context.Background())
	assert.Equal(t, "CLEARED FL350 HOODIE", second[0].Name)
	assert.Equal(t, wantSpec, second[0].Specs[0])
	assert.NotContains(t, second[0].Features, "mutated")
}

func TestStaticProductsAreValid(t *testing.T) {
	for _, p := range staticProducts {
		assert.True(t, p.Category.Valid(), p.ID)
		assert.False(t, p.Price.IsNegative(), p.ID)
		assert.NotEmpty(t, p.Specs, p.ID)
	}
}

func TestProductDocumentToProduct(t *testing.T) {
	doc := productDocument{ID: "x", Name: "X", Category: "Hoodie", Price: 85.5, Specs: []string{"a"}}
	p := doc.toProduct()
	assert.Equal(t, models.CategoryHoodie, p.Category)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("85.5")))
}
