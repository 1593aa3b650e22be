package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	catalog service.CatalogService
	pricing service.PricingService
}

func NewProductHandler(catalog service.CatalogService, pricing service.PricingService) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		pricing: pricing,
	}
}

// Price quotes the resolved price for a product and option combination. The
// product_id accepts numeric ids and legacy slugs.
func (h *ProductHandler) Price(c echo.Context) error {
	var q dto.PriceQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	price := h.pricing.ResolvePrice(c.Request().Context(), q.ProductID, q.Size, q.Type, q.Shape)

	return c.JSON(http.StatusOK, dto.PriceResponse{
		ProductID: q.ProductID,
		Price:     price,
	})
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), false)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) AdminList(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), true)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req dto.ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// -------- variations --------

func (h *ProductHandler) ListVariations(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	variations, err := h.catalog.ListVariations(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, variations)
}

func (h *ProductHandler) AddVariation(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.VariationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	variation, err := h.catalog.AddVariation(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, variation)
}

func (h *ProductHandler) UpdateVariation(c echo.Context) error {
	id, err := idParam(c, "variationID")
	if err != nil {
		return err
	}

	var req dto.VariationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	variation, err := h.catalog.UpdateVariation(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, variation)
}

func (h *ProductHandler) DeleteVariation(c echo.Context) error {
	id, err := idParam(c, "variationID")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteVariation(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// -------- categories --------

func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) CreateCategory(c echo.Context) error {
	var req dto.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *ProductHandler) UpdateCategory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.UpdateCategory(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, category)
}

func (h *ProductHandler) DeleteCategory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteCategory(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
