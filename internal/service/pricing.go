package service

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"
)

// Legacy slugs predate numeric product ids and are still accepted at the API
// boundary. The maps below translate them and carry the base prices that were
// hard-coded before the products table existed.
var legacyProductIDs = map[string]uint{
	"classic":  1,
	"dark":     2,
	"assorted": 3,
	"DubaiBar": 4,
}

var legacyBasePrices = map[string]int{
	"classic":  800,  // cents
	"dark":     1000, // cents
	"assorted": 1895, // cents
	"DubaiBar": 1495, // cents
}

// Per-legacy-product size surcharges in dollars. Products without an entry
// get the generic multiplier instead.
var legacySizeSurcharges = map[string]map[string]float64{
	"classic": {
		"medium": 4.00,
		"large":  8.00,
	},
	"DubaiBar": {
		"medium": 5.00,
		"large":  10.00,
	},
}

const (
	dubaiBarSlug = "DubaiBar"
	// DubaiBar price is pinned regardless of everything else computed
	// before it.
	dubaiBarPrice = 14.95

	darkChocolateSurcharge = 2.00
)

type PricingService interface {
	// ResolveBasePrice accepts a numeric id, a numeric string or a legacy
	// slug. An unresolvable identifier yields 0, not an error.
	ResolveBasePrice(ctx context.Context, identifier string) float64
	ResolvePrice(ctx context.Context, identifier, size, typ, shape string) float64
	// ResolveProductID translates a slug or numeric string to the numeric
	// product id, falling back to a live name match.
	ResolveProductID(ctx context.Context, identifier string) (uint, bool)
}

type pricingServiceImpl struct {
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
	logger        *slog.Logger
}

func NewPricingService(
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
	logger *slog.Logger,
) PricingService {
	return &pricingServiceImpl{
		productRepo:   productRepo,
		variationRepo: variationRepo,
		logger:        logger,
	}
}

// NormalizeAmount fixes up the unit of a stored price. Rows written by the
// current admin screens store cents; a batch of early rows stored whole
// dollars. Values of 20 and up are read as cents. Values in [10,20) are read
// as dollars when the fractional cents look like a price ending a human
// would type (.00/.50/.95/.99), otherwise as cents. Below 10 is always
// dollars. This is a heuristic, not a contract.
func NormalizeAmount(raw float64) float64 {
	if raw >= 20 {
		return raw / 100
	}
	if raw >= 10 {
		cents := int(math.Round(raw*100)) % 100
		switch cents {
		case 0, 50, 95, 99:
			return raw
		}
		return raw / 100
	}
	return raw
}

func (s *pricingServiceImpl) ResolveBasePrice(ctx context.Context, identifier string) float64 {
	if raw, ok := legacyBasePrices[identifier]; ok {
		return NormalizeAmount(float64(raw))
	}

	id, ok := s.ResolveProductID(ctx, identifier)
	if !ok {
		s.logger.Warn("unresolvable product identifier, defaulting price to 0", "identifier", identifier)
		return 0
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("base price lookup failed", "identifier", identifier, "error", err)
		return 0
	}

	return NormalizeAmount(float64(product.BasePrice))
}

func (s *pricingServiceImpl) ResolveProductID(ctx context.Context, identifier string) (uint, bool) {
	if id, ok := legacyProductIDs[identifier]; ok {
		return id, true
	}

	if n, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		return uint(n), true
	}

	product, err := s.productRepo.FindByName(ctx, identifier)
	if err != nil {
		return 0, false
	}

	return product.ID, true
}

func (s *pricingServiceImpl) ResolvePrice(ctx context.Context, identifier, size, typ, shape string) float64 {
	price := s.ResolveBasePrice(ctx, identifier)

	if isDarkChocolate(typ) {
		price += darkChocolateSurcharge
	}

	price = s.applySizeSurcharge(identifier, size, price)

	if id, ok := s.ResolveProductID(ctx, identifier); ok {
		price = s.applyVariations(ctx, id, size, typ, shape, price)
	}

	if isDubaiBar(identifier) {
		price = dubaiBarPrice
	}

	return price
}

func (s *pricingServiceImpl) applySizeSurcharge(identifier, size string, price float64) float64 {
	if size == "" {
		return price
	}

	if surcharges, ok := legacySizeSurcharges[identifier]; ok {
		if extra, ok := surcharges[strings.ToLower(size)]; ok {
			return price + extra
		}
		return price
	}

	switch strings.ToLower(size) {
	case "medium":
		return price * 1.5
	case "large":
		return price * 2
	}

	return price
}

// applyVariations layers matching variant rows over the running price:
// single-dimension matches first, then pairs, then the full triple. Within a
// specificity level the lowest display order wins. Additive rows add their
// modifier, absolute rows replace the running total. A lookup failure is
// logged and the partial price stands.
func (s *pricingServiceImpl) applyVariations(ctx context.Context, productID uint, size, typ, shape string, price float64) float64 {
	variations, err := s.variationRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Warn("variation lookup failed, keeping partial price", "product_id", productID, "error", err)
		return price
	}

	for specificity := 1; specificity <= 3; specificity++ {
		for _, v := range variations {
			if variationSpecificity(v) != specificity {
				continue
			}
			if !variationMatches(v, size, typ, shape) {
				continue
			}

			if v.IsAbsolute {
				price = float64(v.PriceModifier) / 100
			} else {
				price += float64(v.PriceModifier) / 100
			}
			break // rows are display-order sorted, first match per level wins
		}
	}

	return price
}

func variationSpecificity(v *model.ProductPriceVariation) int {
	n := 0
	if v.Size != "" {
		n++
	}
	if v.Type != "" {
		n++
	}
	if v.Shape != "" {
		n++
	}
	return n
}

func variationMatches(v *model.ProductPriceVariation, size, typ, shape string) bool {
	if v.Size != "" && !strings.EqualFold(v.Size, size) {
		return false
	}
	if v.Type != "" && !strings.EqualFold(v.Type, typ) {
		return false
	}
	if v.Shape != "" && !strings.EqualFold(v.Shape, shape) {
		return false
	}
	return true
}

func isDarkChocolate(typ string) bool {
	return strings.EqualFold(typ, "dark") || strings.EqualFold(typ, "dark chocolate")
}

func isDubaiBar(identifier string) bool {
	if identifier == dubaiBarSlug {
		return true
	}
	n, err := strconv.ParseUint(identifier, 10, 64)
	return err == nil && uint(n) == legacyProductIDs[dubaiBarSlug]
}
