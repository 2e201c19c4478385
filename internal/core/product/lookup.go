package product

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Product is the lookup result for a barcode.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Lookup resolves barcodes against an external product database, trying a
// primary endpoint and then a fallback endpoint.
type Lookup struct {
	cfg    config.LookupConfig
	client *resty.Client
}

// NewLookup builds a lookup client from the configuration.
func NewLookup(cfg config.LookupConfig) *Lookup {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "pantry-tracker/1.0")

	return &Lookup{
		cfg:    cfg,
		client: client,
	}
}

// openFoodFactsResponse mirrors the subset of the product payload we read.
type openFoodFactsResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

// Find resolves a barcode. A missing product returns (nil, nil) — only
// total transport failure across both endpoints is an error.
func (l *Lookup) Find(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, common.NewValidationError("barcode is required")
	}

	var lastErr error
	for _, base := range []string{l.cfg.PrimaryURL, l.cfg.FallbackURL} {
		if base == "" {
			continue
		}

		product, found, err := l.query(ctx, base, barcode)
		if err != nil {
			common.LogWarn("product lookup endpoint failed",
				zap.String("endpoint", base),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if !found {
			// A definite "no such product" answer; no point asking the
			// fallback endpoint of the same database.
			return nil, nil
		}
		return product, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("product lookup failed: %w", lastErr)
	}
	return nil, nil
}

func (l *Lookup) query(ctx context.Context, base, barcode string) (*Product, bool, error) {
	var payload openFoodFactsResponse

	resp, err := l.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("%s/api/v0/product/%s.json", strings.TrimRight(base, "/"), barcode))

	if err != nil {
		return nil, false, err
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, false, fmt.Errorf("lookup endpoint returned status %d", resp.StatusCode())
	}

	if payload.Status != 1 || payload.Product.ProductName == "" {
		return nil, false, nil
	}

	return &Product{
		Barcode:  barcode,
		Name:     payload.Product.ProductName,
		ImageURL: payload.Product.ImageURL,
	}, true, nil
}
