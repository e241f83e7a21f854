package product_controller

import (
	"github.com/fitgear/fitgear-api/services"
)

var catalogService *services.CatalogService

// Init wires the product handlers to the catalog service.
func Init(catalog *services.CatalogService) {
	catalogService = catalog
}
