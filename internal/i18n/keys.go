// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// Search
	KeySearchQueryRequired = "search.query_required"
	KeySearchClickLogged   = "search.click_logged"
	KeySearchUnavailable   = "search.unavailable"

	// Parts
	KeyPartCreated  = "part.created"
	KeyPartUpdated  = "part.updated"
	KeyPartNotFound = "part.not_found"

	// Vehicles
	KeyVehicleNotFound      = "vehicle.not_found"
	KeyVehicleSaved         = "vehicle.saved"
	KeyVehiclePlateRequired = "vehicle.plate_required"

	// OEM parts
	KeyOemNotFound      = "oem.not_found"
	KeyOemDeleted       = "oem.deleted"
	KeyOemCodeRequired  = "oem.code_required"
	KeyOemBadEnvelope   = "oem.bad_envelope"
	KeyOemScrapeTimeout = "oem.scrape_timeout"
	KeyOemScrapeFailed  = "oem.scrape_failed"
)
