package domain

// ConfigEntry is a runtime setting stored in the configEcommerce collection.
// Key is the human-readable identifier other services look entries up by.
type ConfigEntry struct {
	Key         string `json:"key" bson:"key" validate:"required,uppercase"`
	Value       string `json:"value" bson:"value" validate:"required"`
	Description string `json:"description" bson:"description"`
	Active      bool   `json:"active" bson:"active"`
}
