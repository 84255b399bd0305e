package models

// Settings is the single store-wide configuration record
type Settings struct {
	StoreName             string  `json:"store_name" yaml:"store_name"`
	Currency              string  `json:"currency" yaml:"currency"`
	DeliveryFee           float64 `json:"delivery_fee" yaml:"delivery_fee"`
	DeliveryTime          string  `json:"delivery_time" yaml:"delivery_time"`
	DeliveryArea          string  `json:"delivery_area" yaml:"delivery_area"`
	ContactNumber         string  `json:"contact_number" yaml:"contact_number"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold" yaml:"free_shipping_threshold"`
	WelcomeText           string  `json:"welcome_text" yaml:"welcome_text"`
	FooterText            string  `json:"footer_text" yaml:"footer_text"`
}

// DefaultSettings is used until an admin stores settings.
func DefaultSettings() Settings {
	return Settings{
		StoreName:             "Store",
		Currency:              "SAR",
		DeliveryFee:           30,
		DeliveryTime:          "24-48 hours",
		DeliveryArea:          "City wide",
		ContactNumber:         "",
		FreeShippingThreshold: 500,
		WelcomeText:           "Welcome to our store",
		FooterText:            "",
	}
}
