package events

// Funnel step vocabulary, in canonical order. Event names outside this set
// are tolerated on input and simply ignored by step-based aggregation.
const (
	EventPageView      = "page_view"
	EventAddToCart     = "add_to_cart"
	EventBeginCheckout = "begin_checkout"
	EventPurchase      = "purchase"
)

// FunnelSteps is the ordered step vocabulary for funnel aggregation.
var FunnelSteps = []string{EventPageView, EventAddToCart, EventBeginCheckout, EventPurchase}

// Experiment arms. Aggregation hard-codes a two-arm design.
const (
	VariantA = "A"
	VariantB = "B"
)

// Device types
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
	DeviceTablet  = "tablet"
)

// Acquisition channels
const (
	ChannelOrganic    = "organic"
	ChannelPaidSearch = "paid_search"
	ChannelSocial     = "social"
	ChannelEmail      = "email"
	ChannelDirect     = "direct"
)

// Devices lists the closed device vocabulary.
var Devices = []string{DeviceMobile, DeviceDesktop, DeviceTablet}

// Channels lists the closed channel vocabulary.
var Channels = []string{ChannelOrganic, ChannelPaidSearch, ChannelSocial, ChannelEmail, ChannelDirect}

// KnownChannel reports whether ch belongs to the closed channel vocabulary.
func KnownChannel(ch string) bool {
	for _, c := range Channels {
		if c == ch {
			return true
		}
	}
	return false
}
