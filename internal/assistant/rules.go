package assistant

import "rental-assistant/internal/domain"

// Rule ids shared by every locale's ruleset.
const (
	IntentBudget         = "budget"
	IntentGreeting       = "greeting"
	IntentListing        = "listing"
	IntentCancellation   = "cancellation"
	IntentBooking        = "booking"
	IntentPayment        = "payment"
	IntentSubscription   = "subscription"
	IntentContact        = "contact"
	IntentReviews        = "reviews"
	IntentSearch         = "search"
	IntentPricing        = "pricing"
	IntentHelp           = "help"
	IntentThanks         = "thanks"
	IntentGoodbye        = "goodbye"
	IntentConfirmSearch  = "confirm_search"
	IntentConfirmBooking = "confirm_booking"
	IntentConfirmListing = "confirm_listing"
	IntentDecline        = "decline"
)

var (
	searchFollowUps  = []string{IntentGreeting, IntentSearch, IntentPricing, IntentBudget}
	bookingFollowUps = []string{IntentBooking, IntentCancellation, IntentPayment}
	listingFollowUps = []string{IntentListing, IntentSubscription}
)

// DefaultRulesets returns the built-in rulesets keyed by locale.
func DefaultRulesets() map[domain.Locale]Ruleset {
	return map[domain.Locale]Ruleset{
		domain.LocaleEnglish: MustRuleset(domain.LocaleEnglish, englishRules()...),
		domain.LocaleHindi:   MustRuleset(domain.LocaleHindi, hindiRules()...),
		domain.LocaleSpanish: MustRuleset(domain.LocaleSpanish, spanishRules()...),
	}
}
