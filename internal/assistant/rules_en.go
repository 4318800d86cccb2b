package assistant

var englishBudgetSuggestions = []string{"Under 5000", "Under 10000", "Under 15000", "Show all rooms"}

func englishRules() []Rule {
	return []Rule{
		{
			ID:      IntentBudget,
			Trigger: budget("under", "below", "less than", "within", "budget", "max", "maximum", "upto", "up to", "around", "cheaper than"),
			Template: "Looking for rooms up to **{amount}/month**.\n" +
				"Open **Search**, set the maximum price to {amount} and I'll show matching listings. " +
				"You can also narrow by city, room type or amenities.",
			Suggestions: englishBudgetSuggestions,
		},
		{
			ID:      IntentGreeting,
			Trigger: phrases("hello", "hi", "hii", "hey", "hey there", "good morning", "good afternoon", "good evening", "greetings"),
			Template: "Hello! I'm your **rental assistant**.\n" +
				"I can help you find a room, check prices, manage bookings or list your property. What are you looking for?",
			Suggestions: []string{"Find a room", "Rooms under 10000", "How do I book?", "List my property"},
		},
		{
			ID: IntentListing,
			Trigger: phrases("list my property", "list property", "list my room", "add property", "add my property",
				"post a room", "post my room", "rent out", "become a host", "landlord", "i am an owner", "i own",
				"add a listing", "add listing", "edit my listing", "my listing", "my listings"),
			Template: "To list a property, sign in as a **landlord** and open **My Listings → Add Listing**.\n" +
				"Add photos, rent, deposit and amenities. Listings go live after a quick review. Want to see the listing plans?",
			Suggestions: []string{"Listing plans", "Add a listing", "Edit my listing"},
		},
		{
			ID:      IntentCancellation,
			Trigger: either(prefixes("cancel"), phrases("refund", "refunds", "money back")),
			Template: "You can cancel from **My Bookings** before the move-in date.\n" +
				"Refunds follow the listing's cancellation policy and reach your original payment method in 5-7 working days. Need help with a specific booking?",
			Suggestions: []string{"Cancellation policy", "Track my refund", "Contact support"},
		},
		{
			ID:      IntentBooking,
			Trigger: either(prefixes("book", "reserv"), phrases("schedule a visit", "visit", "move in")),
			Template: "Booking takes three steps:\n" +
				"1. Open a listing and pick your **move-in date**\n" +
				"2. Send a booking request to the landlord\n" +
				"3. Pay the token amount once the request is accepted\n" +
				"Shall I walk you through it?",
			Suggestions: []string{"Yes, walk me through", "Payment options", "Cancel a booking"},
		},
		{
			ID:      IntentPayment,
			Trigger: either(prefixes("payment", "paying"), phrases("pay", "upi", "card", "invoice", "receipt", "deposit")),
			Template: "We accept **UPI**, debit/credit cards and net banking.\n" +
				"Token payments are held securely until you move in. Receipts are in **My Bookings**.",
			Suggestions: []string{"Is my payment safe?", "Get a receipt", "Refund status"},
		},
		{
			ID:      IntentSubscription,
			Trigger: either(prefixes("subscri", "membership"), phrases("premium", "plan", "plans", "pricing plan", "upgrade")),
			Template: "Landlords can choose a **Basic** or **Premium** plan.\n" +
				"Premium listings appear first in search and get verified badges. Plans are billed monthly and can be cancelled anytime.",
			Suggestions: []string{"Compare plans", "Upgrade to Premium", "List my property"},
		},
		{
			ID: IntentContact,
			Trigger: phrases("contact", "call", "phone", "phone number", "message the landlord", "talk to owner",
				"chat with owner", "owner", "whatsapp", "email", "message", "messages", "chat", "inbox"),
			Template: "Open the listing and tap **Message Landlord** to start a chat.\n" +
				"Phone numbers are shared once a booking request is accepted.",
			Suggestions: []string{"Open my messages", "How do I book?", "Report a listing"},
		},
		{
			ID:          IntentReviews,
			Trigger:     either(prefixes("review", "rating"), phrases("feedback", "stars")),
			Template:    "Reviews from verified tenants are shown on every listing. You can rate a stay from **My Bookings** after your move-in date.",
			Suggestions: []string{"Write a review", "Top rated rooms", "Report a review"},
		},
		{
			ID: IntentSearch,
			Trigger: phrases("room", "rooms", "pg", "pgs", "hostel", "hostels", "flat", "flats", "apartment", "apartments",
				"accommodation", "find", "search", "looking for", "near", "stay", "house", "bhk"),
			Template: "Let's find you a place! Use **Search** to filter by city, budget, room type and amenities.\n" +
				"Tell me your budget, for example \"under 10000\", and I'll suggest a price filter.",
			Suggestions: []string{"Rooms under 5000", "Rooms under 10000", "Shared rooms", "Near my college"},
		},
		{
			ID:      IntentPricing,
			Trigger: phrases("price", "prices", "rent", "cost", "how much", "cheap", "affordable", "expensive", "fees"),
			Template: "Rents depend on the city and room type. Most shared rooms are listed between **₹4,000** and **₹12,000** a month.\n" +
				"What is your budget?",
			Suggestions: englishBudgetSuggestions,
		},
		{
			ID:          IntentHelp,
			Trigger:     phrases("help", "support", "problem", "issue", "how does", "how do", "what can you do", "assist", "report", "complaint"),
			Template:    "I can help with **searching rooms**, **bookings**, **payments**, **messages** and **listing a property**. What do you need?",
			Suggestions: []string{"Find a room", "My bookings", "Payment help", "Contact support"},
		},
		{
			ID:          IntentThanks,
			Trigger:     phrases("thanks", "thank you", "thank u", "thx", "ty", "great", "awesome"),
			Template:    "You're welcome! Anything else I can help you with?",
			Suggestions: []string{"Find a room", "My bookings"},
		},
		{
			ID:          IntentGoodbye,
			Trigger:     phrases("bye", "goodbye", "see you", "see ya", "good night"),
			Template:    "Goodbye! Good luck finding your next home.",
			Suggestions: []string{},
		},
		{
			ID:          IntentConfirmSearch,
			Contextual:  true,
			Trigger:     replyTo(searchFollowUps, "yes", "yeah", "yep", "sure", "ok", "okay", "please", "go ahead"),
			Template:    "Great! Open **Search**, choose your city and set a budget. Tap any listing to see photos, amenities and reviews.",
			Suggestions: englishBudgetSuggestions,
		},
		{
			ID:         IntentConfirmBooking,
			Contextual: true,
			Trigger:    replyTo(bookingFollowUps, "yes", "yeah", "yep", "sure", "ok", "okay", "please", "go ahead"),
			Template: "Here's how:\n" +
				"1. Open the listing and tap **Request to Book**\n" +
				"2. Choose your move-in date and duration\n" +
				"3. Wait for the landlord to accept, then pay the token amount",
			Suggestions: []string{"Payment options", "Cancellation policy"},
		},
		{
			ID:          IntentConfirmListing,
			Contextual:  true,
			Trigger:     replyTo(listingFollowUps, "yes", "yeah", "yep", "sure", "ok", "okay", "please", "go ahead"),
			Template:    "**Basic** lists one property for free. **Premium** adds priority placement, verified badges and unlimited listings.",
			Suggestions: []string{"Upgrade to Premium", "Add a listing"},
		},
		{
			ID:          IntentDecline,
			Contextual:  true,
			Trigger:     replyTo(nil, "no", "nope", "nah", "not now", "later"),
			Template:    "No problem. Let me know whenever you need anything.",
			Suggestions: []string{"Find a room", "Help"},
		},
		{
			ID: FallbackRuleID,
			Template: "Sorry, I didn't quite get that. I can help with **finding rooms**, **prices**, **bookings**, **payments** and **listing a property**.\n" +
				"Try one of the suggestions below.",
			Suggestions: []string{"Find a room", "Rooms under 10000", "How do I book?", "Help"},
		},
	}
}
