package assistant

var hindiBudgetSuggestions = []string{"5000 से कम", "10000 से कम", "15000 से कम", "सभी कमरे दिखाओ"}

func hindiRules() []Rule {
	return []Rule{
		{
			ID:      IntentBudget,
			Trigger: budget("से कम", "तक", "बजट", "के अंदर", "के भीतर", "kam", "tak", "budget", "andar", "under", "below"),
			Template: "**{amount}/महीना** तक के कमरे खोज रहे हैं।\n" +
				"**खोज** खोलें, अधिकतम किराया {amount} रखें और मैं मिलते-जुलते कमरे दिखाऊँगा। शहर, कमरे का प्रकार और सुविधाएँ भी चुन सकते हैं।",
			Suggestions: hindiBudgetSuggestions,
		},
		{
			ID:      IntentGreeting,
			Trigger: phrases("नमस्ते", "नमस्कार", "हेलो", "हाय", "namaste", "namaskar", "hello", "hi", "hey"),
			Template: "नमस्ते! मैं आपका **रेंटल असिस्टेंट** हूँ।\n" +
				"मैं कमरा खोजने, किराया जानने, बुकिंग संभालने या प्रॉपर्टी लिस्ट करने में मदद कर सकता हूँ। आप क्या ढूँढ रहे हैं?",
			Suggestions: []string{"कमरा खोजें", "10000 से कम कमरे", "बुकिंग कैसे करें?", "प्रॉपर्टी लिस्ट करें"},
		},
		{
			ID: IntentListing,
			Trigger: phrases("प्रॉपर्टी लिस्ट", "लिस्टिंग", "मकान मालिक", "किराये पर देना", "किराए पर देना",
				"property list", "list karna", "list karni", "makan malik", "landlord"),
			Template: "प्रॉपर्टी लिस्ट करने के लिए **मकान मालिक** के रूप में साइन इन करें और **मेरी लिस्टिंग → नई लिस्टिंग** खोलें।\n" +
				"फ़ोटो, किराया, डिपॉज़िट और सुविधाएँ जोड़ें। जाँच के बाद लिस्टिंग लाइव हो जाती है। क्या आप लिस्टिंग प्लान देखना चाहेंगे?",
			Suggestions: []string{"लिस्टिंग प्लान", "नई लिस्टिंग जोड़ें", "मेरी लिस्टिंग बदलें"},
		},
		{
			ID:      IntentCancellation,
			Trigger: phrases("रद्द", "रद्दीकरण", "कैंसिल", "रिफंड", "पैसे वापस", "cancel", "refund", "radd", "paise wapas"),
			Template: "आप मूव-इन तारीख से पहले **मेरी बुकिंग** से बुकिंग रद्द कर सकते हैं।\n" +
				"रिफंड लिस्टिंग की रद्दीकरण नीति के अनुसार 5-7 कार्य दिवसों में मूल भुगतान माध्यम पर आता है। क्या किसी खास बुकिंग में मदद चाहिए?",
			Suggestions: []string{"रद्दीकरण नीति", "मेरा रिफंड", "सहायता से संपर्क"},
		},
		{
			ID:      IntentBooking,
			Trigger: phrases("बुक", "बुकिंग", "आरक्षण", "विज़िट", "book", "booking", "visit"),
			Template: "बुकिंग तीन चरणों में होती है:\n" +
				"1. लिस्टिंग खोलें और **मूव-इन तारीख** चुनें\n" +
				"2. मकान मालिक को बुकिंग अनुरोध भेजें\n" +
				"3. अनुरोध स्वीकार होने पर टोकन राशि का भुगतान करें\n" +
				"क्या मैं आपको पूरा तरीका बताऊँ?",
			Suggestions: []string{"हाँ, बताइए", "भुगतान के तरीके", "बुकिंग रद्द करें"},
		},
		{
			ID:      IntentPayment,
			Trigger: phrases("भुगतान", "पेमेंट", "यूपीआई", "रसीद", "डिपॉज़िट", "payment", "bhugtan", "upi", "pay", "receipt"),
			Template: "हम **UPI**, डेबिट/क्रेडिट कार्ड और नेट बैंकिंग स्वीकार करते हैं।\n" +
				"टोकन राशि मूव-इन तक सुरक्षित रखी जाती है। रसीदें **मेरी बुकिंग** में मिलेंगी।",
			Suggestions: []string{"क्या भुगतान सुरक्षित है?", "रसीद पाएँ", "रिफंड की स्थिति"},
		},
		{
			ID:      IntentSubscription,
			Trigger: phrases("सदस्यता", "प्लान", "प्रीमियम", "subscription", "plan", "premium"),
			Template: "मकान मालिक **बेसिक** या **प्रीमियम** प्लान चुन सकते हैं।\n" +
				"प्रीमियम लिस्टिंग खोज में सबसे ऊपर दिखती हैं और सत्यापित बैज पाती हैं। प्लान मासिक हैं और कभी भी रद्द किए जा सकते हैं।",
			Suggestions: []string{"प्लान की तुलना", "प्रीमियम लें", "प्रॉपर्टी लिस्ट करें"},
		},
		{
			ID:      IntentContact,
			Trigger: phrases("संपर्क", "मालिक से बात", "फोन", "फ़ोन", "संदेश", "मैसेज", "contact", "sampark", "baat", "phone", "message"),
			Template: "लिस्टिंग खोलें और चैट शुरू करने के लिए **मकान मालिक को संदेश** पर टैप करें।\n" +
				"बुकिंग अनुरोध स्वीकार होने के बाद फ़ोन नंबर साझा किए जाते हैं।",
			Suggestions: []string{"मेरे संदेश", "बुकिंग कैसे करें?", "लिस्टिंग की शिकायत"},
		},
		{
			ID:          IntentReviews,
			Trigger:     phrases("समीक्षा", "रिव्यू", "रेटिंग", "review", "rating"),
			Template:    "सत्यापित किरायेदारों की समीक्षाएँ हर लिस्टिंग पर दिखती हैं। मूव-इन के बाद आप **मेरी बुकिंग** से रेटिंग दे सकते हैं।",
			Suggestions: []string{"समीक्षा लिखें", "टॉप रेटेड कमरे"},
		},
		{
			ID: IntentSearch,
			Trigger: phrases("कमरा", "कमरे", "पीजी", "हॉस्टल", "फ्लैट", "मकान", "खोज", "खोजें", "ढूँढ", "ढूंढ", "के पास",
				"kamra", "kamre", "room", "pg", "hostel", "flat", "dhundh", "khoj"),
			Template: "चलिए आपके लिए जगह ढूँढते हैं! शहर, बजट, कमरे के प्रकार और सुविधाओं से छाँटने के लिए **खोज** का उपयोग करें।\n" +
				"अपना बजट बताइए, जैसे \"10000 से कम\", और मैं कीमत फ़िल्टर सुझाऊँगा।",
			Suggestions: []string{"5000 से कम कमरे", "10000 से कम कमरे", "शेयर्ड कमरे", "कॉलेज के पास"},
		},
		{
			ID:      IntentPricing,
			Trigger: phrases("किराया", "कीमत", "कितना", "कितने", "सस्ता", "kiraya", "kitna", "kitne", "keemat", "price", "rent"),
			Template: "किराया शहर और कमरे के प्रकार पर निर्भर करता है। ज़्यादातर शेयर्ड कमरे **₹4,000** से **₹12,000** प्रति माह के बीच हैं।\n" +
				"आपका बजट क्या है?",
			Suggestions: hindiBudgetSuggestions,
		},
		{
			ID:          IntentHelp,
			Trigger:     phrases("मदद", "सहायता", "समस्या", "शिकायत", "madad", "sahayata", "help", "problem"),
			Template:    "मैं **कमरे खोजने**, **बुकिंग**, **भुगतान**, **संदेश** और **प्रॉपर्टी लिस्ट करने** में मदद कर सकता हूँ। आपको क्या चाहिए?",
			Suggestions: []string{"कमरा खोजें", "मेरी बुकिंग", "भुगतान सहायता", "सहायता से संपर्क"},
		},
		{
			ID:          IntentThanks,
			Trigger:     phrases("धन्यवाद", "शुक्रिया", "dhanyavad", "dhanyawad", "shukriya", "thanks", "thank you"),
			Template:    "आपका स्वागत है! क्या मैं और कुछ मदद कर सकता हूँ?",
			Suggestions: []string{"कमरा खोजें", "मेरी बुकिंग"},
		},
		{
			ID:          IntentGoodbye,
			Trigger:     phrases("अलविदा", "फिर मिलेंगे", "alvida", "bye", "phir milenge"),
			Template:    "अलविदा! नया घर ढूँढने के लिए शुभकामनाएँ।",
			Suggestions: []string{},
		},
		{
			ID:          IntentConfirmSearch,
			Contextual:  true,
			Trigger:     replyTo(searchFollowUps, "हाँ", "हां", "जी", "ठीक है", "बताइए", "haan", "han", "ji", "theek hai", "ok"),
			Template:    "बढ़िया! **खोज** खोलें, अपना शहर चुनें और बजट सेट करें। फ़ोटो, सुविधाएँ और समीक्षाएँ देखने के लिए किसी भी लिस्टिंग पर टैप करें।",
			Suggestions: hindiBudgetSuggestions,
		},
		{
			ID:         IntentConfirmBooking,
			Contextual: true,
			Trigger:    replyTo(bookingFollowUps, "हाँ", "हां", "जी", "ठीक है", "बताइए", "haan", "han", "ji", "theek hai", "ok"),
			Template: "ऐसे करें:\n" +
				"1. लिस्टिंग खोलें और **बुकिंग का अनुरोध** पर टैप करें\n" +
				"2. मूव-इन तारीख और अवधि चुनें\n" +
				"3. मकान मालिक के स्वीकार करने पर टोकन राशि चुकाएँ",
			Suggestions: []string{"भुगतान के तरीके", "रद्दीकरण नीति"},
		},
		{
			ID:          IntentConfirmListing,
			Contextual:  true,
			Trigger:     replyTo(listingFollowUps, "हाँ", "हां", "जी", "ठीक है", "बताइए", "haan", "han", "ji", "theek hai", "ok"),
			Template:    "**बेसिक** प्लान में एक प्रॉपर्टी मुफ़्त लिस्ट होती है। **प्रीमियम** में ऊपर की जगह, सत्यापित बैज और असीमित लिस्टिंग मिलती हैं।",
			Suggestions: []string{"प्रीमियम लें", "नई लिस्टिंग जोड़ें"},
		},
		{
			ID:          IntentDecline,
			Contextual:  true,
			Trigger:     replyTo(nil, "नहीं", "नही", "अभी नहीं", "nahi", "nahin", "no", "baad mein"),
			Template:    "कोई बात नहीं। जब भी ज़रूरत हो, बताइए।",
			Suggestions: []string{"कमरा खोजें", "मदद"},
		},
		{
			ID: FallbackRuleID,
			Template: "माफ़ कीजिए, मैं समझ नहीं पाया। मैं **कमरे खोजने**, **किराया**, **बुकिंग**, **भुगतान** और **प्रॉपर्टी लिस्ट करने** में मदद कर सकता हूँ।\n" +
				"नीचे दिए सुझावों में से कोई चुनें।",
			Suggestions: []string{"कमरा खोजें", "10000 से कम कमरे", "बुकिंग कैसे करें?", "मदद"},
		},
	}
}
