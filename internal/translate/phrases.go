package translate

// Common traveler phrases served without a provider round-trip.
var (
	englishPhrases = []string{
		"Hello", "Thank you", "Please", "Excuse me", "Where is?",
		"How much?", "I need help", "Do you speak English?",
		"Restaurant", "Hotel", "Taxi", "Airport", "Train station",
	}
	hindiPhrases = []string{
		"नमस्ते", "धन्यवाद", "कृपया", "माफ करें", "कहाँ है?",
		"कितना?", "मुझे मदद चाहिए", "क्या आप अंग्रेजी बोलते हैं?",
		"रेस्तराँ", "होटल", "टैक्सी", "हवाई अड्डा", "रेलवे स्टेशन",
	}
)

// Phrases returns the common-phrase catalog for a language code. Languages
// without a catalog fall back to English.
func Phrases(lang string) []string {
	if lang == "hi" {
		return hindiPhrases
	}
	return englishPhrases
}
