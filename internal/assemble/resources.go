package assemble

import "emoticare/internal/domain"

// Crisis resources are a fixed lookup: the same urgency level and country
// always yield the same listing. Nothing here is parsed or generated.
var crisisResourcesByCountry = map[string][]domain.Resource{
	"US": {
		{Type: "crisis_line", Name: "988 Suicide & Crisis Lifeline", Contact: "988"},
		{Type: "emergency", Name: "Emergency Services", Contact: "911"},
		{Type: "text_support", Name: "Crisis Text Line", Contact: "Text HOME to 741741"},
	},
	"GB": {
		{Type: "crisis_line", Name: "Samaritans", Contact: "116 123"},
		{Type: "emergency", Name: "Emergency Services", Contact: "999"},
	},
	"ID": {
		{Type: "crisis_line", Name: "Into The Light Indonesia", Contact: "119 ext 8"},
		{Type: "emergency", Name: "Emergency Services", Contact: "112"},
	},
}

var crisisResourcesDefault = []domain.Resource{
	{Type: "crisis_line", Name: "Find a Helpline", URL: "https://findahelpline.com"},
	{Type: "emergency", Name: "Local Emergency Services", Contact: "Dial your local emergency number"},
}

var generalResources = []domain.Resource{
	{Type: "website", Name: "Mental Health America", URL: "https://www.mhanational.org"},
	{Type: "website", Name: "National Alliance on Mental Illness", URL: "https://www.nami.org"},
}

var actionsByEmotion = map[domain.EmotionType][]string{
	domain.EmotionAnxiety:    {"Practice deep breathing exercises", "Try progressive muscle relaxation", "Limit caffeine intake"},
	domain.EmotionDepression: {"Maintain a daily routine", "Engage in physical activity", "Connect with supportive people"},
	domain.EmotionStress:     {"Take regular breaks", "Practice mindfulness", "Prioritize tasks and delegate when possible"},
	domain.EmotionGrief:      {"Allow yourself to feel and process emotions", "Seek support from others who understand", "Consider grief counseling"},
	domain.EmotionAnger:      {"Take time to cool down before reacting", "Practice anger management techniques", "Identify your triggers"},
	domain.EmotionLoneliness: {"Reach out to friends or family", "Join community activities", "Consider volunteering"},
}

var highUrgencyActions = []string{
	"Consider contacting a mental health professional immediately",
	"Reach out to a trusted friend or family member",
	"Contact a crisis helpline if you are in immediate distress",
}

// crisisResources returns the listing for a country, falling back to the
// international set.
func crisisResources(country string) []domain.Resource {
	if listing, ok := crisisResourcesByCountry[country]; ok {
		return listing
	}
	return crisisResourcesDefault
}
