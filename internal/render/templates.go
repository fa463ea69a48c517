package render

import "math/rand"

// Template is a base image onto which caption text is composited.
type Template struct {
	ID   string
	Name string
	URL  string
}

// BuiltinTemplates returns the template catalog in display order.
func BuiltinTemplates() []Template {
	return []Template{
		{ID: "odinary-mascot", Name: "ODINARY Mascot", URL: "https://i.imgur.com/2OFa2a1.png"},
		{ID: "drake", Name: "Drakeposting", URL: "https://i.imgflip.com/30b1gx.jpg"},
		{ID: "distracted-bf", Name: "Distracted Boyfriend", URL: "https://i.imgflip.com/1ur9b0.jpg"},
		{ID: "two-buttons", Name: "Two Buttons", URL: "https://i.imgflip.com/1g8my4.jpg"},
		{ID: "change-my-mind", Name: "Change My Mind", URL: "https://i.imgflip.com/24x433.jpg"},
	}
}

// FindTemplateByURL looks a template up in the catalog. Stored template
// selections are validated through this before being restored.
func FindTemplateByURL(url string) (Template, bool) {
	for _, t := range BuiltinTemplates() {
		if t.URL == url {
			return t, true
		}
	}
	return Template{}, false
}

// TemplatePrompt is the informational prompt recorded on a generated meme.
func TemplatePrompt(url string) string {
	name := "Custom"
	if t, ok := FindTemplateByURL(url); ok {
		name = t.Name
	}
	return "Template: " + name
}

// RandomOtherTemplate picks a random template, excluding the current one
// when more than one candidate exists.
func RandomOtherTemplate(currentURL string) Template {
	all := BuiltinTemplates()
	candidates := make([]Template, 0, len(all))
	for _, t := range all {
		if t.URL != currentURL {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		candidates = all
	}
	return candidates[rand.Intn(len(candidates))]
}
