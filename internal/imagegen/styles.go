package imagegen

import "strings"

// stylePrompts дописываются к запросу пользователя.
var stylePrompts = map[string]string{
	"realistic":    "photorealistic, high quality, detailed",
	"illustration": "digital illustration, artistic, stylized",
	"abstract":     "abstract art, creative, modern",
	"minimalist":   "minimalist design, clean, simple",
	"vintage":      "vintage style, retro, classic",
	"modern":       "modern design, contemporary, sleek",
}

const defaultStyleSuffix = "high quality"

// EnhancePrompt: "<prompt>, <suffix стиля>", для неизвестного стиля "high quality".
func EnhancePrompt(prompt, style string) string {
	suffix, ok := stylePrompts[strings.ToLower(strings.TrimSpace(style))]
	if !ok {
		suffix = defaultStyleSuffix
	}
	return strings.TrimSpace(prompt) + ", " + suffix
}

func KnownStyle(style string) bool {
	_, ok := stylePrompts[strings.ToLower(strings.TrimSpace(style))]
	return ok
}
