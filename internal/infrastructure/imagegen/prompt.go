package imagegen

import (
	"strings"
)

// visualMappings translate market keywords into concrete photographable
// scenes. Checked in a fixed order so synthesis stays deterministic.
var visualMappings = []struct {
	keyword string
	scene   string
}{
	{"copper", "copper metal pipes and raw copper sheets in a warehouse"},
	{"gold", "gold bullion bars stacked in a secure vault"},
	{"silver", "silver bullion bars and raw silver metal"},
	{"zinc", "zinc metal ingots and industrial metal processing"},
	{"oil", "oil refinery pipes and industrial storage tanks"},
	{"energy", "solar panels and electrical power transmission lines"},
	{"bank", "modern bank building exterior with glass facade"},
	{"finance", "modern financial district skyline with skyscrapers"},
	{"market", "bustling stock exchange floor with traders and screens"},
	{"stock", "digital stock market display board with green uptrend charts"},
	{"sensex", "digital stock market display board with green uptrend charts"},
	{"nifty", "digital stock market display board with green uptrend charts"},
	{"rate", "financial graphs on monitors showing interest rate trends"},
	{"fed", "Federal Reserve building exterior in Washington DC"},
	{"dollar", "US Dollar currency notes stacked on a table"},
	{"rupee", "Indian Rupee currency notes and coins"},
	{"tech", "modern server room with rack servers and blue lighting"},
	{"chip", "macro shot of a computer silicon processor chip"},
	{"ai", "futuristic data center with glowing fiber optics"},
	{"auto", "modern car assembly line in a factory"},
	{"jewellers", "luxury jewelry display with gold necklaces and diamonds"},
	{"rail", "freight train moving through an industrial landscape"},
	{"pharma", "pharmaceutical laboratory with glass equipment"},
	{"results", "business professionals analyzing financial reports in a meeting"},
}

var skipWords = map[string]bool{
	"The": true, "A": true, "An": true, "In": true, "On": true, "At": true,
	"For": true, "To": true, "Of": true, "With": true, "By": true,
	"From": true, "Is": true, "Are": true,
}

const promptTemplate = "Photorealistic editorial photograph of: %CORE%. " +
	"Scene: %ENV%, %INDUSTRY%. " +
	"Style: news agency photography, natural lighting, realistic materials, sharp focus. " +
	"Constraints: no charts, no text, no numbers, no illustration, no CGI, no fantasy."

// extractVisualEntity maps a headline and summary to a photographable
// subject: keyword mapping first, then proper-noun extraction, then a
// neutral fallback.
func extractVisualEntity(headline, summary string) string {
	text := strings.ToLower(headline + " " + summary)

	for _, m := range visualMappings {
		if strings.Contains(text, m.keyword) {
			return m.scene
		}
	}

	var properNouns []string
	for _, w := range strings.Fields(headline) {
		clean := strings.Trim(w, `'":-!?`)
		if clean == "" || skipWords[clean] {
			continue
		}
		r := []rune(clean)
		if r[0] >= 'A' && r[0] <= 'Z' {
			properNouns = append(properNouns, clean)
		}
	}

	if len(properNouns) >= 2 {
		if len(properNouns) > 3 {
			properNouns = properNouns[:3]
		}
		return "modern corporate office building of " + strings.Join(properNouns, " ")
	}

	return "modern corporate meeting room with professionals"
}

// SynthesizePrompt builds the final text-to-image prompt for one headline.
func SynthesizePrompt(headline, summary string) string {
	entity := extractVisualEntity(headline, summary)
	context := strings.ToLower(headline + " " + summary)

	environment := "modern industrial setting"
	switch {
	case strings.Contains(context, "market") || strings.Contains(context, "trade"):
		environment = "bustling trading floor (people only)"
	case strings.Contains(entity, "office"):
		environment = "modern corporate architecture"
	case strings.Contains(entity, "factory") || strings.Contains(entity, "plant"):
		environment = "heavy industrial facility"
	}

	industry := "general business"
	switch {
	case strings.Contains(context, "tech"):
		industry = "technology sector"
	case strings.Contains(context, "finance"):
		industry = "financial district"
	case strings.Contains(context, "auto"):
		industry = "automotive manufacturing"
	}

	prompt := strings.NewReplacer(
		"%CORE%", entity,
		"%ENV%", environment,
		"%INDUSTRY%", industry,
	).Replace(promptTemplate)

	return prompt
}
