package pricing

import (
	"fmt"
	"strings"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

// Justifications come from a fixed catalog keyed by decision and language,
// never from generated text, so every response the widget shows is bounded
// and auditable. E-GURA ships English, French and Kinyarwanda storefronts.

const defaultLanguage = "en"

var justificationCatalog = map[string]map[domain.Decision]string{
	"en": {
		domain.DecisionAccept:  "Deal! %s RWF it is. Lock it in before your session expires.",
		domain.DecisionCounter: "We can't go that low, but %s RWF is a genuinely good price for this item.",
		domain.DecisionFinal:   "This is our final offer: %s RWF. We can't go any lower.",
		domain.DecisionReject:  "Sorry, we couldn't reach a deal this time. Our last price was %s RWF.",
		domain.DecisionExpired: "This negotiation has expired. Make a new offer to start over.",
	},
	"fr": {
		domain.DecisionAccept:  "Marché conclu ! %s RWF. Validez avant l'expiration de votre session.",
		domain.DecisionCounter: "Nous ne pouvons pas descendre aussi bas, mais %s RWF est un très bon prix.",
		domain.DecisionFinal:   "Voici notre dernière offre : %s RWF. Nous ne pouvons pas faire moins.",
		domain.DecisionReject:  "Désolé, nous n'avons pas pu conclure cette fois. Notre dernier prix était %s RWF.",
		domain.DecisionExpired: "Cette négociation a expiré. Faites une nouvelle offre pour recommencer.",
	},
	"rw": {
		domain.DecisionAccept:  "Twemeye! %s RWF. Yemeza mbere y'uko igihe kirangira.",
		domain.DecisionCounter: "Ntidushobora kugera aho hasi, ariko %s RWF ni igiciro cyiza rwose.",
		domain.DecisionFinal:   "Iki ni igiciro cyacu cya nyuma: %s RWF. Ntidushobora kujya munsi yacyo.",
		domain.DecisionReject:  "Ihangane, ntitwumvikanye iki gihe. Igiciro cyacu cya nyuma cyari %s RWF.",
		domain.DecisionExpired: "Iyi mishyikirano yarangiye. Tanga igiciro gishya utangire bundi bushya.",
	},
}

// Justify selects the catalog message for a decision, falling back to
// English for unknown languages.
func Justify(decision domain.Decision, language string, price float64) string {
	messages, ok := justificationCatalog[language]
	if !ok {
		messages = justificationCatalog[defaultLanguage]
	}
	template, ok := messages[decision]
	if !ok {
		template = justificationCatalog[defaultLanguage][decision]
	}
	if !strings.Contains(template, "%s") {
		return template
	}
	return fmt.Sprintf(template, formatPrice(price))
}

// formatPrice renders whole RWF amounts with thousands separators, the
// way the storefront displays prices.
func formatPrice(price float64) string {
	raw := fmt.Sprintf("%.0f", price)
	negative := false
	if len(raw) > 0 && raw[0] == '-' {
		negative = true
		raw = raw[1:]
	}
	var out []byte
	for i, c := range []byte(raw) {
		if i > 0 && (len(raw)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
