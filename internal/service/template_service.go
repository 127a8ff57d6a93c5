package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/alkmaar-rp/supportbot/internal/platform"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

// TemplateService owns the canned Dutch content the bot posts: wiki
// letters, verdict embeds for refund and sollicitatie tickets, the
// dismissal notice, the panel intro and the gang intake form.
type TemplateService struct{}

// NewTemplateService constructs the service.
func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

// wikiLetter is one canned intake letter. Some letters have a variant
// that is used when the user was referred to the ticket by another staff
// member.
type wikiLetter struct {
	body func(user string) string
	// nil when the letter has no referral wording
	referred func(user, referrer string) string
}

var wikiLetters = map[string]wikiLetter{
	"algemene_vraag": {
		body: func(user string) string {
			return fmt.Sprintf("Beste %s,\n\nGelieve de onderstaande informatie te verstrekken, zodat wij u zo snel "+
				"mogelijk kunnen helpen:\n\n**Naam:**\n**Vraag:**", user)
		},
	},
	"staff_klacht": {
		body: func(user string) string {
			return fmt.Sprintf("Beste %s,\n\nJammer om te horen dat u een klacht heeft over ons staffteam. Wij streven "+
				"ernaar ons staffteam voortdurend te verbeteren. Gelieve de onderstaande informatie te verstrekken, zodat "+
				"wij u zo goed mogelijk kunnen helpen:\n\n**Naam:**\n**Tegen wie:**\n**Datum:**\n**Reden van klacht:**\n**Bewijs:**", user)
		},
		referred: func(user, referrer string) string {
			return fmt.Sprintf("Beste %s,\n\nAangezien u reeds een verwijzing heeft ontvangen van %s is het van belang "+
				"dat enkel de staffcoördinatoren beschikken over de volgende informatie:\n\n"+
				"**Naam:**\n**Tegen wie:**\n**Datum:**\n**Bewijs:**\n**Reden:**", user, referrer)
		},
	},
	"staff_sollicitatie": {
		body: func(user string) string {
			return fmt.Sprintf("Beste %s,\n\nLeuk om te horen dat u wilt solliciteren voor ons staffteam!\nGelieve de "+
				"onderstaande informatie in te vullen, zodat wij uw sollicitatie spoedig kunnen beoordelen:\n\n"+
				"**Naam:**\n**Leeftijd:**\n**Ervaring:**\n**Motivatie:**\n**Waarom moet u staff worden en niet iemand anders:**\n**Opmerkingen:**", user)
		},
	},
	"refund": {
		body: func(user string) string {
			return fmt.Sprintf("Beste %s,\n\nAangezien u nog niet bent geholpen door een stafflid, verzoeken wij u "+
				"vriendelijk het onderstaande formulier in te vullen, zodat de refundcoördinatoren uw aanvraag in "+
				"behandeling kunnen nemen:\n\n**Naam:**\n**Datum:**\n**Reden voor refund:**\n**Bewijs:**", user)
		},
		referred: func(user, referrer string) string {
			return fmt.Sprintf("Beste %s,\n\nU bent doorverwezen door %s om een refund-aanvraag in te dienen. Zorg "+
				"ervoor dat u onderstaand format correct en volledig invult zodat uw aanvraag correct en volledig kan "+
				"worden verwerkt.\n\n**Naam:**\n**Datum:**\n**Reden voor refund:**\n**Bewijs:**", user, referrer)
		},
	},
	"unban": {
		body: func(user string) string {
			return fmt.Sprintf("Beste %s,\n\nU dient het volgende formulier in te vullen voor uw unban-aanvraag:\n\n"+
				"**Naam:**\n**Ban-ID / Reden van Ban:**\n**Bewijs:**\n**Waarom zou u unbanned moeten worden:**", user)
		},
		referred: func(user, referrer string) string {
			return fmt.Sprintf("Beste %s,\n\nAangezien u bent verbannen door %s verwijs ik u vriendelijk door naar deze "+
				"persoon. Hij / zij zal deze ticket in behandeling nemen als hij / zij tijd heeft. Gelieve geduldig af te "+
				"wachten en geen tags te gebruiken. Dit kan leiden tot vertraging of sluiting van het ticket.", user, referrer)
		},
	},
	"staff_overstap": {
		body: func(user string) string {
			return fmt.Sprintf("Beste %s,\n\nNaar aanleiding van uw wens om over te stappen naar het staffteam, "+
				"verzoeken wij u vriendelijk om het onderstaande formulier in te vullen:\n\n"+
				"**Naam:**\n**Leeftijd:**\n**Huidige / Oude Rang:**\n**Discord invite-link + Server naam:**\n**Opmerkingen:**", user)
		},
	},
	"gang_aanvraag": {
		body: func(user string) string {
			return fmt.Sprintf("Beste %s,\n\nBedankt voor uw interesse in het starten van een gang. Om een aanvraag te "+
				"doen, verzoeken wij u vriendelijk de onderstaande informatie in te vullen:\n\n"+
				"**Naam Boss:**\n**Leeftijd Boss:**\n**Gangnaam:**\n**Opmerkingen:**\n**Aantal leden:**", user)
		},
	},
}

// Wiki builds the canned letter for a template key, addressed to userID
// and signed by actorID. A referrer switches supported letters to their
// referral wording; a referral pointing at the addressee themselves is
// ignored.
func (s *TemplateService) Wiki(topic, userID, actorID, referredByID string) (string, error) {
	letter, ok := wikiLetters[topic]
	if !ok {
		return "", apperrors.NewNotFound("wiki template", map[string]any{"template": topic})
	}
	user := fmt.Sprintf("<@%s>", userID)
	var body string
	if letter.referred != nil && referredByID != "" && referredByID != userID {
		body = letter.referred(user, fmt.Sprintf("<@%s>", referredByID))
	} else {
		body = letter.body(user)
	}
	return body + fmt.Sprintf("\n\nMet vriendelijke groet,\n\n> <@%s>\n> Team Alkmaar RP", actorID), nil
}

// WikiTopics lists the available template keys, sorted.
func (s *TemplateService) WikiTopics() []string {
	topics := make([]string, 0, len(wikiLetters))
	for topic := range wikiLetters {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// RefundVerdict builds the embed announcing a refund decision.
func (s *TemplateService) RefundVerdict(approved bool, userID, reason string) platform.Embed {
	if approved {
		return platform.Embed{
			Title: "✅ Refund Goedgekeurd",
			Description: fmt.Sprintf("<@%s>, je refund aanvraag is **goedgekeurd**. Je spullen worden zo snel mogelijk "+
				"teruggezet. Bedankt voor je geduld!", userID),
			Color:     "Green",
			Footer:    "Alkmaar Roleplay",
			Timestamp: time.Now(),
		}
	}
	return platform.Embed{
		Title: "❌ Refund Afgewezen",
		Description: fmt.Sprintf("<@%s>, je refund aanvraag is helaas **afgewezen**.\n\n**Reden:** %s", userID,
			defaultString(reason, "Geen reden opgegeven.")),
		Color:     "Red",
		Footer:    "Alkmaar Roleplay",
		Timestamp: time.Now(),
	}
}

// SollicitatieVerdict builds the embeds announcing an application
// decision. Acceptance names the assigned rank and is followed by the
// mandatory staff-rules notices; rejection is a single embed carrying
// the reason.
func (s *TemplateService) SollicitatieVerdict(accepted bool, actorTag, rank, reason string) []platform.Embed {
	if !accepted {
		return []platform.Embed{{
			Title: "❌ Sollicitatie Afgewezen",
			Description: fmt.Sprintf("Beste Sollicitant,\n\nBedankt voor uw sollicitatie voor het staffteam van "+
				"Alkmaar Roleplay, maar helaas bent u afgewezen door een staffcoördinator met de reden: %s.\n"+
				"Indien u vragen heeft kan u dat gerust laten weten in de ticket.\n\n"+
				"Met vriendelijke groet,\n\n> %s\n> Alkmaar Roleplay",
				defaultString(reason, "Geen reden opgegeven"), actorTag),
			Color:     "Red",
			Timestamp: time.Now(),
		}}
	}
	verdict := platform.Embed{
		Title: "✅ Sollicitatie Aangenomen",
		Description: fmt.Sprintf("Beste Sollicitant,\n\nBedankt voor uw sollicitatie, wij willen u feliciteren met "+
			"dat u bent **aangenomen** 🎉\nU wordt aangenomen op de rang %s door 1 van onze staffcoördinatoren.\n"+
			"Proficiat namens heel het staffteam!\n\n"+
			"Met vriendelijke groet,\n> %s\n> Alkmaar Roleplay\n> Staffcoördinator", rank, actorTag),
		Color:     "DarkGreen",
		Timestamp: time.Now(),
	}
	info := platform.Embed{
		Title: "📢 Belangrijk",
		Description: "Gelieve **alle staffregels hieronder goed te lezen** en je eraan te houden. Bij overtreding " +
			"kunnen sancties volgen.\n\nLet op: u bent ook verplicht om onze discord guildtag te gebruiken en ons in " +
			"uw bio te zetten. Dit is verplicht voor alle staffleden.\nVoorbeeld: 'Alkmaar Roleplay | [Rang]'.",
		Color: "Yellow",
	}
	rules := platform.Embed{
		Title:       "📋 Staffregels & Ingame Regels",
		Description: staffRules,
		Color:       "Blue",
	}
	return []platform.Embed{verdict, info, rules}
}

var staffRules = "**Tickets**\n" +
	"・Tickets alleen behandelen als ze juist zijn ingevuld (denk aan template, clip, ban-id of een screenshot van de ban-id)\n" +
	"・Reageren in elkaars tickets is niet toegestaan, alleen indien je wordt getagged door een mede-stafflid\n" +
	"・Een ticket claimen is ook afhandelen binnen 3 dagen; reageert de desbetreffende persoon niet binnen 2 dagen dan sluit je de ticket\n" +
	"・Word je getagged door degene die het ticket heeft gemaakt, geef je een waarschuwing dit niet meer te doen\n\n" +
	"**Ingame zaken**\n" +
	"・Je ingame naam moet hetzelfde zijn als in de discord\n" +
	"・Eigen staffzaak/gang gerelateerde zaken: demote of ontslag\n" +
	"・Jezelf of vrienden reviven of healen: demote of ontslag\n" +
	"・Teleporteren in jouw voordeel: staffwarn of ontslag\n" +
	"・Godmode of superjump: demote of ontslag\n" +
	"・Jezelf onprofessioneel opstellen zowel in als uit staffdienst: staffwarn of demote\n" +
	"・Je status niet uitzetten wanneer je een andere stad speelt: ontslag\n" +
	"・Midden in een scenario handelen: staffwarn\n\n" +
	"**Regels taken**\n" +
	"・Als je iemand op taken stuurt dien je ook een notitie te maken\n" +
	"・Als de persoon nog geen notities heeft altijd eerst een warn geven\n" +
	"・Eerste keer 50 taken, tweede keer 100 taken, derde keer een ban volgens de APV"

// DismissalNotice builds the embed posted when a staff member is dismissed.
func (s *TemplateService) DismissalNotice(staffTag, reason string) platform.Embed {
	return platform.Embed{
		Title: "👋 Staff Ontslagen",
		Description: fmt.Sprintf("**%s** maakt vanaf vandaag geen deel meer uit van het staffteam.\n\n**Reden:** %s",
			staffTag, defaultString(reason, "Geen reden opgegeven.")),
		Color:     "DarkRed",
		Footer:    "Alkmaar Roleplay",
		Timestamp: time.Now(),
	}
}

// DismissalDM builds the message privately delivered to dismissed staff.
func (s *TemplateService) DismissalDM(reason string) platform.Embed {
	return platform.Embed{
		Title: "🚫 Je bent ontslagen",
		Description: fmt.Sprintf("Je bent ontslagen uit het staffteam van Alkmaar Roleplay.\n\n**Reden:** %s",
			defaultString(reason, "Geen reden opgegeven.")),
		Color:     "DarkRed",
		Footer:    "Alkmaar Roleplay",
		Timestamp: time.Now(),
	}
}

// PanelIntro returns the description text of the ticket panel embed.
func (s *TemplateService) PanelIntro() string {
	return "Welkom bij het ticketsysteem van **Alkmaar Roleplay**!\n\n" +
		"Selecteer hieronder de categorie die het beste bij je vraag past. Er wordt dan een privékanaal " +
		"voor je aangemaakt waar een staffmedewerker je zo snel mogelijk helpt.\n\n" +
		"⚠️ Misbruik van het ticketsysteem kan leiden tot een waarschuwing of ban."
}

// GangIntake returns the intake form posted into a fresh gang-application
// ticket.
func (s *TemplateService) GangIntake(userID string) string {
	return fmt.Sprintf("<@%s> Vul onderstaand formulier volledig in:\n\n"+
		"**1. Gangnaam:**\n"+
		"**2. Aantal leden (minimaal 4):**\n"+
		"**3. Namen van de leden:**\n"+
		"**4. Gangkleuren:**\n"+
		"**5. Gewenst territorium:**\n"+
		"**6. Achtergrondverhaal:**\n\n"+
		"De onderwereld-coördinator neemt je aanvraag daarna in behandeling.", userID)
}

// ClosedTicketFarewell returns the description of the close DM.
func (s *TemplateService) ClosedTicketFarewell() string {
	return "Bedankt voor het openen van een ticket bij **Alkmaar Roleplay**. " +
		"Loop je tegen nieuwe vragen of problemen aan? Open dan gerust een nieuw ticket.\n\n" +
		"Hieronder vind je de transcript van je gesloten ticket. " +
		"Laat ons ook weten hoe wij het hebben gedaan via de sterren hieronder!"
}
