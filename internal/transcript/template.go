package transcript

const transcriptTemplate = `<!DOCTYPE html>
<html lang="nl">
<head>
<meta charset="UTF-8">
<title>Transcript - {{ info.ChannelName }}</title>
<style>
body { font-family: 'Arial', sans-serif; background-color: #36393f; color: #dcddde; padding: 20px; margin: 0; }
h1 { color: #7289da; font-size: 1.8rem; border-bottom: 2px solid #7289da; padding-bottom: 10px; margin-bottom: 20px; }
.header { background-color: #2f3136; border-radius: 5px; padding: 15px; margin-bottom: 20px; border-left: 4px solid #7289da; }
.header h2 { color: #7289da; font-size: 1.4rem; margin-bottom: 10px; }
.header p { margin: 5px 0; font-size: 1rem; }
.footer { background-color: #2f3136; border-radius: 5px; padding: 15px; margin-top: 20px; border-left: 4px solid #ff6b6b; text-align: center; }
.footer p { margin: 5px 0; font-size: 0.9rem; color: #b9bbbe; }
.message { background-color: #2f3136; border-radius: 5px; padding: 10px; margin-bottom: 10px; display: flex; flex-direction: column; }
.author { font-weight: bold; color: #ffffff; font-size: 1.1rem; }
.timestamp { color: #72767d; font-size: 0.85rem; margin-left: 10px; }
.content { color: #dcddde; margin-top: 8px; word-wrap: break-word; }
.bot-message .author { color: #99aab5; }
.bot-message .content { color: #b9bbbe; }
.user-message .author { color: #00b0f4; }
.user-message .content { color: #ffffff; }
.embed { background-color: #2f3136; border-left: 4px solid #7289da; border-radius: 5px; padding: 10px; margin-top: 10px; color: #dcddde; }
.embed-title { font-weight: bold; color: #ffffff; font-size: 1.1rem; }
.embed-description { margin: 8px 0; }
.embed-field { margin: 5px 0; }
.embed-field-name { font-weight: bold; color: #7289da; }
.embed-field-value { color: #dcddde; }
.embed-footer { font-size: 0.8rem; color: #72767d; margin-top: 10px; }
</style>
</head>
<body>
<h1>Transcript van {{ info.ChannelName }}</h1>
<div class="header">
<h2>Ticket Informatie</h2>
<p><strong>Ticket Naam:</strong> {{ info.ChannelName }}</p>
<p><strong>Maker:</strong> {{ info.CreatorLabel }}</p>
<p><strong>Categorie:</strong> {{ info.CategoryLabel }}</p>
<p><strong>Gesloten door:</strong> {{ info.ClosedByLabel }}</p>
<p><strong>Reden:</strong> {{ info.Reason }}</p>
</div>
{% for msg in messages %}<div class="message {{ msg.Class }}">
<div class="author">{{ msg.AuthorLabel }} <span class="timestamp">[{{ msg.Timestamp }}]</span></div>
{% if msg.Body %}<div class="content">{{ msg.Body }}</div>
{% elif not msg.Blocks %}<div class="content"><i>Geen inhoud</i></div>
{% endif %}{% for block in msg.Blocks %}<div class="embed">
{% if block.Title %}<div class="embed-title">{{ block.Title }}</div>
{% endif %}{% if block.Description %}<div class="embed-description">{{ block.Description }}</div>
{% endif %}{% for field in block.Fields %}<div class="embed-field"><div class="embed-field-name">{{ field.Name }}</div><div class="embed-field-value">{{ field.Value }}</div></div>
{% endfor %}{% if block.Footer %}<div class="embed-footer">{{ block.Footer }}</div>
{% endif %}</div>
{% endfor %}</div>
{% endfor %}<div class="footer">
<p><strong>Ticket gesloten op:</strong> {{ closedAt }}</p>
<p>Bedankt voor het gebruiken van onze support. Hopelijk tot snel op Alkmaar Roleplay!</p>
</div>
</body></html>
`
