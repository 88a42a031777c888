package composer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TolgaCulfa/sunum2/internal/deck"
)

// styleDescriptions maps presentation styles to their Turkish tone lines in
// the generation contract.
var styleDescriptions = map[string]string{
	"professional": "profesyonel ve kurumsal bir tonda",
	"creative":     "yaratıcı ve ilham verici bir tonda",
	"educational":  "eğitici ve öğretici bir tonda",
	"minimal":      "minimal ve öz bir tonda",
	"storytelling": "hikaye anlatımı tarzında",
}

func styleDescription(style string) string {
	if d, ok := styleDescriptions[style]; ok {
		return d
	}
	return styleDescriptions["professional"]
}

// generationPrompt builds the natural-language contract instructing the
// provider to emit exactly one JSON document of the deck shape.
func generationPrompt(topic string, slideCount int, style, audience string) string {
	audienceLine := ""
	if audience != "" {
		audienceLine = fmt.Sprintf("Hedef kitle: %s.", audience)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sen dünya çapında bir sunum tasarım uzmanısın. %q konusunda %d slaytlık, %s bir sunum oluştur.\n",
		topic, slideCount, styleDescription(style))
	b.WriteString(audienceLine)
	b.WriteString(`

Her slayt için şu JSON formatında çıktı ver:
{
  "title": "Sunum Başlığı",
  "slides": [
    {
      "slideNumber": 1,
      "title": "Slayt Başlığı",
      "content": ["Madde 1", "Madde 2", "Madde 3", "Madde 4"],
      "notes": "Konuşmacı notları",
      "layout": "title|content|two-column|image-text|quote|stats|closing",
      "bgColor": "#hex renk kodu slayt arka planı için"
    }
  ]
}

Kurallar:
- İlk slayt "title" layout olmalı (kapak slaytı)
- Son slayt "closing" layout olmalı (kapanış/teşekkür)
- Her slaytın content dizisinde en fazla 5 madde olsun
- İçerik Türkçe olmalı
- Layout türlerini çeşitli kullan
- İçerik bilgilendirici, profesyonel ve etkileyici olsun
- stats layout kullanıyorsan content dizisinde "değer|açıklama" formatında yaz
- quote layout kullanıyorsan content dizisinde ilk eleman alıntı, ikinci eleman alıntı sahibi olsun
- Her slayt için uygun bgColor belirle (koyu tonlar tercih et)

SADECE JSON formatında cevap ver, başka açıklama ekleme.`)
	return b.String()
}

// enhancePrompt builds the narrower contract for rewriting one slide.
func enhancePrompt(slide deck.Slide, instruction string) string {
	slideJSON, _ := json.Marshal(slide)
	return fmt.Sprintf(`Bu slaytı geliştir: %s

Kullanıcı talebi: %q

Aynı JSON formatında güncellenmiş slaytı döndür:
{
  "slideNumber": %d,
  "title": "Güncel Başlık",
  "content": ["Madde 1", "Madde 2"],
  "notes": "Konuşmacı notları",
  "layout": "%s"
}

SADECE JSON formatında cevap ver.`, slideJSON, instruction, slide.SlideNumber, slide.Layout)
}
