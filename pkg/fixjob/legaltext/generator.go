package legaltext

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

type Kind string

const (
	KindImprint       Kind = "imprint"
	KindPrivacyPolicy Kind = "privacy-policy"
)

// Company is the publisher data filled into the generated legal texts.
type Company struct {
	Name          string
	Owner         string
	Street        string
	City          string
	Email         string
	Phone         string
	VATID         string
	RegisterCourt string
}

type Generator struct {
	company Company
}

func NewGenerator(company Company) *Generator {
	return &Generator{company: company}
}

// Generate renders the requested legal text as a standalone HTML document.
// Only German is supported; other languages return an error rather than an
// untranslated document.
func (g *Generator) Generate(kind Kind, language string) (string, error) {
	if language != "" && language != "de" {
		return "", fmt.Errorf("unsupported language %q", language)
	}

	var tmpl *template.Template
	switch kind {
	case KindImprint:
		tmpl = imprintTemplate
	case KindPrivacyPolicy:
		tmpl = privacyTemplate
	default:
		return "", fmt.Errorf("unknown legal text kind %q", kind)
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, map[string]any{
		"Company":   g.company,
		"Generated": time.Now().Format("02.01.2006"),
	})
	if err != nil {
		return "", fmt.Errorf("render legal text: %w", err)
	}
	return buf.String(), nil
}

var imprintTemplate = template.Must(template.New("imprint").Parse(`<!DOCTYPE html>
<html lang="de">
<head><meta charset="utf-8"><title>Impressum</title></head>
<body>
<h1>Impressum</h1>
<h2>Angaben gemäß § 5 TMG</h2>
<p>{{.Company.Name}}<br>
{{.Company.Owner}}<br>
{{.Company.Street}}<br>
{{.Company.City}}</p>
<h2>Kontakt</h2>
<p>Telefon: {{.Company.Phone}}<br>
E-Mail: {{.Company.Email}}</p>
{{if .Company.VATID}}<h2>Umsatzsteuer-ID</h2>
<p>Umsatzsteuer-Identifikationsnummer gemäß § 27 a Umsatzsteuergesetz: {{.Company.VATID}}</p>{{end}}
{{if .Company.RegisterCourt}}<h2>Registereintrag</h2>
<p>Registergericht: {{.Company.RegisterCourt}}</p>{{end}}
<p>Stand: {{.Generated}}</p>
</body>
</html>
`))

var privacyTemplate = template.Must(template.New("privacy").Parse(`<!DOCTYPE html>
<html lang="de">
<head><meta charset="utf-8"><title>Datenschutzerklärung</title></head>
<body>
<h1>Datenschutzerklärung</h1>
<h2>1. Verantwortlicher</h2>
<p>{{.Company.Name}}, {{.Company.Street}}, {{.Company.City}}<br>
E-Mail: {{.Company.Email}}</p>
<h2>2. Erhebung und Speicherung personenbezogener Daten</h2>
<p>Beim Besuch dieser Website werden durch den Browser automatisch Informationen an den
Server übermittelt und temporär in Logfiles gespeichert (IP-Adresse, Datum und Uhrzeit
des Zugriffs, aufgerufene Seite). Die Verarbeitung erfolgt auf Grundlage von
Art. 6 Abs. 1 lit. f DSGVO.</p>
<h2>3. Cookies und Einwilligung</h2>
<p>Technisch nicht notwendige Cookies werden erst nach Ihrer Einwilligung gemäß § 25 TTDSG
gesetzt. Die Einwilligung kann jederzeit mit Wirkung für die Zukunft widerrufen werden.</p>
<h2>4. Ihre Rechte</h2>
<p>Sie haben das Recht auf Auskunft (Art. 15 DSGVO), Berichtigung (Art. 16 DSGVO),
Löschung (Art. 17 DSGVO), Einschränkung der Verarbeitung (Art. 18 DSGVO) und
Datenübertragbarkeit (Art. 20 DSGVO) sowie ein Beschwerderecht bei einer
Aufsichtsbehörde.</p>
<p>Stand: {{.Generated}}</p>
</body>
</html>
`))
