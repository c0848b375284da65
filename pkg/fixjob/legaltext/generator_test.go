package legaltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompany() Company {
	return Company{
		Name:   "Beispiel GmbH",
		Owner:  "Max Mustermann",
		Street: "Musterstraße 1",
		City:   "10115 Berlin",
		Email:  "info@beispiel.de",
		Phone:  "+49 30 123456",
		VATID:  "DE123456789",
	}
}

func TestGenerateImprint(t *testing.T) {
	g := NewGenerator(testCompany())

	html, err := g.Generate(KindImprint, "de")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Impressum</h1>")
	assert.Contains(t, html, "Beispiel GmbH")
	assert.Contains(t, html, "DE123456789")
}

func TestGeneratePrivacyPolicy(t *testing.T) {
	g := NewGenerator(testCompany())

	html, err := g.Generate(KindPrivacyPolicy, "")
	require.NoError(t, err)
	assert.Contains(t, html, "Datenschutzerklärung")
	assert.Contains(t, html, "DSGVO")
	assert.Contains(t, html, "info@beispiel.de")
}

func TestGenerateUnsupportedLanguage(t *testing.T) {
	g := NewGenerator(testCompany())

	_, err := g.Generate(KindImprint, "en")
	assert.Error(t, err)
}

func TestGenerateUnknownKind(t *testing.T) {
	g := NewGenerator(testCompany())

	_, err := g.Generate(Kind("agb"), "de")
	assert.Error(t, err)
}
