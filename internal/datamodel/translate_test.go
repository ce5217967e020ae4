package datamodel_test

import (
	"encoding/json"
	"testing"

	"github.com/kurochkinivan/webpa_collector/internal/datamodel"
	"github.com/kurochkinivan/webpa_collector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaXML = `<dm:document xmlns:dm="urn:broadband-forum-org:cwmp:datamodel-1-8">
	<model name="Device:2.15">
		<object name="Device." access="readOnly">
			<parameter name="SSID" access="readWrite"/>
		</object>
	</model>
</dm:document>`

func TestTranslate_StripNamespace(t *testing.T) {
	t.Parallel()

	out, err := datamodel.Translate([]byte(schemaXML), "schema.xml", datamodel.TranslateOptions{
		StripNamespace: true,
	})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Contains(t, doc, "document")
	assert.NotContains(t, doc, "dm:document")
}

func TestTranslate_KeepNamespace(t *testing.T) {
	t.Parallel()

	out, err := datamodel.Translate([]byte(schemaXML), "schema.xml", datamodel.TranslateOptions{})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Contains(t, doc, "dm:document")
}

func TestTranslate_StripText(t *testing.T) {
	t.Parallel()

	const xmlWithBlanks = `<doc><note>   </note><object name="Device."/></doc>`

	out, err := datamodel.Translate([]byte(xmlWithBlanks), "schema.xml", datamodel.TranslateOptions{
		StripText: true,
	})
	require.NoError(t, err)

	var wrapper map[string]map[string]any
	require.NoError(t, json.Unmarshal(out, &wrapper))

	doc, ok := wrapper["doc"]
	require.True(t, ok)

	assert.NotContains(t, doc, "note", "whitespace-only text nodes must be stripped")
	assert.Contains(t, doc, "object")
}

func TestTranslate_Pretty(t *testing.T) {
	t.Parallel()

	out, err := datamodel.Translate([]byte(schemaXML), "schema.xml", datamodel.TranslateOptions{
		Pretty: true,
	})
	require.NoError(t, err)

	assert.Contains(t, string(out), "\n  ")

	var doc any
	assert.NoError(t, json.Unmarshal(out, &doc))
}

func TestTranslate_MalformedXML(t *testing.T) {
	t.Parallel()

	_, err := datamodel.Translate([]byte(`<unclosed><tag>`), "schema.xml", datamodel.TranslateOptions{})

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "schema.xml", parseErr.Source)
}
