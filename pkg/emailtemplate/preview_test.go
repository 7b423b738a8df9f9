package emailtemplate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultEmail() Email {
	return Email{
		BgColor:   "#ffffff",
		TextColor: "#000000",
		Title:     "Title",
		Footer:    "© 2025 My Company",
	}
}

func TestPreview_ScalarsAndSections(t *testing.T) {
	email := defaultEmail()
	email.Blocks = []Block{{ID: "s1", Kind: KindText, Content: "<p>Hello</p>"}}

	out, err := Preview(DefaultLayout(FormatHTML), email)
	require.NoError(t, err)

	assert.Contains(t, out, "<p>Hello</p>")
	assert.Contains(t, out, "<title>Title</title>")
	assert.Contains(t, out, "background-color:#ffffff")
	assert.Contains(t, out, "© 2025 My Company")
	assert.NotContains(t, out, "{%")
	assert.NotContains(t, out, "{{")
}

func TestPreview_DiscardsBlockTemplate(t *testing.T) {
	layout := NewLayout(`<body>{% for s in sections %}{% if s.type == "cta" %}<b>{{ s.content }}</b>{% endif %}{% endfor %}</body>`, FormatHTML)
	email := defaultEmail()
	email.Blocks = []Block{{ID: "c", Kind: KindCTA}}

	out, err := Preview(layout, email)
	require.NoError(t, err)

	assert.Equal(t, "<body>"+RenderFragment(email.Blocks[0])+"</body>", out)
}

func TestPreview_OrderFollowsSections(t *testing.T) {
	email := defaultEmail()
	email.Blocks = []Block{
		{ID: "c", Kind: KindCTA, Content: "Go"},
		{ID: "t", Kind: KindText, Content: "<p>Body</p>"},
	}

	out, err := Preview(DefaultLayout(FormatHTML), email)
	require.NoError(t, err)

	ctaAt := strings.Index(out, ">Go</a>")
	textAt := strings.Index(out, "<p>Body</p>")
	require.True(t, ctaAt >= 0 && textAt >= 0)
	assert.Less(t, ctaAt, textAt)
}

func TestPreview_UnresolvedPlaceholdersStayLiteral(t *testing.T) {
	layout := NewLayout(`{{title}} {{subtitle}} {% if x %}{% endif %}{% for s in sections %}{% endfor %}`, FormatHTML)

	out, err := Preview(layout, defaultEmail())
	require.NoError(t, err)

	assert.Equal(t, `Title {{subtitle}} {% if x %}{% endif %}`, out)
}

func TestPreview_ValuesAreNotRescanned(t *testing.T) {
	email := defaultEmail()
	email.Title = "{{footer}}"
	email.Blocks = []Block{{ID: "t", Kind: KindText, Content: "{{title}}"}}

	out, err := Preview(NewLayout(`{{title}}|{% for s in sections %}{% endfor %}|{{footer}}`, FormatHTML), email)
	require.NoError(t, err)

	assert.Equal(t, "{{footer}}|"+RenderFragment(email.Blocks[0])+"|© 2025 My Company", out)
}

func TestPreview_InvalidLayout(t *testing.T) {
	_, err := Preview(NewLayout(`{% for a in sections %}{% endfor %}{% for b in sections %}{% endfor %}`, FormatHTML), defaultEmail())
	assert.ErrorIs(t, err, ErrMultipleSectionBlocks)

	_, err = Preview(NewLayout(`<p>{{title}}</p>`, FormatHTML), defaultEmail())
	assert.ErrorIs(t, err, ErrMissingSectionBlock)
}
