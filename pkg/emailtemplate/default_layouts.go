package emailtemplate

// DefaultLayoutSource is the layout used when no layout file is configured.
// Its per-kind branches produce the same markup as RenderFragment.
const DefaultLayoutSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{title}}</title>
</head>
<body style="margin:0;padding:0;background-color:{{bgColor}};color:{{textColor}};font-family:Arial,Helvetica,sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0" style="background-color:{{bgColor}};">
<tr>
<td align="center" style="padding:24px 12px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" border="0" style="max-width:600px;width:100%;">
<tr>
<td style="padding:0 0 24px 0;text-align:center;color:{{textColor}};">
<h1 style="margin:0;font-size:28px;">{{title}}</h1>
</td>
</tr>
<tr>
<td style="color:{{textColor}};font-size:16px;line-height:1.5;">
{% for section in sections %}{% if section.type == "text" %}<div style="margin:0 0 16px 0;">{{ section.content }}</div>{% elsif section.type == "image" %}<div style="margin:0 0 16px 0;"><img src="{{ section.url }}" alt="" style="display:block;max-width:100%;height:auto;" /></div>{% elsif section.type == "cta" %}<div style="margin:0 0 16px 0;text-align:center;"><a href="{% if section.url == "" %}#{% else %}{{ section.url }}{% endif %}" style="display:inline-block;padding:12px 24px;background-color:#007bff;color:#ffffff;text-decoration:none;border-radius:4px;">{% if section.content == "" %}Click Me{% else %}{{ section.content }}{% endif %}</a></div>{% endif %}
{% endfor %}
</td>
</tr>
<tr>
<td style="padding:24px 0 0 0;text-align:center;font-size:12px;color:{{textColor}};">
{{footer}}
</td>
</tr>
</table>
</td>
</tr>
</table>
</body>
</html>
`

// DefaultMJMLLayoutSource is the default layout for the mjml format
const DefaultMJMLLayoutSource = `<mjml>
  <mj-head>
    <mj-title>{{title}}</mj-title>
    <mj-attributes>
      <mj-all font-family="Arial, Helvetica, sans-serif" />
    </mj-attributes>
  </mj-head>
  <mj-body background-color="{{bgColor}}">
    <mj-section>
      <mj-column>
        <mj-text align="center" color="{{textColor}}" font-size="28px">{{title}}</mj-text>
      </mj-column>
    </mj-section>
    <mj-section>
      <mj-column>
{% for section in sections %}        <mj-text color="{{textColor}}" font-size="16px" line-height="1.5">{{ section | section_html }}</mj-text>
{% endfor %}      </mj-column>
    </mj-section>
    <mj-section>
      <mj-column>
        <mj-text align="center" color="{{textColor}}" font-size="12px">{{footer}}</mj-text>
      </mj-column>
    </mj-section>
  </mj-body>
</mjml>
`

// DefaultLayout returns the built-in layout for a format
func DefaultLayout(format Format) Layout {
	if format == FormatMJML {
		return NewLayout(DefaultMJMLLayoutSource, FormatMJML)
	}
	return NewLayout(DefaultLayoutSource, FormatHTML)
}
