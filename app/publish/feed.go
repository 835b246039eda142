package publish

import (
	"bytes"
	"strings"

	"github.com/lysyi3m/catalog-comb/app/catalog"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Fields written verbatim inside CDATA sections.
var cdataFields = map[string]bool{
	"name":        true,
	"description": true,
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Run(products []catalog.Product) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n<catalog>\n")

	for _, product := range products {
		g.writeProduct(&buf, product)
	}

	buf.WriteString("</catalog>\n")

	return buf.Bytes()
}

func (g *Generator) writeProduct(buf *bytes.Buffer, product catalog.Product) {
	buf.WriteString("  <product>\n")

	for _, field := range catalog.Fields {
		value := product.Field(field)

		buf.WriteString("    <")
		buf.WriteString(field)
		buf.WriteString(">")
		if cdataFields[field] {
			writeCDATA(buf, value)
		} else {
			textEscaper.WriteString(buf, value)
		}
		buf.WriteString("</")
		buf.WriteString(field)
		buf.WriteString(">\n")
	}

	buf.WriteString("  </product>\n")
}

// writeCDATA splits any "]]>" in the value across two sections.
func writeCDATA(buf *bytes.Buffer, value string) {
	buf.WriteString("<![CDATA[")
	buf.WriteString(strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>"))
	buf.WriteString("]]>")
}
