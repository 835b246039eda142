package catalog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const productElement = "product"

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run extracts every product element of the document in document order.
// A malformed document yields no products at all.
func (p *Parser) Run(data []byte) ([]Product, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog document is empty")
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = p.charsetReader

	products := make([]Product, 0)
	sawRoot := false
	rootClosed := false
	depth := 0

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("failed to parse catalog: element <%s> after document element", t.Name.Local)
			}
			sawRoot = true

			if t.Name.Local != productElement {
				depth++
				continue
			}

			var product Product
			if err := decoder.DecodeElement(&product, &t); err != nil {
				return nil, fmt.Errorf("failed to parse catalog: %w", err)
			}
			products = append(products, p.normalizeProduct(product))

			// a product as the document element closes the root
			if depth == 0 {
				rootClosed = true
			}

		case xml.EndElement:
			depth--
			if depth == 0 {
				rootClosed = true
			}

		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("failed to parse catalog: text outside document element")
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("failed to parse catalog: no root element")
	}

	return products, nil
}

func (p *Parser) normalizeProduct(product Product) Product {
	fields := []*string{
		&product.ID, &product.Name, &product.Description, &product.Price, &product.PvpBigbuy,
		&product.Pvd, &product.Iva, &product.EAN13, &product.Stock, &product.Image1,
		&product.Category, &product.Brand, &product.DateUpd, &product.Width, &product.Height,
		&product.Depth, &product.Weight,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
	return product
}

// charsetReader is only consulted for documents that declare a non UTF-8 encoding.
func (p *Parser) charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
