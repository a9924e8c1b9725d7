// Package invoicexml arma el documento XML de la nota fiscal y su digest canónico.
package invoicexml

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// Namespace del documento.
const Namespace = "urn:oficina-manager:nota-servico:1"

// Builder implementa ports.InvoiceXMLBuilder.
type Builder struct{}

// NewBuilder crea el builder.
func NewBuilder() *Builder { return &Builder{} }

var _ ports.InvoiceXMLBuilder = (*Builder)(nil)

// Build genera el XML de la nota y el SHA-256 (hex) de su forma canónica (C14N).
// El digest se calcula sobre el elemento raíz, sin la declaración XML.
func (b *Builder) Build(profile *entity.WorkshopProfile, inv *entity.IssuedInvoice, car *entity.Car) ([]byte, string, error) {
	if inv == nil {
		return nil, "", fmt.Errorf("invoicexml: nota nula")
	}
	if profile == nil {
		profile = &entity.WorkshopProfile{}
	}

	doc := etree.NewDocument()
	root := doc.CreateElement("NotaServico")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("Id", "nota-"+strconv.Itoa(inv.Number))

	root.CreateElement("Numero").SetText(strconv.Itoa(inv.Number))
	root.CreateElement("DataEmissao").SetText(inv.DateIssued.Format("2006-01-02T15:04:05"))
	root.CreateElement("Tipo").SetText(string(inv.Type))

	prest := root.CreateElement("Prestador")
	prest.CreateElement("Nome").SetText(profile.Name)
	prest.CreateElement("CNPJ").SetText(profile.TaxID)
	prest.CreateElement("Endereco").SetText(profile.Address)
	prest.CreateElement("Telefone").SetText(profile.Phone)
	prest.CreateElement("Email").SetText(profile.Email)

	root.CreateElement("Tomador").CreateElement("Nome").SetText(inv.CustomerName)

	veic := root.CreateElement("Veiculo")
	veic.CreateElement("Placa").SetText(inv.CarPlate)
	if car != nil {
		veic.CreateElement("Marca").SetText(car.Brand)
		veic.CreateElement("Modelo").SetText(car.Model)
		veic.CreateElement("Ano").SetText(strconv.Itoa(car.Year))
	}

	serv := root.CreateElement("Servico")
	serv.CreateElement("Descricao").SetText(inv.Description)
	serv.CreateElement("ValorTotal").SetText(inv.TotalValue.StringFixed(2))

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, "", fmt.Errorf("invoicexml: serializar: %w", err)
	}
	digest, err := Digest(buf.Bytes())
	if err != nil {
		return nil, "", err
	}
	return append([]byte(xml.Header), buf.Bytes()...), digest, nil
}

// Digest SHA-256 (hex) del documento canonicalizado. Acepta el XML con o sin declaración.
func Digest(data []byte) (string, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte(xml.Header)))
	canonical, err := canonicalize(data)
	if err != nil {
		return "", fmt.Errorf("invoicexml: c14n: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
