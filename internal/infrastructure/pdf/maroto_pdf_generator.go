// Package pdf genera los documentos impresos de la oficina con Maroto v2.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo + Nome da oficina + CNPJ │ Título + Nº + Data  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTATO: Endereço / Tel / Email                             │
//	│  PARTE: cliente + veículo, ou funcionário                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CORPO: serviços, descrição ou pagamento                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL / FOOTER                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain/carflow"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.DocumentGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ ports.DocumentGenerator = (*MarotoPDFGenerator)(nil)

// BudgetPDF orçamento con las líneas de servicio y el total.
func (g *MarotoPDFGenerator) BudgetPDF(_ context.Context, profile *entity.WorkshopProfile, b *entity.Budget) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("pdf: orçamento nulo")
	}
	profile = orEmpty(profile)
	m := newDocument(profile, "Orçamento")

	m.AddRows(headerRow(profile, "ORÇAMENTO", shortID(b.ID), b.CreationDate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(profile))
	m.AddRows(partyRow("CLIENTE", b.CustomerName,
		fmt.Sprintf("Tel: %s   |   Email: %s", nonEmpty(b.CustomerPhone, "-"), nonEmpty(b.CustomerEmail, "-"))))
	m.AddRows(partyRow("VEÍCULO", strings.TrimSpace(b.VehicleBrand+" "+b.VehicleModel),
		fmt.Sprintf("Ano: %s   |   Placa: %s", yearText(b.VehicleYear), nonEmpty(b.VehiclePlate, "-"))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow("Descrição do serviço", "Valor"))
	for _, s := range b.Services {
		m.AddRows(tableLineRow(s.Description, money.BRL(s.Value)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("TOTAL:", money.BRL(b.TotalValue)))
	m.AddRows(row.New(4))
	m.AddRows(noteRow("Status: " + string(b.Status) + ". Orçamento sujeito a alteração após desmontagem do veículo."))

	return generate(m)
}

// InvoicePDF nota de serviço; el pie incluye el digest del XML y su QR.
func (g *MarotoPDFGenerator) InvoicePDF(_ context.Context, profile *entity.WorkshopProfile, inv *entity.IssuedInvoice, car *entity.Car) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("pdf: nota nula")
	}
	profile = orEmpty(profile)
	m := newDocument(profile, "Nota de Serviço")

	m.AddRows(headerRow(profile, "NOTA DE SERVIÇO", "Nº "+strconv.Itoa(inv.Number), inv.DateIssued))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(profile))
	m.AddRows(partyRow("TOMADOR", inv.CustomerName, ""))
	vehicle := "Placa: " + inv.CarPlate
	if car != nil {
		vehicle = fmt.Sprintf("%s %s (%s)   |   Placa: %s", car.Brand, car.Model, yearText(car.Year), inv.CarPlate)
	}
	m.AddRows(partyRow("VEÍCULO", vehicle, ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow("Discriminação do serviço", "Valor"))
	m.AddRows(tableLineRow(nonEmpty(inv.Description, "Serviços de funilaria e pintura"), money.BRL(inv.TotalValue)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("VALOR TOTAL:", money.BRL(inv.TotalValue)))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(digestRows(inv.Digest)...)

	return generate(m)
}

// PaymentReceiptPDF recibo de pago de salario o vale.
func (g *MarotoPDFGenerator) PaymentReceiptPDF(_ context.Context, profile *entity.WorkshopProfile, p *entity.PaymentRecord, emp *entity.Employee) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf: pagamento nulo")
	}
	profile = orEmpty(profile)
	m := newDocument(profile, "Recibo de Pagamento")

	m.AddRows(headerRow(profile, "RECIBO DE PAGAMENTO", shortID(p.ID), p.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(profile))
	detail := ""
	if emp != nil {
		detail = fmt.Sprintf("Função: %s   |   Código: %s", emp.Role, nonEmpty(emp.EmployeeID, "-"))
	}
	m.AddRows(partyRow("FUNCIONÁRIO", p.EmployeeName, detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow("Referente a", "Valor"))
	m.AddRows(tableLineRow(string(p.Type)+" - "+monthYear(p.Date), money.BRL(p.Amount)))
	if p.Notes != "" {
		m.AddRows(noteRow("Observações: " + p.Notes))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("TOTAL PAGO:", money.BRL(p.Amount)))

	m.AddRows(row.New(20))
	m.AddRows(signatureRow(p.EmployeeName))

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(profile *entity.WorkshopProfile, title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(profile.Name, "Oficina"), true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: logo y datos de la oficina (izq), título, número y fecha (der).
func headerRow(profile *entity.WorkshopProfile, title, number string, date time.Time) core.Row {
	left := func(size int) core.Col {
		return col.New(size).Add(
			text.New(nonEmpty(profile.Name, "Oficina"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(profile.TaxID, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		)
	}
	right := col.New(5).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New(number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Data: "+date.Format(dateLayout), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	)
	if logo, ok := logoComponent(profile.Logo); ok {
		return row.New(20).Add(col.New(2).Add(logo), left(5), right)
	}
	return row.New(18).Add(left(7), right)
}

// logoComponent decodifica el logo (data URL) si es PNG o JPEG.
func logoComponent(dataURL string) (core.Component, bool) {
	if dataURL == "" {
		return nil, false
	}
	img := carflow.DecodeDataURL(dataURL, "logo")
	var ext extension.Type
	switch img.MimeType {
	case "image/png":
		ext = extension.Png
	case "image/jpeg":
		ext = extension.Jpg
	default:
		return nil, false
	}
	return image.NewFromBytes(img.Data, ext, props.Rect{Percent: 90, Center: true}), true
}

func contactRow(profile *entity.WorkshopProfile) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DADOS DA OFICINA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Endereço: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(profile.Address, "-"),
				nonEmpty(profile.Phone, "-"),
				nonEmpty(profile.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// partyRow: bloque con etiqueta, nombre en negrita y una línea de detalle opcional.
func partyRow(label, name, detail string) core.Row {
	c := col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(nonEmpty(name, "-"), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 6,
		}),
	)
	if detail != "" {
		c.Add(text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}))
	}
	return row.New(16).Add(c)
}

func tableHeaderRow(description, value string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(description, 9, align.Left),
		h(value, 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableLineRow(description, value string) core.Row {
	return row.New(7).Add(
		col.New(9).Add(text.New(description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(value, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalRow: total alineado a la derecha.
func totalRow(label, value string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func noteRow(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

// digestRows: digest partido en fragmentos + QR con el digest.
func digestRows(digest string) []core.Row {
	if digest == "" {
		return []core.Row{noteRow("Documento sem digest registrado.")}
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("AUTENTICAÇÃO DO DOCUMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("SHA-256 do XML canônico:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		)),
	}
	for _, chunk := range splitEvery(digest, 32) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	rows = append(rows, row.New(3), row.New(40).Add(
		col.New(3).Add(code.NewQr(digest, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(text.New("Compare o código com o XML da nota para\nconferir a integridade do documento.", props.Text{
			Size: 8, Top: 4, Left: 3, Color: colorGray,
		})),
	))
	return rows
}

func signatureRow(name string) core.Row {
	return row.New(14).Add(
		col.New(3),
		col.New(6).Add(
			line.New(props.Line{Color: colorGray, Thickness: 0.3}),
			text.New(nonEmpty(name, "Funcionário"), props.Text{Size: 8, Align: align.Center, Top: 3}),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func orEmpty(p *entity.WorkshopProfile) *entity.WorkshopProfile {
	if p == nil {
		return &entity.WorkshopProfile{}
	}
	return p
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func yearText(y int) string {
	if y <= 0 {
		return "-"
	}
	return strconv.Itoa(y)
}

func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "Nº " + strings.ToUpper(id)
}

func monthYear(t time.Time) string {
	return fmt.Sprintf("%02d/%d", int(t.Month()), t.Year())
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
