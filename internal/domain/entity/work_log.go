package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteKind distingue comentario de reporte de problema.
type NoteKind string

const (
	NoteComment NoteKind = "comment"
	NoteProblem NoteKind = "problem"
)

// Note nota adjunta a una entrada del historial: Comment(text) | ProblemReport(text, resolved).
// Resolved solo tiene sentido para NoteProblem.
type Note struct {
	Kind     NoteKind `json:"kind"`
	Text     string   `json:"text"`
	Resolved bool     `json:"resolved,omitempty"`
}

// CommentNote construye una nota de comentario.
func CommentNote(text string) *Note { return &Note{Kind: NoteComment, Text: text} }

// ProblemNote construye un reporte de problema abierto.
func ProblemNote(text string) *Note { return &Note{Kind: NoteProblem, Text: text} }

// IsProblem indica si es un reporte de problema.
func (n *Note) IsProblem() bool { return n != nil && n.Kind == NoteProblem }

// IsOpenProblem reporte de problema aún no resuelto.
func (n *Note) IsOpenProblem() bool { return n.IsProblem() && !n.Resolved }

// String texto de la nota; "" si no hay nota.
func (n *Note) String() string {
	if n == nil {
		return ""
	}
	return n.Text
}

// MaterialUsage material consumido en una etapa, en la unidad informada por el operador.
type MaterialUsage struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     Unit            `json:"unit"`
}

// WorkLogEntry registro inmutable de una acción en una etapa (salvo Note.Resolved).
type WorkLogEntry struct {
	ID            string           `json:"id"`
	Timestamp     time.Time        `json:"timestamp"`
	Stage         ServiceStage     `json:"stage"`
	EmployeeID    string           `json:"employee_id"`
	EmployeeName  string           `json:"employee_name"`
	Note          *Note            `json:"note,omitempty"`
	Photos        []string         `json:"photos,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	MaterialsUsed []MaterialUsage  `json:"materials_used,omitempty"`
}

// Clone copia profunda de la entrada.
func (e WorkLogEntry) Clone() WorkLogEntry {
	cp := e
	if e.Note != nil {
		n := *e.Note
		cp.Note = &n
	}
	if e.Cost != nil {
		c := *e.Cost
		cp.Cost = &c
	}
	cp.Photos = append([]string(nil), e.Photos...)
	cp.MaterialsUsed = append([]MaterialUsage(nil), e.MaterialsUsed...)
	return cp
}

// BrokenPart pieza quebrada detectada en la desmontagem.
type BrokenPart struct {
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// ConsumableUse consumible marcado en reparo o lixamento.
type ConsumableUse struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// StageData datos específicos informados al concluir una etapa.
// Cada etapa lee solo los campos que le corresponden.
type StageData struct {
	// Desmontagem
	HasBrokenPart bool        `json:"has_broken_part,omitempty"`
	BrokenPart    *BrokenPart `json:"broken_part,omitempty"`

	// Reparo e Primer / Lixamento
	Consumables []ConsumableUse `json:"consumables,omitempty"`
	PuttyGrams  decimal.Decimal `json:"putty_grams"`

	// Pintura
	PainterID string          `json:"painter_id,omitempty"`
	PaintName string          `json:"paint_name,omitempty"`
	PaintML   decimal.Decimal `json:"paint_ml"`
	VarnishML decimal.Decimal `json:"varnish_ml"`

	// Polimento / Lavagem
	PolishingDone bool `json:"polishing_done,omitempty"`
	WashingDone   bool `json:"washing_done,omitempty"`
}

// Clone copia profunda.
func (d *StageData) Clone() *StageData {
	if d == nil {
		return nil
	}
	cp := *d
	if d.BrokenPart != nil {
		bp := *d.BrokenPart
		cp.BrokenPart = &bp
	}
	cp.Consumables = append([]ConsumableUse(nil), d.Consumables...)
	return &cp
}
