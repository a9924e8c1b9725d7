package carflow

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/inventory"
)

// Nombres de materiales con campo propio en el formulario de etapa.
const (
	MaterialPutty        = "Massa Poliéster"
	MaterialDefaultPaint = "Tinta Metálica Azul"
	MaterialVarnish      = "Verniz HS"
)

// PriceLookup resuelve un item de stock por nombre (sin distinguir mayúsculas).
type PriceLookup interface {
	FindByName(name string) (entity.StockItem, bool)
}

// Catalog implementa PriceLookup sobre una instantánea del stock.
type Catalog []entity.StockItem

// FindByName busca por nombre sin distinguir mayúsculas.
func (c Catalog) FindByName(name string) (entity.StockItem, bool) {
	return inventory.FindByName(c, name)
}

// StageCost resultado del cálculo de costo de una etapa.
type StageCost struct {
	Cost      decimal.Decimal
	Materials []entity.MaterialUsage
}

// CostStrategy calcula el costo y los materiales consumidos en una etapa.
type CostStrategy func(data *entity.StageData, stock PriceLookup) StageCost

// CostRegistry tabla etapa -> estrategia de costo.
type CostRegistry struct {
	strategies map[entity.ServiceStage]CostStrategy
}

// NewCostRegistry registra las estrategias por defecto de las seis etapas.
func NewCostRegistry() *CostRegistry {
	r := &CostRegistry{strategies: make(map[entity.ServiceStage]CostStrategy, len(entity.Stages))}
	r.Register(entity.StageDisassembly, BrokenPartCost)
	r.Register(entity.StageRepair, RepairCost)
	r.Register(entity.StageSanding, ConsumablesCost)
	r.Register(entity.StagePainting, PaintingCost)
	r.Register(entity.StagePolishing, NoCost)
	r.Register(entity.StageWashing, NoCost)
	return r
}

// Register reemplaza o agrega la estrategia de una etapa.
func (r *CostRegistry) Register(stage entity.ServiceStage, fn CostStrategy) {
	r.strategies[stage] = fn
}

// Compute aplica la estrategia de la etapa; etapa sin estrategia cuesta cero.
func (r *CostRegistry) Compute(stage entity.ServiceStage, data *entity.StageData, stock PriceLookup) StageCost {
	fn, ok := r.strategies[stage]
	if !ok || data == nil {
		return StageCost{Cost: decimal.Zero}
	}
	res := fn(data, stock)
	if res.Materials == nil {
		res.Materials = []entity.MaterialUsage{}
	}
	return res
}

// NoCost Polimento y Lavagem: solo banderas de conclusión.
func NoCost(_ *entity.StageData, _ PriceLookup) StageCost {
	return StageCost{Cost: decimal.Zero}
}

// BrokenPartCost Desmontagem: costo de reposición de la pieza quebrada, si la hay.
func BrokenPartCost(data *entity.StageData, _ PriceLookup) StageCost {
	if !data.HasBrokenPart || data.BrokenPart == nil || data.BrokenPart.Cost.IsNegative() {
		return StageCost{Cost: decimal.Zero}
	}
	return StageCost{Cost: data.BrokenPart.Cost}
}

// ConsumablesCost consumibles marcados; solo cuentan los que existen en el stock.
func ConsumablesCost(data *entity.StageData, stock PriceLookup) StageCost {
	res := StageCost{Cost: decimal.Zero}
	for _, c := range data.Consumables {
		if !c.Quantity.IsPositive() {
			continue
		}
		item, ok := stock.FindByName(c.Name)
		if !ok {
			continue
		}
		res.Cost = res.Cost.Add(c.Quantity.Mul(item.UnitPrice))
		res.Materials = append(res.Materials, entity.MaterialUsage{Name: c.Name, Quantity: c.Quantity, Unit: item.Unit})
	}
	return res
}

// RepairCost Reparo e Primer: consumibles + gramos de massa × precio.
func RepairCost(data *entity.StageData, stock PriceLookup) StageCost {
	res := ConsumablesCost(data, stock)
	if data.PuttyGrams.IsPositive() {
		res.add(stock, MaterialPutty, data.PuttyGrams, entity.UnitGrams)
	}
	return res
}

// PaintingCost Pintura: ml de tinta y verniz × precio (convertido a la unidad del item).
func PaintingCost(data *entity.StageData, stock PriceLookup) StageCost {
	res := StageCost{Cost: decimal.Zero}
	paint := data.PaintName
	if paint == "" {
		paint = MaterialDefaultPaint
	}
	if data.PaintML.IsPositive() {
		res.add(stock, paint, data.PaintML, entity.UnitML)
	}
	if data.VarnishML.IsPositive() {
		res.add(stock, MaterialVarnish, data.VarnishML, entity.UnitML)
	}
	return res
}

// add registra el material y suma su costo si el item existe.
// El material se informa aunque no exista en el stock; el orquestador lo omite.
func (s *StageCost) add(stock PriceLookup, name string, qty decimal.Decimal, unit entity.Unit) {
	s.Materials = append(s.Materials, entity.MaterialUsage{Name: name, Quantity: qty, Unit: unit})
	item, ok := stock.FindByName(name)
	if !ok {
		return
	}
	base, _ := inventory.Convert(qty, unit, item.Unit)
	s.Cost = s.Cost.Add(base.Mul(item.UnitPrice))
}
