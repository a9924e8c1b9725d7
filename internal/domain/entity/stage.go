package entity

import "strings"

// ServiceStage etapa del flujo de reparación. El orden es fijo.
type ServiceStage string

const (
	StageDisassembly ServiceStage = "Desmontagem"
	StageRepair      ServiceStage = "Reparo e Primer"
	StageSanding     ServiceStage = "Lixamento"
	StagePainting    ServiceStage = "Pintura"
	StagePolishing   ServiceStage = "Polimento"
	StageWashing     ServiceStage = "Lavagem"
)

// Stages lista ordenada de etapas (índice 0..5).
var Stages = []ServiceStage{
	StageDisassembly,
	StageRepair,
	StageSanding,
	StagePainting,
	StagePolishing,
	StageWashing,
}

// Index posición de la etapa en el flujo; -1 si no existe.
func (s ServiceStage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// IsValid indica si la etapa pertenece al flujo.
func (s ServiceStage) IsValid() bool { return s.Index() >= 0 }

// IsLast es Lavagem.
func (s ServiceStage) IsLast() bool { return s.Index() == len(Stages)-1 }

// Next devuelve la etapa siguiente; false en la última.
func (s ServiceStage) Next() (ServiceStage, bool) {
	i := s.Index()
	if i < 0 || i >= len(Stages)-1 {
		return s, false
	}
	return Stages[i+1], true
}

// Prev devuelve la etapa anterior; false en la primera.
func (s ServiceStage) Prev() (ServiceStage, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}
	return Stages[i-1], true
}

// ParseStage acepta el nombre de la etapa sin distinguir mayúsculas.
func ParseStage(s string) (ServiceStage, bool) {
	for _, st := range Stages {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// CarStatus estado del carro.
type CarStatus string

const (
	CarStatusInProgress CarStatus = "Em Andamento"
	CarStatusCompleted  CarStatus = "Concluído"
	// CarStatusHistory es solo una vista sobre carros concluidos filtrados por fecha de salida.
	CarStatusHistory CarStatus = "Histórico"
)
